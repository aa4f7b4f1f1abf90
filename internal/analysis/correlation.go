package analysis

import (
	"fmt"

	"github.com/KaramelBytes/crimedash/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix holds a symmetric correlation matrix.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// At returns the coefficient between columns a and b.
func (m *CorrMatrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a && i < 0 {
			i = k
		}
		if c == b && j < 0 {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// Correlation computes the Spearman rank correlation for every pair of the
// given numeric columns, rounded to 2 decimals. The diagonal is exactly 1.
//
// A column with zero variance has no defined coefficient; it is reported as a
// *dataset.DomainError naming the column rather than coerced to 0 or NaN.
func Correlation(t *dataset.Table, columns []string) (*CorrMatrix, error) {
	if len(columns) < 2 {
		return nil, fmt.Errorf("correlation: need at least 2 columns, got %d", len(columns))
	}
	if t.Len() < 2 {
		return nil, &dataset.DomainError{Column: columns[0], Reason: fmt.Sprintf("correlation needs at least 2 rows, got %d", t.Len())}
	}
	ranked := make([][]float64, len(columns))
	for i, c := range columns {
		vals, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		r := Ranks(vals, true)
		if stat.Variance(r, nil) == 0 {
			return nil, &dataset.DomainError{Column: c, Reason: "zero variance, rank correlation undefined"}
		}
		ranked[i] = r
	}

	n := len(columns)
	mat := make([][]float64, n)
	for i := range mat {
		mat[i] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		mat[a][a] = 1
		for b := a + 1; b < n; b++ {
			r := RoundTo2(stat.Correlation(ranked[a], ranked[b], nil))
			if r > 1 {
				r = 1
			} else if r < -1 {
				r = -1
			}
			mat[a][b] = r
			mat[b][a] = r
		}
	}
	names := make([]string, n)
	copy(names, columns)
	return &CorrMatrix{Columns: names, Values: mat}, nil
}
