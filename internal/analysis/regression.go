package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/crimedash/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// OLSFit is an ordinary least squares line y = Intercept + Slope*x.
type OLSFit struct {
	Intercept float64
	Slope     float64
	RSquared  float64
	N         int
}

// Predict evaluates the fitted line at x.
func (f OLSFit) Predict(x float64) float64 { return f.Intercept + f.Slope*x }

// Line returns the fitted values at the x positions sorted ascending, ready to
// be drawn as a trend line. Duplicate x values are kept.
func (f OLSFit) Line(x []float64) (xs, ys []float64) {
	xs = make([]float64, len(x))
	copy(xs, x)
	sort.Float64s(xs)
	ys = make([]float64, len(xs))
	for i, v := range xs {
		ys[i] = f.Predict(v)
	}
	return xs, ys
}

// FitOLS fits y against x by ordinary least squares. xColumn names x in the
// error raised when x is constant.
func FitOLS(x, y []float64, xColumn string) (OLSFit, error) {
	if len(x) != len(y) {
		return OLSFit{}, fmt.Errorf("ols: %d x values, %d y values", len(x), len(y))
	}
	if len(x) < 2 {
		return OLSFit{}, &dataset.DomainError{Column: xColumn, Reason: fmt.Sprintf("trend line needs at least 2 points, got %d", len(x))}
	}
	if stat.Variance(x, nil) == 0 {
		return OLSFit{}, &dataset.DomainError{Column: xColumn, Reason: "zero variance, trend line undefined"}
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return OLSFit{
		Intercept: alpha,
		Slope:     beta,
		RSquared:  stat.RSquared(x, y, nil, alpha, beta),
		N:         len(x),
	}, nil
}
