package analysis

import (
	"sort"

	"github.com/KaramelBytes/crimedash/internal/dataset"
)

// TopN returns the min(n, len) rows with the largest (or smallest) values of
// column, ordered descending (or ascending). Ties keep their original row
// order. column must be numeric.
func TopN(t *dataset.Table, column string, n int, largest bool) (*dataset.Table, error) {
	vals, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if largest {
			return vals[idx[a]] > vals[idx[b]]
		}
		return vals[idx[a]] < vals[idx[b]]
	})
	if n < 0 {
		n = 0
	}
	if n < len(idx) {
		idx = idx[:n]
	}
	return t.Subset(idx)
}

// Ranks assigns 1-based ranks to values. Tied values share the average of the
// positions they occupy, so [8 1 5 5 3] ranks ascending as [5 1 3.5 3.5 2].
func Ranks(values []float64, ascending bool) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if ascending {
			return values[idx[a]] < values[idx[b]]
		}
		return values[idx[a]] > values[idx[b]]
	})
	ranks := make([]float64, len(values))
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && values[idx[end]] == values[idx[start]] {
			end++
		}
		// positions start..end-1 hold 1-based ranks start+1..end
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg
		}
		start = end
	}
	return ranks
}

// RankRelation restricts the base table to code, criminality, resilience and
// country, then adds Crime_Rank (ascending) and Resilience_Rank (descending).
// A high crime rank therefore means high criminality, and a high resilience
// rank means low resilience.
func RankRelation(t *dataset.Table) (*dataset.Table, error) {
	out, err := t.Select(dataset.ColCode, dataset.ColCriminality, dataset.ColResilience, dataset.ColCountry)
	if err != nil {
		return nil, err
	}
	crime, err := out.Floats(dataset.ColCriminality)
	if err != nil {
		return nil, err
	}
	resilience, err := out.Floats(dataset.ColResilience)
	if err != nil {
		return nil, err
	}
	if out, err = out.WithFloats(dataset.ColCrimeRank, Ranks(crime, true)); err != nil {
		return nil, err
	}
	return out.WithFloats(dataset.ColResilienceRank, Ranks(resilience, false))
}
