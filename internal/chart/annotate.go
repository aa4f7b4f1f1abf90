package chart

import (
	"math"
	"strconv"
)

const (
	labelFontSize = 13
	labelYShift   = 9
)

// barLabels places one label above each bar at (x[i], y[i]). With round set
// the value is rounded half-to-even to an integer; otherwise it is printed in
// its shortest exact decimal form.
func barLabels(x []string, y []float64, round bool) []Annotation {
	out := make([]Annotation, 0, len(y))
	for i, v := range y {
		out = append(out, Annotation{
			X:         x[i],
			Y:         v,
			Text:      labelText(v, round),
			ShowArrow: false,
			Font:      &Font{Size: labelFontSize},
			YShift:    labelYShift,
		})
	}
	return out
}

func labelText(v float64, round bool) string {
	if round {
		return strconv.FormatFloat(math.RoundToEven(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
