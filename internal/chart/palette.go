package chart

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Stop is one point of a continuous colour scale. Pos runs from 0 to 1.
type Stop struct {
	Pos   float64
	Color string
}

// MarshalJSON encodes the stop as Plotly's [position, colour] pair.
func (s Stop) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Pos, s.Color})
}

// UnmarshalJSON decodes a [position, colour] pair.
func (s *Stop) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("colour stop: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Pos); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &s.Color)
}

// ColorScale is a continuous scale expanded to explicit stops.
type ColorScale []Stop

var namedScales = map[string][]string{
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"solar": {"rgb(51, 19, 23)", "rgb(79, 28, 33)", "rgb(108, 36, 36)", "rgb(135, 47, 32)", "rgb(157, 66, 25)", "rgb(174, 88, 20)",
		"rgb(188, 111, 19)", "rgb(199, 137, 22)", "rgb(209, 164, 32)", "rgb(217, 192, 44)", "rgb(222, 222, 59)", "rgb(224, 253, 74)"},
	"reds": {"rgb(255,245,240)", "rgb(254,224,210)", "rgb(252,187,161)", "rgb(252,146,114)", "rgb(251,106,74)", "rgb(239,59,44)",
		"rgb(203,24,29)", "rgb(165,15,21)", "rgb(103,0,13)"},
	"teal": {"rgb(209, 238, 234)", "rgb(168, 219, 217)", "rgb(133, 196, 201)", "rgb(104, 171, 184)", "rgb(79, 144, 166)",
		"rgb(59, 115, 143)", "rgb(42, 86, 116)"},
	"rdylgn": {"rgb(165,0,38)", "rgb(215,48,39)", "rgb(244,109,67)", "rgb(253,174,97)", "rgb(254,224,139)", "rgb(255,255,191)",
		"rgb(217,239,139)", "rgb(166,217,106)", "rgb(102,189,99)", "rgb(26,152,80)", "rgb(0,104,55)"},
	"rdbu": {"rgb(103,0,31)", "rgb(178,24,43)", "rgb(214,96,77)", "rgb(244,165,130)", "rgb(253,219,199)", "rgb(247,247,247)",
		"rgb(209,229,240)", "rgb(146,197,222)", "rgb(67,147,195)", "rgb(33,102,172)", "rgb(5,48,97)"},
}

// Qualitative is the categorical palette used for per-continent traces.
var Qualitative = []string{"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A", "#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52"}

// ScaleNames lists the known scale names, without the _r variants.
func ScaleNames() []string {
	names := make([]string, 0, len(namedScales))
	for n := range namedScales {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Scale expands a named scale. Names are case-insensitive and a "_r" suffix
// reverses the scale.
func Scale(name string) (ColorScale, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	reversed := strings.HasSuffix(key, "_r")
	key = strings.TrimSuffix(key, "_r")
	colors, ok := namedScales[key]
	if !ok {
		return nil, fmt.Errorf("unknown colour scale %q (known: %s)", name, strings.Join(ScaleNames(), ", "))
	}
	scale := make(ColorScale, len(colors))
	last := float64(len(colors) - 1)
	for i, c := range colors {
		scale[i] = Stop{Pos: float64(i) / last, Color: c}
	}
	if reversed {
		scale = scale.Reverse()
	}
	return scale, nil
}

// Reverse returns the scale with its colours in the opposite order.
func (s ColorScale) Reverse() ColorScale {
	out := make(ColorScale, len(s))
	for i := range s {
		src := s[len(s)-1-i]
		out[i] = Stop{Pos: 1 - src.Pos, Color: src.Color}
	}
	return out
}

// At returns the colour at position t in [0,1], interpolated linearly in RGB
// between the neighbouring stops. t is clamped.
func (s ColorScale) At(t float64) color.Color {
	if len(s) == 0 {
		return color.Black
	}
	if math.IsNaN(t) || t <= s[0].Pos {
		return mustColor(s[0].Color)
	}
	if t >= s[len(s)-1].Pos {
		return mustColor(s[len(s)-1].Color)
	}
	for i := 1; i < len(s); i++ {
		if t > s[i].Pos {
			continue
		}
		a, b := mustColor(s[i-1].Color), mustColor(s[i].Color)
		span := s[i].Pos - s[i-1].Pos
		f := 0.0
		if span > 0 {
			f = (t - s[i-1].Pos) / span
		}
		return color.NRGBA{
			R: lerp8(a.R, b.R, f),
			G: lerp8(a.G, b.G, f),
			B: lerp8(a.B, b.B, f),
			A: 255,
		}
	}
	return mustColor(s[len(s)-1].Color)
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

// ParseColor parses "#rrggbb", "#rgb" and "rgb(r, g, b)" colour strings.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.NRGBA{}, fmt.Errorf("bad colour %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
		}
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return color.NRGBA{}, fmt.Errorf("bad colour %q", s)
		}
		var rgb [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
			}
			rgb[i] = uint8(v)
		}
		return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
	}
	return color.NRGBA{}, fmt.Errorf("bad colour %q", s)
}

// mustColor parses a colour from the built-in tables.
func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
