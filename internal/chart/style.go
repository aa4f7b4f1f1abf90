package chart

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Style is the per-chart configuration: titles, colour scale and range, and
// whether bar labels are rounded.
type Style struct {
	Title         string    `toml:"title"`
	XTitle        string    `toml:"x_title"`
	YTitle        string    `toml:"y_title"`
	ColorScale    string    `toml:"color_scale"`
	ColorRange    []float64 `toml:"color_range"`
	Round         bool      `toml:"round"`
	Projection    string    `toml:"projection"`
	ColorBarTitle string    `toml:"colorbar_title"`
}

// Validate checks the colour scale name and range.
func (s Style) Validate() error {
	if s.ColorScale != "" {
		if _, err := Scale(s.ColorScale); err != nil {
			return err
		}
	}
	if len(s.ColorRange) != 0 && len(s.ColorRange) != 2 {
		return fmt.Errorf("color_range needs 2 values, got %d", len(s.ColorRange))
	}
	if len(s.ColorRange) == 2 && s.ColorRange[0] >= s.ColorRange[1] {
		return fmt.Errorf("color_range [%g, %g] is empty", s.ColorRange[0], s.ColorRange[1])
	}
	return nil
}

func (s Style) scale() (ColorScale, error) {
	if s.ColorScale == "" {
		return nil, nil
	}
	return Scale(s.ColorScale)
}

func (s Style) bounds() (lo, hi *float64) {
	if len(s.ColorRange) != 2 {
		return nil, nil
	}
	return ptr(s.ColorRange[0]), ptr(s.ColorRange[1])
}

// Styles maps every chart to its style.
type Styles map[ID]Style

// Get returns the style for id, or the zero Style when none is set.
func (s Styles) Get(id ID) Style { return s[id] }

// DefaultStyles returns the built-in dashboard styling.
func DefaultStyles() Styles {
	const gdpAxis = "GDP per Capita in US$"
	return Styles{
		GDPHighest: {
			Title:         "Top 10 Countries with the highest GDP Per Capita",
			YTitle:        gdpAxis,
			ColorScale:    "viridis_r",
			ColorRange:    []float64{0, 250000},
			Round:         true,
			ColorBarTitle: gdpAxis,
		},
		GDPLowest: {
			Title:      "Top 10 Countries with the lowest GDP Per Capita",
			YTitle:     gdpAxis,
			ColorScale: "solar",
			ColorRange: []float64{300, 600},
			Round:      true,
		},
		ContinentAverage: {
			Title:      "Average GDP by Continent",
			XTitle:     "Continent",
			YTitle:     "Avg GDP",
			ColorScale: "viridis_r",
			ColorRange: []float64{0, 50000},
			Round:      true,
		},
		GDPGlobeID: {
			Title:         "GDP per Capita by Country in USD$",
			ColorScale:    "RdYlGn",
			Projection:    "orthographic",
			ColorBarTitle: "GDP per Capita",
		},
		CrimeHighest: {
			Title:      "Top 10 Countries with the highest Organized Crime",
			YTitle:     "Criminality Score",
			ColorScale: "solar_r",
			ColorRange: []float64{6, 8},
		},
		CrimeLowest: {
			Title:      "Top 10 Countries with the lowest Organized Crime",
			YTitle:     "Criminality Score",
			ColorScale: "viridis",
			ColorRange: []float64{1, 3},
		},
		CrimeMap: {
			Title:      "Organized Crime by Country",
			ColorScale: "reds",
			Projection: "natural earth",
		},
		ResilienceMap: {
			Title:      "Resilience against Crime by Country",
			ColorScale: "teal",
			Projection: "natural earth",
		},
		GDPCrimeScatterID: {
			Title:  "Relation between Criminality and GDP",
			XTitle: gdpAxis,
			YTitle: "Criminality",
		},
		CrimeResilienceScatterID: {
			Title:  "Relation between Criminality and Resilience",
			XTitle: "Resilience",
			YTitle: "Criminality",
		},
		CorrelationHeatmapID: {
			Title:      "Correlation Matrix",
			ColorScale: "RdBu",
			ColorRange: []float64{-1, 1},
		},
	}
}

// styleOverride mirrors Style with optional fields so that a TOML file only
// replaces the keys it sets.
type styleOverride struct {
	Title         *string   `toml:"title"`
	XTitle        *string   `toml:"x_title"`
	YTitle        *string   `toml:"y_title"`
	ColorScale    *string   `toml:"color_scale"`
	ColorRange    []float64 `toml:"color_range"`
	Round         *bool     `toml:"round"`
	Projection    *string   `toml:"projection"`
	ColorBarTitle *string   `toml:"colorbar_title"`
}

// LoadStyles reads a TOML file of per-chart tables keyed by chart ID and
// overlays it on DefaultStyles. An empty path returns the defaults.
//
//	[gdp-highest]
//	color_scale = "viridis"
//	color_range = [0.0, 150000.0]
func LoadStyles(path string) (Styles, error) {
	styles := DefaultStyles()
	if path == "" {
		return styles, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read styles: %w", err)
	}
	var file map[string]styleOverride
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse styles %s: %w", path, err)
	}
	keys := make([]string, 0, len(file))
	for k := range file {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		id := ID(k)
		if !id.Valid() {
			known := make([]string, len(Order))
			for i, o := range Order {
				known[i] = string(o)
			}
			return nil, fmt.Errorf("styles %s: unknown chart %q (known: %s)", path, k, strings.Join(known, ", "))
		}
		st := mergeStyle(styles[id], file[k])
		if err := st.Validate(); err != nil {
			return nil, fmt.Errorf("styles %s: chart %s: %w", path, k, err)
		}
		styles[id] = st
	}
	return styles, nil
}

func mergeStyle(base Style, o styleOverride) Style {
	if o.Title != nil {
		base.Title = *o.Title
	}
	if o.XTitle != nil {
		base.XTitle = *o.XTitle
	}
	if o.YTitle != nil {
		base.YTitle = *o.YTitle
	}
	if o.ColorScale != nil {
		base.ColorScale = *o.ColorScale
	}
	if o.ColorRange != nil {
		base.ColorRange = o.ColorRange
	}
	if o.Round != nil {
		base.Round = *o.Round
	}
	if o.Projection != nil {
		base.Projection = *o.Projection
	}
	if o.ColorBarTitle != nil {
		base.ColorBarTitle = *o.ColorBarTitle
	}
	return base
}
