package chart

import (
	"encoding/json"
	"fmt"
)

// ID identifies one chart of the dashboard.
type ID string

const (
	GDPHighest               ID = "gdp-highest"
	GDPLowest                ID = "gdp-lowest"
	ContinentAverage         ID = "continent-average"
	GDPGlobeID               ID = "gdp-globe"
	CrimeHighest             ID = "crime-highest"
	CrimeLowest              ID = "crime-lowest"
	CrimeMap                 ID = "crime-map"
	ResilienceMap            ID = "resilience-map"
	GDPCrimeScatterID        ID = "gdp-crime-scatter"
	CrimeResilienceScatterID ID = "crime-resilience-scatter"
	CorrelationHeatmapID     ID = "correlation-heatmap"
)

// Order is the dashboard order of every chart.
var Order = []ID{
	GDPHighest,
	GDPLowest,
	ContinentAverage,
	GDPGlobeID,
	CrimeHighest,
	CrimeLowest,
	CrimeMap,
	ResilienceMap,
	GDPCrimeScatterID,
	CrimeResilienceScatterID,
	CorrelationHeatmapID,
}

// Valid reports whether id is one of the known charts.
func (id ID) Valid() bool {
	for _, o := range Order {
		if o == id {
			return true
		}
	}
	return false
}

// Kind is the Plotly trace type.
type Kind string

const (
	KindBar        Kind = "bar"
	KindChoropleth Kind = "choropleth"
	KindScatter    Kind = "scatter"
	KindHeatmap    Kind = "heatmap"
)

// Figure is a Plotly-compatible chart specification. Figures are built once
// and never mutated afterwards.
type Figure struct {
	ID     ID      `json:"id"`
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Fields Fields  `json:"fields"`
}

// Kind returns the type of the figure's first trace.
func (f Figure) Kind() Kind {
	if len(f.Data) == 0 {
		return ""
	}
	return f.Data[0].Type
}

// Title returns the layout title text.
func (f Figure) Title() string {
	if f.Layout.Title == nil {
		return ""
	}
	return f.Layout.Title.Text
}

// Fields records which input columns drive each visual channel.
type Fields struct {
	X        string   `json:"x,omitempty"`
	Y        string   `json:"y,omitempty"`
	Color    string   `json:"color,omitempty"`
	Location string   `json:"location,omitempty"`
	Hover    []string `json:"hover,omitempty"`
}

// Columns returns every non-empty column name referenced by f.
func (f Fields) Columns() []string {
	var out []string
	for _, c := range []string{f.X, f.Y, f.Color, f.Location} {
		if c != "" {
			out = append(out, c)
		}
	}
	return append(out, f.Hover...)
}

// Values is a data array that is either categorical or numeric.
type Values struct {
	Str []string
	Num []float64
}

// Text returns categorical values.
func Text(v ...string) Values { return Values{Str: v} }

// Numbers returns numeric values.
func Numbers(v ...float64) Values { return Values{Num: v} }

// Len returns the number of values.
func (v Values) Len() int {
	if v.Num != nil {
		return len(v.Num)
	}
	return len(v.Str)
}

// IsZero reports whether no values are set.
func (v Values) IsZero() bool { return v.Str == nil && v.Num == nil }

// MarshalJSON encodes the values as a plain JSON array.
func (v Values) MarshalJSON() ([]byte, error) {
	switch {
	case v.Num != nil:
		return json.Marshal(v.Num)
	case v.Str != nil:
		return json.Marshal(v.Str)
	}
	return []byte("[]"), nil
}

// UnmarshalJSON decodes a numeric or a string array.
func (v *Values) UnmarshalJSON(b []byte) error {
	var nums []float64
	if err := json.Unmarshal(b, &nums); err == nil {
		*v = Values{Num: nums}
		return nil
	}
	var strs []string
	if err := json.Unmarshal(b, &strs); err != nil {
		return fmt.Errorf("values: want numeric or string array: %w", err)
	}
	*v = Values{Str: strs}
	return nil
}

// Trace is one Plotly data trace. Z holds a []float64 for choropleths and a
// [][]float64 for heatmaps.
type Trace struct {
	Type          Kind       `json:"type"`
	Name          string     `json:"name,omitempty"`
	Mode          string     `json:"mode,omitempty"`
	X             Values     `json:"x,omitzero"`
	Y             Values     `json:"y,omitzero"`
	Z             any        `json:"z,omitempty"`
	Text          Values     `json:"text,omitzero"`
	TextTemplate  string     `json:"texttemplate,omitempty"`
	Locations     []string   `json:"locations,omitempty"`
	LocationMode  string     `json:"locationmode,omitempty"`
	CustomData    [][]any    `json:"customdata,omitempty"`
	HoverTemplate string     `json:"hovertemplate,omitempty"`
	Marker        *Marker    `json:"marker,omitempty"`
	Line          *Line      `json:"line,omitempty"`
	ColorScale    ColorScale `json:"colorscale,omitempty"`
	ZMin          *float64   `json:"zmin,omitempty"`
	ZMax          *float64   `json:"zmax,omitempty"`
	ColorBar      *ColorBar  `json:"colorbar,omitempty"`
	ShowLegend    *bool      `json:"showlegend,omitempty"`
}

// Marker styles bars and points. Color holds either one colour string or a
// numeric array mapped through ColorScale.
type Marker struct {
	Color      any        `json:"color,omitempty"`
	ColorScale ColorScale `json:"colorscale,omitempty"`
	CMin       *float64   `json:"cmin,omitempty"`
	CMax       *float64   `json:"cmax,omitempty"`
	ShowScale  bool       `json:"showscale,omitempty"`
	ColorBar   *ColorBar  `json:"colorbar,omitempty"`
	Size       float64    `json:"size,omitempty"`
	Opacity    float64    `json:"opacity,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type ColorBar struct {
	Title    *Title    `json:"title,omitempty"`
	TickVals []float64 `json:"tickvals,omitempty"`
	TickText []string  `json:"ticktext,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Font struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Layout is the subset of Plotly's layout object the dashboard uses.
type Layout struct {
	Title        *Title       `json:"title,omitempty"`
	PaperBGColor string       `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string       `json:"plot_bgcolor,omitempty"`
	Font         *Font        `json:"font,omitempty"`
	Colorway     []string     `json:"colorway,omitempty"`
	XAxis        *Axis        `json:"xaxis,omitempty"`
	YAxis        *Axis        `json:"yaxis,omitempty"`
	Geo          *Geo         `json:"geo,omitempty"`
	Annotations  []Annotation `json:"annotations,omitempty"`
	Legend       *Legend      `json:"legend,omitempty"`
	HoverMode    string       `json:"hovermode,omitempty"`
}

type Axis struct {
	Title         *Title `json:"title,omitempty"`
	Type          string `json:"type,omitempty"`
	AutoRange     string `json:"autorange,omitempty"`
	GridColor     string `json:"gridcolor,omitempty"`
	LineColor     string `json:"linecolor,omitempty"`
	ZeroLineColor string `json:"zerolinecolor,omitempty"`
	AutoMargin    bool   `json:"automargin,omitempty"`
}

type Geo struct {
	Projection     *Projection `json:"projection,omitempty"`
	BGColor        string      `json:"bgcolor,omitempty"`
	LandColor      string      `json:"landcolor,omitempty"`
	LakeColor      string      `json:"lakecolor,omitempty"`
	ShowLakes      bool        `json:"showlakes,omitempty"`
	ShowLand       bool        `json:"showland,omitempty"`
	SubunitColor   string      `json:"subunitcolor,omitempty"`
	CoastlineColor string      `json:"coastlinecolor,omitempty"`
	ShowFrame      *bool       `json:"showframe,omitempty"`
}

type Projection struct {
	Type string `json:"type"`
}

type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// Annotation is a text label placed in data coordinates.
type Annotation struct {
	X         any     `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
	YShift    float64 `json:"yshift,omitempty"`
}

func ptr[T any](v T) *T { return &v }
