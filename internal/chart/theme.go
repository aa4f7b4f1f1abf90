package chart

// Theme holds the colours applied to every layout.
type Theme struct {
	Background string
	Foreground string
	Grid       string
	Subunit    string
	FontFamily string
	Colorway   []string
}

// Dark is the dashboard theme, matching Plotly's dark template.
var Dark = Theme{
	Background: "rgb(17,17,17)",
	Foreground: "#f2f5fa",
	Grid:       "#283442",
	Subunit:    "#506784",
	FontFamily: `"Open Sans", verdana, arial, sans-serif`,
	Colorway:   Qualitative,
}

func (th Theme) layout(title string) Layout {
	return Layout{
		Title:        &Title{Text: title},
		PaperBGColor: th.Background,
		PlotBGColor:  th.Background,
		Font:         &Font{Family: th.FontFamily, Color: th.Foreground},
		Colorway:     th.Colorway,
		HoverMode:    "closest",
	}
}

func (th Theme) axis(title string) *Axis {
	a := &Axis{
		GridColor:     th.Grid,
		LineColor:     th.Grid,
		ZeroLineColor: th.Grid,
		AutoMargin:    true,
	}
	if title != "" {
		a.Title = &Title{Text: title}
	}
	return a
}

func (th Theme) geo(projection string) *Geo {
	return &Geo{
		Projection:     &Projection{Type: projection},
		BGColor:        th.Background,
		LandColor:      th.Background,
		LakeColor:      th.Background,
		ShowLakes:      true,
		ShowLand:       true,
		SubunitColor:   th.Subunit,
		CoastlineColor: th.Subunit,
		ShowFrame:      ptr(false),
	}
}
