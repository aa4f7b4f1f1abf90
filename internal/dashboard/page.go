package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/KaramelBytes/crimedash/internal/chart"
	"github.com/google/uuid"
)

const (
	DefaultTitle     = "GDP vs. Organized Criminality"
	DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"
)

// PageOptions configures the rendered page.
type PageOptions struct {
	Title     string
	PlotlyURL string
}

// Page is a rendered dashboard. It is immutable once built.
type Page struct {
	BuildID string
	Built   time.Time
	Title   string
	HTML    []byte
	Figures []chart.Figure
	byID    map[chart.ID]int
}

// ETag returns the strong entity tag for the page.
func (p *Page) ETag() string { return `"` + p.BuildID + `"` }

// Figure returns the figure with the given ID.
func (p *Page) Figure(id chart.ID) (chart.Figure, bool) {
	i, ok := p.byID[id]
	if !ok {
		return chart.Figure{}, false
	}
	return p.Figures[i], true
}

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// NewPage renders figs into a single HTML page. Each call gets a fresh build
// ID.
func NewPage(figs []chart.Figure, opt PageOptions) (*Page, error) {
	if opt.Title == "" {
		opt.Title = DefaultTitle
	}
	if opt.PlotlyURL == "" {
		opt.PlotlyURL = DefaultPlotlyURL
	}
	p := &Page{
		BuildID: uuid.NewString(),
		Built:   time.Now().UTC(),
		Title:   opt.Title,
		Figures: figs,
		byID:    make(map[chart.ID]int, len(figs)),
	}
	for i, f := range figs {
		if _, dup := p.byID[f.ID]; dup {
			return nil, fmt.Errorf("page: duplicate chart %q", f.ID)
		}
		p.byID[f.ID] = i
	}

	var buf bytes.Buffer
	data := struct {
		Title     string
		PlotlyURL string
		BuildID   string
		Figures   []chart.Figure
	}{opt.Title, opt.PlotlyURL, p.BuildID, figs}
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	p.HTML = buf.Bytes()
	return p, nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="{{.PlotlyURL}}" charset="utf-8"></script>
<style>
  :root { --bg: #111111; --fg: #f2f5fa; --muted: #8a94a6; }
  body { margin: 0; padding: 1.5rem 2rem; background: var(--bg); color: var(--fg);
         font-family: "Open Sans", verdana, arial, sans-serif; }
  h1 { text-align: center; font-weight: 600; margin: 0 0 1.5rem; }
  .chart { width: 100%; height: 560px; margin-bottom: 2rem; }
  footer { color: var(--muted); font-size: 0.75rem; text-align: right; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Figures}}<div class="chart" id="{{.ID}}"></div>
{{end}}<footer>build {{.BuildID}}</footer>
<script>
  const figures = {{.Figures}};
  for (const fig of figures) {
    Plotly.newPlot(fig.id, fig.data, fig.layout, {responsive: true, displaylogo: false});
  }
</script>
</body>
</html>
`
