package export

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/KaramelBytes/crimedash/internal/chart"
	"github.com/KaramelBytes/crimedash/internal/dashboard"
	"github.com/KaramelBytes/crimedash/internal/render"
	"github.com/KaramelBytes/crimedash/internal/utils"
)

// Options controls a static export.
type Options struct {
	Dir    string
	PNG    bool
	Page   dashboard.PageOptions
	Render render.Options
}

// Result lists the files written, relative to the export directory.
type Result struct {
	BuildID string
	JSON    []string
	HTML    string
	PNG     []string
	Skipped []chart.ID
}

// Run writes charts/<id>.json for every figure, index.html with the full
// dashboard and, when requested, png/<id>.png for every figure with a static
// rendering. Files are replaced atomically.
func Run(figs []chart.Figure, opt Options, prog Progress, log *slog.Logger) (*Result, error) {
	if opt.Dir == "" {
		return nil, fmt.Errorf("export: no output directory")
	}
	if prog == nil {
		prog = nopProgress{}
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "export")

	page, err := dashboard.NewPage(figs, opt.Page)
	if err != nil {
		return nil, err
	}
	total := len(figs) + 1
	if opt.PNG {
		total += len(figs)
	}
	prog.Start(total)
	defer prog.Finish()

	res := &Result{BuildID: page.BuildID}
	for _, fig := range figs {
		rel := filepath.Join("charts", string(fig.ID)+".json")
		b, err := utils.PrettyJSON(fig)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", fig.ID, err)
		}
		if err := utils.SafeWriteFile(filepath.Join(opt.Dir, rel), b); err != nil {
			return nil, fmt.Errorf("export %s: %w", fig.ID, err)
		}
		res.JSON = append(res.JSON, rel)
		log.Debug("wrote chart", "chart", fig.ID, "path", rel)
		prog.Step(string(fig.ID))
	}

	if err := utils.SafeWriteFile(filepath.Join(opt.Dir, "index.html"), page.HTML); err != nil {
		return nil, fmt.Errorf("export page: %w", err)
	}
	res.HTML = "index.html"
	prog.Step("index.html")

	if !opt.PNG {
		return res, nil
	}
	for _, fig := range figs {
		if !render.Supported(fig) {
			log.Warn("no static rendering, skipped", "chart", fig.ID, "kind", fig.Kind())
			res.Skipped = append(res.Skipped, fig.ID)
			prog.Step(string(fig.ID))
			continue
		}
		b, err := render.PNG(fig, opt.Render)
		if err != nil {
			return nil, err
		}
		rel := filepath.Join("png", string(fig.ID)+".png")
		if err := utils.SafeWriteFile(filepath.Join(opt.Dir, rel), b); err != nil {
			return nil, fmt.Errorf("export %s: %w", fig.ID, err)
		}
		res.PNG = append(res.PNG, rel)
		prog.Step(string(fig.ID))
	}
	return res, nil
}
