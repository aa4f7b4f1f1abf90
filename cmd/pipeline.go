package cmd

import (
	"time"

	"github.com/KaramelBytes/crimedash/internal/chart"
	"github.com/KaramelBytes/crimedash/internal/dashboard"
	"github.com/KaramelBytes/crimedash/internal/dataset"
)

// loadTable resolves and reads the configured dataset.
func loadTable() (*dataset.Table, string, error) {
	if err := requireConfig(); err != nil {
		return nil, "", err
	}
	path, err := dataset.ResolvePath(cfg.Dataset)
	if err != nil {
		return nil, "", err
	}
	start := time.Now()
	t, err := dataset.Load(path, cfg.LoadOptions())
	if err != nil {
		return nil, "", err
	}
	logger.Debug("dataset loaded", "path", path, "rows", t.Len(), "duration", time.Since(start))
	return t, path, nil
}

// buildFigures loads the dataset and builds every chart in display order.
func buildFigures() ([]chart.Figure, error) {
	t, _, err := loadTable()
	if err != nil {
		return nil, err
	}
	styles, err := chart.LoadStyles(cfg.StylesFile)
	if err != nil {
		return nil, err
	}
	figs, err := dashboard.Build(t, styles)
	if err != nil {
		return nil, err
	}
	logger.Debug("charts built", "count", len(figs))
	return figs, nil
}

func pageOptions() dashboard.PageOptions {
	return dashboard.PageOptions{Title: cfg.PageTitle, PlotlyURL: cfg.PlotlyURL}
}
