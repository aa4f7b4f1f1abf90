package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/KaramelBytes/crimedash/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// SummaryColumns are the numeric columns correlated in the summary and the
// heatmap.
var SummaryColumns = []string{dataset.ColCriminality, dataset.ColResilience, dataset.ColGDP}

// Report is a markdown-friendly summary of the base table and the tables
// derived from it.
type Report struct {
	Name       string
	Rows       int
	Cols       []ColumnSummary
	Continents []ContinentSummary
	Rankings   []Ranking
	Corr       *CorrMatrix
	Warnings   []string
}

// ColumnSummary captures basic statistics of a numeric column.
type ColumnSummary struct {
	Name string
	Min  float64
	Max  float64
	Mean float64
	Std  float64
}

// ContinentSummary is one row of the continent aggregate.
type ContinentSummary struct {
	Continent string
	Countries int
	TotalGDP  float64
	AvgGDP    float64
}

// Ranking is a top or bottom list by one column.
type Ranking struct {
	Title   string
	Column  string
	Entries []RankEntry
}

type RankEntry struct {
	Country string
	Value   float64
}

// Summarize computes a Report for the base table. Correlation failures are
// recorded as warnings so the rest of the summary is still produced.
func Summarize(name string, t *dataset.Table) (*Report, error) {
	rep := &Report{Name: name, Rows: t.Len()}
	for _, c := range []string{dataset.ColGDP, dataset.ColCriminality, dataset.ColResilience} {
		vals, err := t.Floats(c)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			continue
		}
		s := ColumnSummary{Name: c, Min: math.Inf(1), Max: math.Inf(-1)}
		for _, v := range vals {
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
		s.Mean, s.Std = stat.MeanStdDev(vals, nil)
		if len(vals) < 2 {
			s.Std = 0
		}
		rep.Cols = append(rep.Cols, s)
	}

	agg, err := AggregateByContinent(t)
	if err != nil {
		return nil, err
	}
	names, _ := agg.Strings(dataset.ColContinent)
	counts, _ := agg.Floats(ColCountryCount)
	sums, _ := agg.Floats(ColTotalGDP)
	avgs, _ := agg.Floats(ColAvgGDP)
	for i := range names {
		rep.Continents = append(rep.Continents, ContinentSummary{Continent: names[i], Countries: int(counts[i]), TotalGDP: sums[i], AvgGDP: avgs[i]})
	}
	sort.Slice(rep.Continents, func(i, j int) bool {
		if rep.Continents[i].AvgGDP == rep.Continents[j].AvgGDP {
			return rep.Continents[i].Continent < rep.Continents[j].Continent
		}
		return rep.Continents[i].AvgGDP > rep.Continents[j].AvgGDP
	})

	for _, r := range []struct {
		title   string
		column  string
		largest bool
	}{
		{"Highest GDP per capita", dataset.ColGDP, true},
		{"Lowest GDP per capita", dataset.ColGDP, false},
		{"Highest criminality", dataset.ColCriminality, true},
		{"Lowest criminality", dataset.ColCriminality, false},
	} {
		top, err := TopN(t, r.column, 10, r.largest)
		if err != nil {
			return nil, err
		}
		countries, _ := top.Strings(dataset.ColCountry)
		vals, _ := top.Floats(r.column)
		rk := Ranking{Title: r.title, Column: r.column}
		for i := range countries {
			rk.Entries = append(rk.Entries, RankEntry{Country: countries[i], Value: vals[i]})
		}
		rep.Rankings = append(rep.Rankings, rk)
	}

	if m, err := Correlation(t, SummaryColumns); err != nil {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("correlations skipped: %v", err))
	} else {
		rep.Corr = m
	}
	return rep, nil
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))

	if len(r.Cols) > 0 {
		b.WriteString("\n[SCHEMA]\n")
		for _, c := range r.Cols {
			b.WriteString(fmt.Sprintf("- %s: numeric — min %.4g, max %.4g, mean %.4g, std %.4g\n", safeName(c.Name), c.Min, c.Max, c.Mean, c.Std))
		}
	}

	if len(r.Continents) > 0 {
		b.WriteString("\n[GROUP-BY SUMMARY]\n")
		for _, c := range r.Continents {
			b.WriteString(fmt.Sprintf("- Continent=%s (n=%d)\n", safeVal(c.Continent), c.Countries))
			b.WriteString(fmt.Sprintf("  • GDP: avg %.2f, total %.2f\n", c.AvgGDP, c.TotalGDP))
		}
	}

	for _, rk := range r.Rankings {
		if len(rk.Entries) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n[%s]\n", strings.ToUpper(rk.Title)))
		for i, e := range rk.Entries {
			b.WriteString(fmt.Sprintf("%d. %s: %.4g\n", i+1, safeVal(e.Country), e.Value))
		}
	}

	if r.Corr != nil && len(r.Corr.Columns) >= 2 {
		b.WriteString("\n[CORRELATIONS]\n")
		type pr struct {
			A, B string
			R    float64
		}
		var pairs []pr
		n := len(r.Corr.Columns)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				pairs = append(pairs, pr{A: r.Corr.Columns[i], B: r.Corr.Columns[j], R: r.Corr.Values[i][j]})
			}
		}
		sort.Slice(pairs, func(i, j int) bool {
			ai := math.Abs(pairs[i].R)
			aj := math.Abs(pairs[j].R)
			if ai == aj {
				return pairs[i].A+pairs[i].B < pairs[j].A+pairs[j].B
			}
			return ai > aj
		})
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: rho=%.2f\n", p.A, p.B, p.R))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
