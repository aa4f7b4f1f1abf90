package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Column names of the base table. GDP keeps the header used by the source
// workbook; the rank columns are added by the statistics package.
const (
	ColCountry        = "Country"
	ColCode           = "Code Value"
	ColContinent      = "Continent"
	ColGDP            = "GDP, Per Capita GDP - US Dollars"
	ColCriminality    = "Criminality"
	ColResilience     = "Resilience"
	ColLogGDP         = "log_gdp"
	ColCrimeRank      = "Crime_Rank"
	ColResilienceRank = "Resilience_Rank"
)

// Column is one named column used to build a Table. Exactly one of Strings
// or Floats is meaningful, selected by Numeric.
type Column struct {
	Name    string
	Numeric bool
	Strings []string
	Floats  []float64
}

// StringColumn returns a categorical/text column.
func StringColumn(name string, vals ...string) Column {
	return Column{Name: name, Strings: vals}
}

// FloatColumn returns a numeric column.
func FloatColumn(name string, vals ...float64) Column {
	return Column{Name: name, Numeric: true, Floats: vals}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	if c.Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

func (c Column) series() series.Series {
	if c.Numeric {
		vals := make([]float64, len(c.Floats))
		copy(vals, c.Floats)
		return series.New(vals, series.Float, c.Name)
	}
	vals := make([]string, len(c.Strings))
	copy(vals, c.Strings)
	return series.New(vals, series.String, c.Name)
}

// Table is an immutable, ordered collection of rows. Every accessor returns
// copies and every derivation returns a new Table, so a *Table can be shared
// freely between transforms and chart builders.
type Table struct {
	df dataframe.DataFrame
}

// NewTable builds a table from equally sized columns.
func NewTable(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("new table: no columns")
	}
	n := cols[0].Len()
	seen := make(map[string]bool, len(cols))
	ss := make([]series.Series, 0, len(cols))
	for _, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("new table: unnamed column")
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("new table: duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if c.Len() != n {
			return nil, fmt.Errorf("new table: column %q has %d values, want %d", c.Name, c.Len(), n)
		}
		ss = append(ss, c.series())
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return nil, fmt.Errorf("new table: %w", df.Err)
	}
	return &Table{df: df}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.df.Nrow() }

// Columns returns the column names in table order.
func (t *Table) Columns() []string { return t.df.Names() }

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// IsNumeric reports whether name is a numeric column.
func (t *Table) IsNumeric(name string) bool {
	if !t.HasColumn(name) {
		return false
	}
	return isNumericType(t.df.Col(name).Type())
}

// Floats returns a copy of a numeric column.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	if !isNumericType(s.Type()) {
		return nil, &TypeError{Column: name, Want: "numeric", Got: string(s.Type())}
	}
	return s.Float(), nil
}

// Strings returns a copy of a string column.
func (t *Table) Strings(name string) ([]string, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	if s.Type() != series.String {
		return nil, &TypeError{Column: name, Want: string(series.String), Got: string(s.Type())}
	}
	return s.Records(), nil
}

// Subset returns the rows at idx, in the order given.
func (t *Table) Subset(idx []int) (*Table, error) {
	if len(idx) == 0 {
		return t.empty()
	}
	for _, i := range idx {
		if i < 0 || i >= t.Len() {
			return nil, fmt.Errorf("subset: row %d out of range [0,%d)", i, t.Len())
		}
	}
	df := t.df.Subset(idx)
	if df.Err != nil {
		return nil, fmt.Errorf("subset: %w", df.Err)
	}
	return &Table{df: df}, nil
}

// Select returns a table restricted to the named columns, in that order.
func (t *Table) Select(names ...string) (*Table, error) {
	for _, n := range names {
		if !t.HasColumn(n) {
			return nil, &TypeError{Column: n, Missing: true}
		}
	}
	df := t.df.Select(names)
	if df.Err != nil {
		return nil, fmt.Errorf("select: %w", df.Err)
	}
	return &Table{df: df}, nil
}

// WithFloats returns a copy of the table with a numeric column added, or
// replaced when the name already exists.
func (t *Table) WithFloats(name string, vals []float64) (*Table, error) {
	if len(vals) != t.Len() {
		return nil, fmt.Errorf("with column %q: %d values, want %d", name, len(vals), t.Len())
	}
	df := t.df.Copy().Mutate(FloatColumn(name, vals...).series())
	if df.Err != nil {
		return nil, fmt.Errorf("with column %q: %w", name, df.Err)
	}
	return &Table{df: df}, nil
}

func (t *Table) col(name string) (series.Series, error) {
	if !t.HasColumn(name) {
		return series.Series{}, &TypeError{Column: name, Missing: true}
	}
	return t.df.Col(name), nil
}

// empty returns a zero-row table with the same columns and kinds.
func (t *Table) empty() (*Table, error) {
	cols := make([]Column, 0, t.df.Ncol())
	for _, name := range t.df.Names() {
		if isNumericType(t.df.Col(name).Type()) {
			cols = append(cols, FloatColumn(name))
		} else {
			cols = append(cols, StringColumn(name))
		}
	}
	return NewTable(cols...)
}

func isNumericType(tp series.Type) bool {
	return tp == series.Float || tp == series.Int
}
