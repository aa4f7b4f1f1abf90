package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingColumn is wrapped by DataLoadError when a required header is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyDataset is wrapped by DataLoadError when the file has no header row.
	ErrEmptyDataset = errors.New("no header row")
)

// Schema maps each base-table column to the header used in the source file.
type Schema struct {
	Country     string `mapstructure:"country" yaml:"country"`
	Code        string `mapstructure:"code" yaml:"code"`
	Continent   string `mapstructure:"continent" yaml:"continent"`
	GDP         string `mapstructure:"gdp" yaml:"gdp"`
	Criminality string `mapstructure:"criminality" yaml:"criminality"`
	Resilience  string `mapstructure:"resilience" yaml:"resilience"`
}

// DefaultSchema returns the headers of the reference workbook.
func DefaultSchema() Schema {
	return Schema{
		Country:     ColCountry,
		Code:        ColCode,
		Continent:   ColContinent,
		GDP:         ColGDP,
		Criminality: ColCriminality,
		Resilience:  ColResilience,
	}
}

// withDefaults fills blank entries from DefaultSchema.
func (s Schema) withDefaults() Schema {
	d := DefaultSchema()
	if s.Country == "" {
		s.Country = d.Country
	}
	if s.Code == "" {
		s.Code = d.Code
	}
	if s.Continent == "" {
		s.Continent = d.Continent
	}
	if s.GDP == "" {
		s.GDP = d.GDP
	}
	if s.Criminality == "" {
		s.Criminality = d.Criminality
	}
	if s.Resilience == "" {
		s.Resilience = d.Resilience
	}
	return s
}

// LoadOptions controls how the dataset file is read.
type LoadOptions struct {
	// SheetName selects an xlsx sheet by name (case-insensitive).
	SheetName string
	// SheetIndex is the 1-based sheet used when SheetName is empty.
	SheetIndex int
	Schema     Schema
	Numbers    NumberFormat
}

// DefaultLoadOptions reads the first sheet with the reference headers.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{SheetIndex: 1, Schema: DefaultSchema()}
}

// Load reads the dataset at path (.xlsx, .csv or .tsv) into the base table and
// derives log_gdp. It fails with *DataLoadError for unreadable or malformed
// input and with *DomainError for a non-positive GDP value.
func Load(path string, opt LoadOptions) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, opt)
	case ".csv", ".tsv":
		rows, err = readCSV(path)
	default:
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(path))}
	}
	if err != nil {
		return nil, err
	}
	return fromRows(path, rows, opt)
}

func readXLSX(path string, opt LoadOptions) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("open xlsx: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	var sheet string
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, &DataLoadError{Path: path, Err: fmt.Errorf("sheet %q not found; available sheets: %s",
				opt.SheetName, strings.Join(sheets, ", "))}
		}
	} else {
		idx := opt.SheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, &DataLoadError{Path: path, Err: fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))}
		}
		sheet = sheets[idx-1]
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("open csv: %w", err)}
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = sniffDelimiter(path)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("read csv: %w", err)}
	}
	return rows, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// fromRows validates the raw rows against the schema and builds the table.
func fromRows(path string, rows [][]string, opt LoadOptions) (*Table, error) {
	if len(rows) == 0 {
		return nil, &DataLoadError{Path: path, Err: ErrEmptyDataset}
	}
	schema := opt.Schema.withDefaults()
	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.TrimSpace(h)] = i
	}
	lookup := func(header string) (int, error) {
		i, ok := index[header]
		if !ok {
			return 0, &DataLoadError{Path: path, Column: header, Err: ErrMissingColumn}
		}
		return i, nil
	}
	var idx [6]int
	for k, h := range []string{schema.Country, schema.Code, schema.Continent, schema.GDP, schema.Criminality, schema.Resilience} {
		i, err := lookup(h)
		if err != nil {
			return nil, err
		}
		idx[k] = i
	}

	var (
		countries, codes, continents []string
		gdp, crime, resilience, logs []float64
	)
	seen := make(map[string]int)
	for r := 1; r < len(rows); r++ {
		row := rows[r]
		if blankRow(row) {
			continue
		}
		text := func(k int, header string) (string, error) {
			v := strings.TrimSpace(cell(row, idx[k]))
			if v == "" {
				return "", &DataLoadError{Path: path, Row: r, Column: header, Err: errors.New("empty value")}
			}
			return v, nil
		}
		number := func(k int, header string) (float64, error) {
			raw := cell(row, idx[k])
			x, ok := parseNumber(raw, opt.Numbers)
			if !ok {
				return 0, &DataLoadError{Path: path, Row: r, Column: header, Err: fmt.Errorf("not a number: %q", raw)}
			}
			return x, nil
		}

		country, err := text(0, schema.Country)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[country]; dup {
			return nil, &DataLoadError{Path: path, Row: r, Column: schema.Country, Err: fmt.Errorf("duplicate country %q (first seen in row %d)", country, first)}
		}
		seen[country] = r
		code, err := text(1, schema.Code)
		if err != nil {
			return nil, err
		}
		continent, err := text(2, schema.Continent)
		if err != nil {
			return nil, err
		}
		g, err := number(3, schema.GDP)
		if err != nil {
			return nil, err
		}
		if g <= 0 {
			return nil, &DomainError{Row: r, Column: schema.GDP, Value: g, Reason: "GDP per capita must be positive for the log transform"}
		}
		c, err := number(4, schema.Criminality)
		if err != nil {
			return nil, err
		}
		res, err := number(5, schema.Resilience)
		if err != nil {
			return nil, err
		}

		countries = append(countries, country)
		codes = append(codes, strings.ToUpper(code))
		continents = append(continents, continent)
		gdp = append(gdp, g)
		logs = append(logs, math.Log(g))
		crime = append(crime, c)
		resilience = append(resilience, res)
	}

	t, err := NewTable(
		StringColumn(ColCountry, countries...),
		StringColumn(ColCode, codes...),
		StringColumn(ColContinent, continents...),
		FloatColumn(ColGDP, gdp...),
		FloatColumn(ColCriminality, crime...),
		FloatColumn(ColResilience, resilience...),
		FloatColumn(ColLogGDP, logs...),
	)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	return t, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
