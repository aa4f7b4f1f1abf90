package dataset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(
		StringColumn(ColCountry, "A", "B", "C"),
		StringColumn(ColContinent, "Europe", "Asia", "Europe"),
		FloatColumn(ColGDP, 300, 100, 200),
	)
	require.NoError(t, err)
	return tbl
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable()
	assert.Error(t, err)

	_, err = NewTable(StringColumn("a", "x"), FloatColumn("b", 1, 2))
	assert.ErrorContains(t, err, "has 2 values, want 1")

	_, err = NewTable(StringColumn("a", "x"), StringColumn("a", "y"))
	assert.ErrorContains(t, err, "duplicate column")
}

func TestTableAccessors(t *testing.T) {
	tbl := sampleTable(t)
	assert.Equal(t, 3, tbl.Len())
	assert.True(t, tbl.HasColumn(ColGDP))
	assert.True(t, tbl.IsNumeric(ColGDP))
	assert.False(t, tbl.IsNumeric(ColCountry))
	assert.False(t, tbl.IsNumeric("nope"))

	_, err := tbl.Floats(ColCountry)
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.False(t, te.Missing)
	assert.Equal(t, "numeric", te.Want)

	_, err = tbl.Floats("nope")
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Missing)

	_, err = tbl.Strings(ColGDP)
	require.ErrorAs(t, err, &te)
}

func TestTableIsImmutable(t *testing.T) {
	tbl := sampleTable(t)

	gdp, err := tbl.Floats(ColGDP)
	require.NoError(t, err)
	gdp[0] = -1

	again, err := tbl.Floats(ColGDP)
	require.NoError(t, err)
	assert.Equal(t, []float64{300, 100, 200}, again)

	wider, err := tbl.WithFloats("double", []float64{600, 200, 400})
	require.NoError(t, err)
	assert.True(t, wider.HasColumn("double"))
	assert.False(t, tbl.HasColumn("double"))

	_, err = tbl.WithFloats("short", []float64{1})
	assert.Error(t, err)
}

func TestTableSubsetAndSelect(t *testing.T) {
	tbl := sampleTable(t)

	sub, err := tbl.Subset([]int{2, 0})
	require.NoError(t, err)
	names, err := sub.Strings(ColCountry)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, names)

	none, err := tbl.Subset(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, tbl.Columns(), none.Columns())
	assert.True(t, none.IsNumeric(ColGDP))

	_, err = tbl.Subset([]int{3})
	assert.Error(t, err)

	sel, err := tbl.Select(ColGDP, ColCountry)
	require.NoError(t, err)
	assert.Equal(t, []string{ColGDP, ColCountry}, sel.Columns())

	_, err = tbl.Select("nope")
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.True(t, te.Missing)
}

func TestErrorsMatchThroughWrapping(t *testing.T) {
	_, err := sampleTable(t).Floats(ColCountry)
	wrapped := fmt.Errorf("build chart: %w", err)
	var te *TypeError
	require.ErrorAs(t, wrapped, &te)
	assert.Equal(t, ColCountry, te.Column)
	assert.False(t, te.Missing)

	var de *DomainError
	wrapped = fmt.Errorf("build chart: %w", &DomainError{Column: ColGDP, Reason: "zero variance"})
	require.ErrorAs(t, wrapped, &de)
	assert.Equal(t, ColGDP, de.Column)

	le := &DataLoadError{Path: "x.csv", Column: ColGDP, Err: ErrMissingColumn}
	assert.ErrorIs(t, fmt.Errorf("load: %w", le), ErrMissingColumn)
	assert.Nil(t, errors.Unwrap(le.Err))
}
