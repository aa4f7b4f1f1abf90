package dataset

import (
	"fmt"
	"strings"
)

// DataLoadError indicates the dataset file is missing, unreadable, or does not
// match the expected schema.
type DataLoadError struct {
	Path   string
	Row    int // 1-based data row (header excluded); 0 when not row specific
	Column string
	Err    error
}

func (e *DataLoadError) Error() string {
	var b strings.Builder
	b.WriteString("load dataset")
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, ": column %q", e.Column)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// DomainError indicates values that break a transform's mathematical domain,
// such as a non-positive GDP under log or a constant column under correlation.
type DomainError struct {
	Row    int // 1-based data row; 0 when the whole column is at fault
	Column string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("domain error: column %q row %d (value %g): %s", e.Column, e.Row, e.Value, e.Reason)
	}
	return fmt.Sprintf("domain error: column %q: %s", e.Column, e.Reason)
}

// TypeError indicates a transform was handed a column of the wrong kind, or a
// column the table does not have.
type TypeError struct {
	Column  string
	Want    string
	Got     string
	Missing bool
}

func (e *TypeError) Error() string {
	if e.Missing {
		return fmt.Sprintf("type error: no column %q", e.Column)
	}
	return fmt.Sprintf("type error: column %q is %s, want %s", e.Column, e.Got, e.Want)
}
