package cells

import "fmt"

// MissingFieldError reports a required column absent from a source table.
type MissingFieldError struct {
	Table  string
	Column string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s table: missing column %q", e.Table, e.Column)
}

// ValueError reports a cell whose text cannot be read as the column's type.
type ValueError struct {
	Table  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s table row %d: column %q: invalid value %q: %v", e.Table, e.Row, e.Column, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }
