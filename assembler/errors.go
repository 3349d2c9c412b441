package assembler

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMnemonic is returned for a comp, dest or jump field outside the fixed tables.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	// ErrMalformed is returned for a line that is neither a label nor an instruction.
	ErrMalformed = errors.New("malformed line")
	// ErrDuplicateLabel is returned when a label name is already taken.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrAddressRange is returned for a literal address that does not fit 15 bits.
	ErrAddressRange = errors.New("address out of range")
)

// LineError ties a failure to the source line that caused it.
type LineError struct {
	Line  Line
	Field string // comp, dest, jump, label or address; empty if the whole line is at fault
	Err   error
}

func (e *LineError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("line %d: %q: %v", e.Line.Number, e.Line.Text, e.Err)
	}
	return fmt.Sprintf("line %d: %q: %s: %v", e.Line.Number, e.Line.Text, e.Field, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func lineError(l Line, field string, err error) error {
	return &LineError{Line: l, Field: field, Err: err}
}
