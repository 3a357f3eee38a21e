package assertion

import "fmt"

// FormatError is returned when a line is not made of exactly an operand, a known operator and an operand.
type FormatError struct {
	LineNumber int
	Text       string
	Reason     string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed assertion on line %d (%q): %s", e.LineNumber, e.Text, e.Reason)
}

// OperandError is returned when an operand of an assertion line cannot be parsed as a version.
type OperandError struct {
	LineNumber int
	Text       string
	Operand    string
	Err        error
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("bad operand %q on line %d (%q): %v", e.Operand, e.LineNumber, e.Text, e.Err)
}

func (e *OperandError) Unwrap() error {
	return e.Err
}
