package assertion

import (
	"fmt"
	"strings"

	"github.com/anchore/vercheck/vercheck/version"
)

// lines starting with any of these carry no assertion
var commentPrefixes = []string{"#", "//"}

// Line is a single "<left> <op> <right>" statement about two versions.
type Line struct {
	Left  string
	Op    version.Operator
	Right string
}

func NewLine(left *version.Version, op version.Operator, right *version.Version) Line {
	return Line{
		Left:  left.Raw,
		Op:    op,
		Right: right.Raw,
	}
}

func (l Line) String() string {
	return fmt.Sprintf("%s %s %s", l.Left, l.Op, l.Right)
}

// isSkippable reports whether the text carries no assertion (blank or a comment).
func isSkippable(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	for _, prefix := range commentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// parsedLine is a decoded assertion alongside the parsed operands.
type parsedLine struct {
	Line
	number int
	text   string
	left   *version.Version
	right  *version.Version
}

// parseLine decodes one non-skippable line of assertion text; number is the 1-based position in the input.
func parseLine(number int, text string) (*parsedLine, error) {
	trimmed := strings.TrimSpace(text)
	fields := strings.Fields(trimmed)
	if len(fields) != 3 {
		return nil, &FormatError{
			LineNumber: number,
			Text:       trimmed,
			Reason:     fmt.Sprintf("expected 3 whitespace separated fields, found %d", len(fields)),
		}
	}

	op, err := version.ParseOperator(fields[1])
	if err != nil {
		return nil, &FormatError{
			LineNumber: number,
			Text:       trimmed,
			Reason:     err.Error(),
		}
	}

	left, err := version.Parse(fields[0])
	if err != nil {
		return nil, &OperandError{LineNumber: number, Text: trimmed, Operand: fields[0], Err: err}
	}
	right, err := version.Parse(fields[2])
	if err != nil {
		return nil, &OperandError{LineNumber: number, Text: trimmed, Operand: fields[2], Err: err}
	}

	return &parsedLine{
		Line: Line{
			Left:  fields[0],
			Op:    op,
			Right: fields[2],
		},
		number: number,
		text:   trimmed,
		left:   left,
		right:  right,
	}, nil
}
