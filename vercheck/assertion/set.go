package assertion

import (
	"fmt"
	"io"

	"github.com/anchore/vercheck/internal"
)

// Set holds assertion lines without duplicates, in the order they were first added.
type Set struct {
	lines *internal.OrderedSet[Line]
}

func NewSet(lines ...Line) *Set {
	return &Set{
		lines: internal.NewOrderedSet(lines...),
	}
}

// Add appends the lines whose text is not already present and returns how many were added.
func (s *Set) Add(lines ...Line) int {
	return s.lines.Add(lines...)
}

func (s *Set) Len() int {
	return s.lines.Size()
}

func (s *Set) Lines() []Line {
	return s.lines.ToSlice()
}

// Strings returns the text of every line in order.
func (s *Set) Strings() []string {
	var result []string
	for _, l := range s.lines.ToSlice() {
		result = append(result, l.String())
	}
	return result
}

// WriteTo writes one line of text per assertion, each terminated by a newline. An empty set writes nothing.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, l := range s.lines.ToSlice() {
		n, err := fmt.Fprintln(w, l.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
