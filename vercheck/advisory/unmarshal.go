package advisory

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Decode reads either a single advisory or a JSON array of advisories.
func Decode(reader io.Reader) ([]Record, error) {
	return unmarshalSingleOrMulti[Record](reader)
}

func unmarshalSingleOrMulti[T interface{}](reader io.Reader) ([]T, error) {
	r := bufio.NewReader(reader)
	multi, err := startsWithArray(r)
	if err != nil {
		return nil, fmt.Errorf("unable to decode advisory: %w", err)
	}

	dec := json.NewDecoder(r)
	if multi {
		var entries []T
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("unable to decode advisories: %w", handleJSONUnmarshalError(err))
		}
		return entries, nil
	}

	var entry T
	if err := dec.Decode(&entry); err != nil {
		return nil, fmt.Errorf("unable to decode advisory: %w", handleJSONUnmarshalError(err))
	}
	return []T{entry}, nil
}

// startsWithArray skips leading whitespace and reports whether the next byte opens a JSON array.
func startsWithArray(r *bufio.Reader) (bool, error) {
	for {
		b, err := r.Peek(1)
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := r.ReadByte(); err != nil {
				return false, err
			}
		default:
			return b[0] == '[', nil
		}
	}
}

func handleJSONUnmarshalError(err error) error {
	if ute, ok := err.(*json.UnmarshalTypeError); ok { //nolint: errorlint
		return fmt.Errorf("unmarshal type error: expected=%v, got=%v, field=%v, offset=%v", ute.Type, ute.Value, ute.Field, ute.Offset)
	} else if se, ok := err.(*json.SyntaxError); ok { //nolint: errorlint
		return fmt.Errorf("syntax error: offset=%v, error=%w", se.Offset, se)
	}
	return err
}
