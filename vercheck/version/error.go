package version

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersion is returned when a string is neither a PEP 440 version nor a usable legacy token.
	ErrInvalidVersion = errors.New("invalid version")

	ErrNoVersionProvided = errors.New("no version provided for comparison")
)

func invalidVersionError(raw, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrInvalidVersion, raw, reason)
}
