package version

import (
	"strings"
)

// Kind identifies the ordering scheme a parsed version is compared under.
type Kind int

const (
	UnknownKind Kind = iota
	// StructuredKind versions conform to the PEP 440 grammar.
	StructuredKind
	// LegacyKind versions did not conform to PEP 440 but are made of legal token characters; they are
	// ordered by their text and always sort before structured versions.
	LegacyKind
)

var kindStr = []string{
	"UnknownKind",
	"Structured",
	"Legacy",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) || k < 0 {
		return kindStr[0]
	}
	return kindStr[k]
}

// Version is a parsed version string. Exactly one of the structured or legacy representations is populated,
// selected by Kind. Raw is the text the version was parsed from (with surrounding whitespace removed).
type Version struct {
	Raw        string
	Kind       Kind
	structured *pep440Version
	legacy     *legacyVersion
}

// Parse parses the given text into a Version. Text that does not conform to PEP 440 is accepted as a legacy
// version when it is made only of letters, digits and the separators ". - _ + ~"; anything else is an error
// wrapping ErrInvalidVersion.
func Parse(raw string) (*Version, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalidVersionError(raw, "empty version")
	}

	if s, ok := newPep440Version(raw); ok {
		return &Version{
			Raw:        raw,
			Kind:       StructuredKind,
			structured: s,
		}, nil
	}

	l, err := newLegacyVersion(raw)
	if err != nil {
		return nil, err
	}
	return &Version{
		Raw:    raw,
		Kind:   LegacyKind,
		legacy: l,
	}, nil
}

func (v Version) String() string {
	return v.Raw
}

func (v Version) IsLegacy() bool {
	return v.Kind == LegacyKind
}

// Compare compares this version to another version.
// This returns -1, 0, or 1 if this version is smaller,
// equal, or larger than the other version, respectively.
func (v *Version) Compare(other *Version) (int, error) {
	if v == nil || other == nil {
		return -1, ErrNoVersionProvided
	}
	return Compare(v, other), nil
}

// Equal reports whether both versions denote the same release (e.g. "1.0" and "1.0.0").
func (v *Version) Equal(other *Version) bool {
	c, err := v.Compare(other)
	return err == nil && c == 0
}
