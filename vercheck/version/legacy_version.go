package version

import (
	"regexp"
	"strings"
)

// legacy tokens: letters, digits and a handful of separators, with at least one alphanumeric character
var legacyPattern = regexp.MustCompile(`^[A-Za-z0-9._+~-]*[A-Za-z0-9][A-Za-z0-9._+~-]*$`)

type legacyVersion struct {
	text string
}

func newLegacyVersion(raw string) (*legacyVersion, error) {
	if !legacyPattern.MatchString(raw) {
		return nil, invalidVersionError(raw, "not a PEP 440 version and contains characters not allowed in a legacy version")
	}
	return &legacyVersion{text: raw}, nil
}

func (l *legacyVersion) compare(other *legacyVersion) int {
	return strings.Compare(l.text, other.text)
}
