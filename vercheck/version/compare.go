package version

import "fmt"

// Compare orders two non-nil versions, returning -1, 0, or 1. The ordering is total: legacy versions are
// compared by text, structured versions by their PEP 440 segments, and every legacy version sorts before every
// structured version.
func Compare(a, b *Version) int {
	switch a.Kind {
	case LegacyKind:
		switch b.Kind {
		case LegacyKind:
			return a.legacy.compare(b.legacy)
		case StructuredKind:
			return -1
		}
	case StructuredKind:
		switch b.Kind {
		case LegacyKind:
			return 1
		case StructuredKind:
			return a.structured.compare(b.structured)
		}
	}
	panic(fmt.Sprintf("unable to compare versions of kind %s and %s", a.Kind, b.Kind))
}

func sign(i int) int {
	switch {
	case i < 0:
		return -1
	case i > 0:
		return 1
	}
	return 0
}
