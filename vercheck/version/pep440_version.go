package version

import (
	"regexp"
	"strings"
)

// pep440Pattern is the permissive version pattern used by the python "packaging" project, which accepts the
// alternative spellings that PEP 440 normalizes (e.g. "1.0-beta.2", "v2.0", "1.0.post-3").
var pep440Pattern = regexp.MustCompile(`(?i)^` + regexp.MustCompile(`\s+`).ReplaceAllString(`
	v?
	(?:
		(?:(?P<epoch>[0-9]+)!)?
		(?P<release>[0-9]+(?:\.[0-9]+)*)
		(?P<pre>
			[-_\.]?
			(?P<pre_l>alpha|a|beta|b|preview|pre|rc|c)
			[-_\.]?
			(?P<pre_n>[0-9]+)?
		)?
		(?P<post>
			(?:-(?P<post_n1>[0-9]+))
			|
			(?:
				[-_\.]?
				(?P<post_l>post|rev|r)
				[-_\.]?
				(?P<post_n2>[0-9]+)?
			)
		)?
		(?P<dev>
			[-_\.]?
			(?P<dev_l>dev)
			[-_\.]?
			(?P<dev_n>[0-9]+)?
		)?
	)
	(?:\+(?P<local>[a-z0-9]+(?:[-_\.][a-z0-9]+)*))?
`, ``) + `$`)

type preReleaseKind int

const (
	alphaRelease preReleaseKind = iota
	betaRelease
	candidateRelease
)

var preReleaseKinds = map[string]preReleaseKind{
	"a":       alphaRelease,
	"alpha":   alphaRelease,
	"b":       betaRelease,
	"beta":    betaRelease,
	"rc":      candidateRelease,
	"c":       candidateRelease,
	"pre":     candidateRelease,
	"preview": candidateRelease,
}

type preRelease struct {
	kind   preReleaseKind
	number numeral
}

type localSegment struct {
	numeric bool
	value   string
}

type pep440Version struct {
	epoch   numeral
	release []numeral
	pre     *preRelease
	post    *numeral
	dev     *numeral
	local   []localSegment
}

func newPep440Version(raw string) (*pep440Version, bool) {
	match := pep440Pattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, false
	}
	group := func(name string) string {
		return match[pep440Pattern.SubexpIndex(name)]
	}

	v := pep440Version{
		epoch: newNumeral(group("epoch")),
	}

	for _, segment := range strings.Split(group("release"), ".") {
		v.release = append(v.release, newNumeral(segment))
	}

	if label := strings.ToLower(group("pre_l")); label != "" {
		v.pre = &preRelease{
			kind:   preReleaseKinds[label],
			number: newNumeral(group("pre_n")),
		}
	}

	if group("post") != "" {
		n := newNumeral(group("post_n1") + group("post_n2"))
		v.post = &n
	}

	if group("dev") != "" {
		n := newNumeral(group("dev_n"))
		v.dev = &n
	}

	if local := group("local"); local != "" {
		parts := strings.FieldsFunc(strings.ToLower(local), func(r rune) bool {
			return strings.ContainsRune("-_.", r)
		})
		for _, part := range parts {
			if isDigits(part) {
				v.local = append(v.local, localSegment{numeric: true, value: string(newNumeral(part))})
				continue
			}
			v.local = append(v.local, localSegment{value: part})
		}
	}

	return &v, true
}

func (v *pep440Version) compare(other *pep440Version) int {
	for _, cmp := range []func(a, b *pep440Version) int{
		cmpEpoch,
		cmpRelease,
		cmpPreRelease,
		cmpPostRelease,
		cmpDevRelease,
		cmpLocal,
	} {
		if d := cmp(v, other); d != 0 {
			return d
		}
	}
	return 0
}

func cmpEpoch(a, b *pep440Version) int {
	return a.epoch.compare(b.epoch)
}

// release segments of different lengths are padded with zeros, so 1.0 == 1.0.0
func cmpRelease(a, b *pep440Version) int {
	for i := 0; i < len(a.release) || i < len(b.release); i++ {
		if d := a.releaseSegment(i).compare(b.releaseSegment(i)); d != 0 {
			return d
		}
	}
	return 0
}

func (v *pep440Version) releaseSegment(i int) numeral {
	if i < len(v.release) {
		return v.release[i]
	}
	return "0"
}

// preRank orders X.devN < X{a,b,rc}N < X (and X.postN). A dev release without a pre or post segment sorts
// before every pre-release of the same release.
func (v *pep440Version) preRank() int {
	switch {
	case v.pre == nil && v.post == nil && v.dev != nil:
		return -1
	case v.pre == nil:
		return 3
	}
	return int(v.pre.kind)
}

func cmpPreRelease(a, b *pep440Version) int {
	if d := sign(a.preRank() - b.preRank()); d != 0 {
		return d
	}
	if a.pre == nil || b.pre == nil {
		return 0
	}
	return a.pre.number.compare(b.pre.number)
}

// an absent post segment sorts before any post segment
func cmpPostRelease(a, b *pep440Version) int {
	switch {
	case a.post == nil && b.post == nil:
		return 0
	case a.post == nil:
		return -1
	case b.post == nil:
		return 1
	}
	return a.post.compare(*b.post)
}

// an absent dev segment sorts after any dev segment
func cmpDevRelease(a, b *pep440Version) int {
	switch {
	case a.dev == nil && b.dev == nil:
		return 0
	case a.dev == nil:
		return 1
	case b.dev == nil:
		return -1
	}
	return a.dev.compare(*b.dev)
}

// a version without a local label sorts before one with a label. Labels are compared segment by segment:
// numeric segments compare numerically and sort after alphanumeric segments, and when one label is a prefix
// of the other the shorter one sorts first.
func cmpLocal(a, b *pep440Version) int {
	switch {
	case len(a.local) == 0 && len(b.local) == 0:
		return 0
	case len(a.local) == 0:
		return -1
	case len(b.local) == 0:
		return 1
	}

	for i := 0; i < len(a.local) && i < len(b.local); i++ {
		if d := a.local[i].compare(b.local[i]); d != 0 {
			return d
		}
	}
	return sign(len(a.local) - len(b.local))
}

func (s localSegment) compare(other localSegment) int {
	switch {
	case s.numeric && other.numeric:
		return numeral(s.value).compare(numeral(other.value))
	case s.numeric:
		return 1
	case other.numeric:
		return -1
	}
	return strings.Compare(s.value, other.value)
}
