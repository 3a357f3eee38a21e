package corpus

import (
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/vercheck/advisory"
	"github.com/anchore/vercheck/vercheck/version"
)

// Skipped describes a version string that could not be parsed and was left out of the corpus.
type Skipped struct {
	Package string
	Version string
	Err     error
}

// Builder accumulates versions per package. Values are neither unique nor sorted until Freeze is called.
type Builder struct {
	packages  []string
	versions  map[string][]*version.Version
	skipped   []Skipped
	excluded  *strset.Set
	ecosystem string
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		versions: make(map[string][]*version.Version),
		excluded: strset.New(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build accumulates all affected versions of the given records and freezes the result.
func Build(records []advisory.Record, opts ...Option) *Corpus {
	b := NewBuilder(opts...)
	for _, r := range records {
		b.AddRecord(r)
	}
	return b.Freeze()
}

func (b *Builder) AddRecord(r advisory.Record) {
	for _, entry := range advisory.Affected(r) {
		// entries that do not name an ecosystem are always kept
		if b.ecosystem != "" && entry.Ecosystem != "" && !strings.EqualFold(entry.Ecosystem, b.ecosystem) {
			log.Debugf("ignoring %d versions of %s package %q in %s", len(entry.Versions), entry.Ecosystem, entry.Package, r.ID)
			continue
		}
		b.Add(entry.Package, entry.Versions...)
	}
}

// Add parses and accumulates the given version strings for a package. Strings that cannot be parsed are logged
// and skipped.
func (b *Builder) Add(pkg string, raws ...string) {
	if len(raws) == 0 || b.excluded.Has(pkg) {
		return
	}

	if _, ok := b.versions[pkg]; !ok {
		b.packages = append(b.packages, pkg)
		b.versions[pkg] = nil
	}

	for _, raw := range raws {
		v, err := version.Parse(raw)
		if err != nil {
			log.Warnf("skipping invalid version %q for package %q: %v", raw, pkg, err)
			b.skipped = append(b.skipped, Skipped{Package: pkg, Version: raw, Err: err})
			continue
		}
		b.versions[pkg] = append(b.versions[pkg], v)
	}
}

// Freeze returns an immutable corpus where each package's versions are sorted ascending and deduplicated by
// value. When several strings denote the same version the first one observed is kept.
func (b *Builder) Freeze() *Corpus {
	c := &Corpus{
		packages: append([]string(nil), b.packages...),
		versions: make(map[string][]*version.Version, len(b.packages)),
		skipped:  append([]Skipped(nil), b.skipped...),
	}
	for _, pkg := range b.packages {
		c.versions[pkg] = sortUnique(b.versions[pkg])
	}

	log.Debugf("corpus contains %d packages, %d versions (%d skipped)", c.Len(), c.VersionCount(), len(c.skipped))
	return c
}

func sortUnique(versions []*version.Version) []*version.Version {
	sorted := append([]*version.Version(nil), versions...)
	// stable: among equal versions the earliest observed stays first
	sort.SliceStable(sorted, func(i, j int) bool {
		return version.Compare(sorted[i], sorted[j]) < 0
	})

	var unique []*version.Version
	for _, v := range sorted {
		if len(unique) > 0 && version.Compare(unique[len(unique)-1], v) == 0 {
			continue
		}
		unique = append(unique, v)
	}
	return unique
}
