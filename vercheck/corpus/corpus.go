package corpus

import "github.com/anchore/vercheck/vercheck/version"

// Corpus maps package names to strictly increasing, duplicate-free version lists. Packages are kept in the
// order they were first seen.
type Corpus struct {
	packages []string
	versions map[string][]*version.Version
	skipped  []Skipped
}

func (c *Corpus) Packages() []string {
	return append([]string(nil), c.packages...)
}

func (c *Corpus) Versions(pkg string) []*version.Version {
	return append([]*version.Version(nil), c.versions[pkg]...)
}

func (c *Corpus) Skipped() []Skipped {
	return append([]Skipped(nil), c.skipped...)
}

// Len is the number of packages.
func (c *Corpus) Len() int {
	return len(c.packages)
}

func (c *Corpus) VersionCount() int {
	var count int
	for _, vs := range c.versions {
		count += len(vs)
	}
	return count
}
