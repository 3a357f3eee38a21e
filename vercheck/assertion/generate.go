package assertion

import (
	"github.com/anchore/vercheck/internal/log"
	"github.com/anchore/vercheck/vercheck/corpus"
	"github.com/anchore/vercheck/vercheck/version"
)

// Generate states "a < b" for every adjacent pair of each package's sorted versions. Packages are visited in
// corpus order and a line already produced for an earlier package is not repeated.
func Generate(c *corpus.Corpus) *Set {
	set := NewSet()
	if c == nil {
		return set
	}
	for _, pkg := range c.Packages() {
		versions := c.Versions(pkg)
		added := 0
		for i := 1; i < len(versions); i++ {
			added += set.Add(NewLine(versions[i-1], version.LT, versions[i]))
		}
		log.Debugf("package %q: %d versions, %d new assertions", pkg, len(versions), added)
	}
	return set
}
