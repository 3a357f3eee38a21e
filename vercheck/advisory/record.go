package advisory

import (
	"github.com/google/osv-scanner/pkg/models"
)

// Record is a single advisory in the OSV schema.
type Record = models.Vulnerability

// PackageVersions is one affected entry of an advisory: a package name and the exact versions the advisory
// lists for it (possibly none).
type PackageVersions struct {
	Ecosystem string
	Package   string
	Versions  []string
}

// Affected returns the affected entries of the record in document order.
func Affected(r Record) []PackageVersions {
	var entries []PackageVersions
	for _, a := range r.Affected {
		entries = append(entries, PackageVersions{
			Ecosystem: string(a.Package.Ecosystem),
			Package:   a.Package.Name,
			Versions:  a.Versions,
		})
	}
	return entries
}
