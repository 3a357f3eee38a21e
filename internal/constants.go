package internal

const (
	// ApplicationName is the non-capitalized name of the application (do not change this)
	ApplicationName = "vercheck"

	// DefaultAdvisoryURL is the OSV export of every PyPI advisory.
	DefaultAdvisoryURL = "https://osv-vulnerabilities.storage.googleapis.com/PyPI/all.zip"

	// DefaultFixture is where generated assertions are written and read from by default.
	DefaultFixture = "version-assertions.txt"
)
