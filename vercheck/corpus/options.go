package corpus

type Option func(*Builder)

// WithExcludedPackages drops every version of the named packages.
func WithExcludedPackages(names ...string) Option {
	return func(b *Builder) {
		b.excluded.Add(names...)
	}
}

// WithEcosystem drops affected entries that name a different OSV ecosystem (e.g. "PyPI"). Entries without an
// ecosystem are always kept; an empty value keeps everything.
func WithEcosystem(ecosystem string) Option {
	return func(b *Builder) {
		b.ecosystem = ecosystem
	}
}
