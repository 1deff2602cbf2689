package optimizer

import "github.com/specialistvlad/cpmgrid/internal/resources"

// DefaultMaxIterations is the number of search rounds when none is set.
const DefaultMaxIterations = 3

type options struct {
	maxIterations int
	parallel      bool
	laborGroups   []string
}

// Option configures Optimize.
type Option func(*options)

// WithMaxIterations caps the number of search rounds. Negative values are
// ignored; zero returns the leveling baseline unchanged.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxIterations = n
		}
	}
}

// WithParallel evaluates the candidate shifts of each task concurrently.
// The result is identical to the sequential search.
func WithParallel(enabled bool) Option {
	return func(o *options) {
		o.parallel = enabled
	}
}

// WithLaborGroups sets the resource groups or types counted as labor.
func WithLaborGroups(groups ...string) Option {
	return func(o *options) {
		if len(groups) > 0 {
			o.laborGroups = groups
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		maxIterations: DefaultMaxIterations,
		laborGroups:   resources.DefaultLaborGroups,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
