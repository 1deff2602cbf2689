package leveling

import "github.com/specialistvlad/cpmgrid/internal/resources"

type options struct {
	laborGroups []string
}

// Option configures Level.
type Option func(*options)

// WithLaborGroups sets the resource groups or types counted as labor.
// An empty list keeps resources.DefaultLaborGroups.
func WithLaborGroups(groups ...string) Option {
	return func(o *options) {
		if len(groups) > 0 {
			o.laborGroups = groups
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{laborGroups: resources.DefaultLaborGroups}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
