package fifotoken

// Option configures a Token created with New.
type Option func(o *options)

type options struct {
	hooks []Hook
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	mergeDefaults(o)
	return o
}

func mergeDefaults(o *options) {
	if len(o.hooks) == 0 {
		o.hooks = []Hook{nopHook{}}
	}
}

// WithHook adds a Hook that is told about contention. It may be passed more than
// once, in which case the hooks run in the order they were given.
func WithHook(h Hook) Option {
	return func(o *options) {
		if h != nil {
			o.hooks = append(o.hooks, h)
		}
	}
}
