package object

import (
	"log/slog"
)

// DefaultMaxDepth bounds the nesting Build and Populate descend into.
const DefaultMaxDepth = 64

type options struct {
	logger   *slog.Logger
	maxDepth int
}

// Option configures Build and Populate.
type Option func(*options)

// WithLogger sets the logger skipped fields are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:   slog.Default(),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
