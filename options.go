package dotted

import (
	"log/slog"

	"github.com/agentable/dotted/normalize"
)

// Default option values.
const (
	DefaultDelimiter   = "."
	DefaultChildrenKey = "children"
)

// Option configures an operation. Options an operation does not use are
// ignored, so one option list can be shared between calls.
type Option func(*options)

// options holds the configuration assembled from a list of [Option].
type options struct {
	delimiter   string
	def         any
	normalizer  func(string) string
	childrenKey string
	clone       bool
	logger      *slog.Logger
}

// newOptions applies opts over the defaults.
func newOptions(opts []Option) *options {
	o := &options{
		delimiter:   DefaultDelimiter,
		childrenKey: DefaultChildrenKey,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDelimiter sets the string separating path components. Default ".".
func WithDelimiter(delim string) Option {
	return func(o *options) {
		o.delimiter = delim
	}
}

// WithDefault sets the value returned by reads that find nothing. Default nil.
func WithDefault(v any) Option {
	return func(o *options) {
		o.def = v
	}
}

// WithNormalize makes filter accessors compare field values after
// [normalize.String], so "Tom &amp; Jerry" matches "tom & jerry".
func WithNormalize() Option {
	return WithNormalizer(normalize.String)
}

// WithNormalizer makes filter accessors compare field values after fn.
// A nil fn restores exact comparison.
func WithNormalizer(fn func(string) string) Option {
	return func(o *options) {
		o.normalizer = fn
	}
}

// WithChildrenKey sets the key Flatten descends through. Default "children".
func WithChildrenKey(key string) Option {
	return func(o *options) {
		o.childrenKey = key
	}
}

// WithClone makes Transform start from a deep copy of the source instead of
// an empty mapping.
func WithClone() Option {
	return func(o *options) {
		o.clone = true
	}
}

// WithLogger sets the logger used for debug diagnostics. A nil logger is
// ignored. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
