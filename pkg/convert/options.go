package convert

import (
	"github.com/aretw0/kwargs/pkg/value"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is the host mapping produced by ToHost and accepted by FromHost.
type OrderedMap = orderedmap.OrderedMap[string, any]

// NewOrderedMap returns an empty host mapping.
func NewOrderedMap() *OrderedMap {
	return orderedmap.New[string, any]()
}

// Options tunes a conversion.
type Options struct {
	// MaxDepth bounds container nesting. A flat mapping of scalars has depth 1.
	MaxDepth int
	// PlainMaps makes ToHost emit map[string]any instead of *OrderedMap.
	PlainMaps bool
}

type Option func(*Options)

// WithMaxDepth sets the nesting bound. Non-positive values keep the default.
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		if depth > 0 {
			o.MaxDepth = depth
		}
	}
}

// WithPlainMaps makes ToHost build map[string]any mappings. Key order is lost.
func WithPlainMaps() Option {
	return func(o *Options) {
		o.PlainMaps = true
	}
}

func newOptions(opts []Option) Options {
	o := Options{MaxDepth: value.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
