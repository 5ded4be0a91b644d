package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/kwargs/pkg/ports"
	"github.com/aretw0/kwargs/pkg/value"
)

// Mask replaces the values of matching keys.
const Mask = "***"

type piiMiddleware struct {
	next     ports.DictStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of mapping keys
// matching any of the patterns, at every depth, before they are stored.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid mask pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.DictStore) ports.DictStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, name string, dict value.Value) error {
	// Masking works on a copy; the caller keeps its dict.
	return m.next.Save(ctx, name, m.mask(dict.Clone()))
}

func (m *piiMiddleware) Load(ctx context.Context, name string) (value.Value, error) {
	return m.next.Load(ctx, name)
}

func (m *piiMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// mask rewrites v in place. Cycles cannot occur in a Value tree.
func (m *piiMiddleware) mask(v value.Value) value.Value {
	stack := []value.Value{v}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if mp, err := cur.AsMapping(); err == nil {
			for _, key := range mp.Keys() {
				if m.matches(key) {
					mp.Set(key, value.String(Mask))
					continue
				}
				child, _ := mp.Get(key)
				stack = append(stack, child)
			}
			continue
		}
		if seq, err := cur.AsSequence(); err == nil {
			stack = append(stack, seq.Items()...)
		}
	}
	return v
}

func (m *piiMiddleware) matches(key string) bool {
	for _, p := range m.patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
