package kwargs

import (
	"fmt"

	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/aretw0/kwargs/pkg/fixture"
)

// Version is the library version reported by the CLI and the servers.
const Version = "0.3.0"

// GenerateDict returns the canonical dict as a host object graph
// (a *convert.OrderedMap in canonical key order).
func GenerateDict() any {
	out, err := convert.ToHost(fixture.Canonical())
	if err != nil {
		// The canonical dict is two levels deep; the default bound cannot be hit.
		panic(fmt.Sprintf("kwargs: canonical dict conversion failed: %v", err))
	}
	return out
}

// EchoDict carries h across the boundary and back: FromHost then ToHost.
// The result is structurally equal to h.
func EchoDict(h any, opts ...convert.Option) (any, error) {
	v, err := convert.FromHost(h, opts...)
	if err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}
	out, err := convert.ToHost(v, opts...)
	if err != nil {
		return nil, fmt.Errorf("echo: %w", err)
	}
	return out, nil
}
