/*
Package kwargs exchanges keyword-style data between statically-typed Go code and
dynamically-typed callers with exact round-trip fidelity.

The native side holds a closed tagged union, value.Value (Null, Bool, Int,
Float, String, ordered Mapping, Sequence). The host side is any plain Go object
graph: what encoding/json, a YAML decoder or an MCP client hands you. Package
convert moves data between the two, and this package exposes the boundary
contract on top:

  - GenerateDict returns the canonical reference dict as a host graph.
  - EchoDict converts a host graph to the native model and back.

# Usage

	host := map[string]any{
		"int":    42,
		"nested": map[string]any{"inner_key": 42},
		"list":   []any{1, 2.5, "x", true},
	}

	echoed, err := kwargs.EchoDict(host)
	if err != nil {
		// errors.Is(err, value.ErrUnsupportedType), value.ErrUnsupportedKeyType, ...
	}

	ok, _ := convert.Equal(host, echoed) // true

# Guarantees

  - Round-trip: EchoDict(h) is structurally equal to h for every graph built
    from supported scalars, mappings and sequences.
  - Type fidelity: a bool never becomes a number and an integer never becomes
    a float.
  - Mapping order is preserved through the native model, although equality
    ignores it.
  - Nesting is bounded (value.DefaultMaxDepth unless overridden with
    convert.WithMaxDepth); deeper input fails with
    value.ErrRecursionLimitExceeded instead of exhausting the stack.

The adapters under pkg/adapters expose the same contract over HTTP and MCP,
and cmd/kwargs wraps it in a CLI.
*/
package kwargs
