package value

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes v as a yaml.Node so mapping order is kept.
func (v Value) MarshalYAML() (any, error) {
	return ToYAMLNode(v), nil
}

// UnmarshalYAML decodes a YAML node into v.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	out, err := FromYAMLNode(node)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// ParseYAML decodes one YAML document. An empty document is Null.
func ParseYAML(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, fmt.Errorf("yaml: %w", err)
	}
	return FromYAMLNode(&node)
}

// ToYAMLNode builds the YAML representation of v.
func ToYAMLNode(v Value) *yaml.Node {
	type task struct {
		v   Value
		dst **yaml.Node
	}
	var root *yaml.Node
	stack := []task{{v, &root}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch t.v.tag {
		case TagBool:
			*t.dst = scalarNode("!!bool", strconv.FormatBool(t.v.data.(bool)))
		case TagInt:
			*t.dst = scalarNode("!!int", strconv.FormatInt(t.v.data.(int64), 10))
		case TagFloat:
			*t.dst = scalarNode("!!float", yamlFloat(t.v.data.(float64)))
		case TagString:
			*t.dst = scalarNode("!!str", t.v.data.(string))
		case TagMapping:
			m := t.v.data.(*Mapping)
			node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 2*m.Len())}
			*t.dst = node
			i := 0
			m.Each(func(key string, child Value) bool {
				node.Content[i] = scalarNode("!!str", key)
				stack = append(stack, task{child, &node.Content[i+1]})
				i += 2
				return true
			})
		case TagSequence:
			items := t.v.data.(*Sequence).items
			node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, len(items))}
			*t.dst = node
			for i, child := range items {
				stack = append(stack, task{child, &node.Content[i]})
			}
		default:
			*t.dst = scalarNode("!!null", "null")
		}
	}
	return root
}

// FromYAMLNode converts a decoded YAML node. Mapping keys must be strings;
// merge keys ("<<") are expanded and never override explicit keys.
func FromYAMLNode(node *yaml.Node) (Value, error) {
	d := &yamlDecoder{aliases: map[*yaml.Node]bool{}}
	return d.convert(node, "$", 0)
}

// yamlDecoder tracks alias expansion the way yaml.v3 does when decoding into
// Go values, so a small document cannot expand into an enormous tree.
type yamlDecoder struct {
	decodeCount int
	aliasCount  int
	aliasDepth  int
	aliases     map[*yaml.Node]bool
}

func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= 400000:
		return 0.99
	case decodeCount >= 4000000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decodeCount-400000)/3600000)
	}
}

func (d *yamlDecoder) convert(node *yaml.Node, path string, depth int) (Value, error) {
	d.decodeCount++
	if d.aliasDepth > 0 {
		d.aliasCount++
	}
	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return Value{}, &PathError{Path: path, Err: ErrExcessiveAliasing}
	}

	switch node.Kind {
	case 0:
		return Null(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return d.convert(node.Content[0], path, depth)
	case yaml.AliasNode:
		if d.aliases[node] {
			return Value{}, &PathError{Path: path, Value: node.Value, Err: fmt.Errorf("%w: anchor %q contains itself", ErrExcessiveAliasing, node.Value)}
		}
		d.aliases[node] = true
		d.aliasDepth++
		v, err := d.convert(node.Alias, path, depth)
		d.aliasDepth--
		delete(d.aliases, node)
		return v, err
	case yaml.ScalarNode:
		return yamlScalar(node, path)
	case yaml.MappingNode:
		if depth+1 > DefaultMaxDepth {
			return Value{}, &PathError{Path: path, Err: ErrRecursionLimitExceeded}
		}
		explicit := make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			if k := node.Content[i]; !isMergeKey(k) {
				explicit[k.Value] = true
			}
		}
		m := NewMapping()
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, child := node.Content[i], node.Content[i+1]
			if isMergeKey(k) {
				if err := d.merge(m, explicit, child, JoinPath(path, k.Value), depth); err != nil {
					return Value{}, err
				}
				continue
			}
			if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!str" {
				return Value{}, &PathError{Path: path, Value: k.Value, Err: fmt.Errorf("%w: %s", ErrUnsupportedKeyType, k.ShortTag())}
			}
			cv, err := d.convert(child, JoinPath(path, k.Value), depth+1)
			if err != nil {
				return Value{}, err
			}
			m.Set(k.Value, cv)
		}
		return MappingValue(m), nil
	case yaml.SequenceNode:
		if depth+1 > DefaultMaxDepth {
			return Value{}, &PathError{Path: path, Err: ErrRecursionLimitExceeded}
		}
		s := NewSequence()
		for i, child := range node.Content {
			cv, err := d.convert(child, IndexPath(path, i), depth+1)
			if err != nil {
				return Value{}, err
			}
			s.Append(cv)
		}
		return SequenceValue(s), nil
	}
	return Value{}, &PathError{Path: path, Value: node.Value, Err: ErrUnsupportedType}
}

// merge copies the keys of a merge source into dst. Explicit keys and keys
// from earlier sources win.
func (d *yamlDecoder) merge(dst *Mapping, explicit map[string]bool, node *yaml.Node, path string, depth int) error {
	src, err := d.convert(node, path, depth)
	if err != nil {
		return err
	}
	var sources []*Mapping
	switch src.tag {
	case TagMapping:
		sources = append(sources, src.data.(*Mapping))
	case TagSequence:
		for _, item := range src.data.(*Sequence).items {
			if item.tag != TagMapping {
				return &PathError{Path: path, Err: fmt.Errorf("%w: merge source must be a mapping, got %s", ErrUnsupportedType, item.tag)}
			}
			sources = append(sources, item.data.(*Mapping))
		}
	default:
		return &PathError{Path: path, Err: fmt.Errorf("%w: merge source must be a mapping, got %s", ErrUnsupportedType, src.tag)}
	}
	for _, m := range sources {
		m.Each(func(key string, v Value) bool {
			if !explicit[key] && !dst.Has(key) {
				dst.Set(key, v)
			}
			return true
		})
	}
	return nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge"
}

func yamlScalar(node *yaml.Node, path string) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, &PathError{Path: path, Value: node.Value, Err: fmt.Errorf("%w: %v", ErrUnsupportedType, err)}
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return Value{}, &PathError{Path: path, Value: node.Value, Err: fmt.Errorf("%w: %v", ErrUnsupportedType, err)}
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, &PathError{Path: path, Value: node.Value, Err: fmt.Errorf("%w: %v", ErrUnsupportedType, err)}
		}
		return Float(f), nil
	case "!!str", "!!timestamp":
		return String(node.Value), nil
	}
	return Value{}, &PathError{Path: path, Value: node.Value, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, node.ShortTag())}
}

func scalarNode(tag, text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: text}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return FormatFloat(f)
}
