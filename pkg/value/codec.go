package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Encoding names a text serialization of a Value.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// ParseEncoding accepts "json", "yaml" or "yml" in any case.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return EncodingJSON, nil
	case "yaml", "yml":
		return EncodingYAML, nil
	default:
		return "", fmt.Errorf("unknown encoding %q (want json or yaml)", s)
	}
}

// Encode serializes v. JSON output is indented with two spaces when pretty is set.
func Encode(v Value, enc Encoding, pretty bool) ([]byte, error) {
	switch enc {
	case EncodingYAML:
		var buf bytes.Buffer
		e := yaml.NewEncoder(&buf)
		e.SetIndent(2)
		if err := e.Encode(ToYAMLNode(v)); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		if err := e.Close(); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		data, err := v.MarshalJSON()
		if err != nil || !pretty {
			return data, err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}
}

// Decode parses data in the given encoding.
func Decode(data []byte, enc Encoding) (Value, error) {
	if enc == EncodingYAML {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}
