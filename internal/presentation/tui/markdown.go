package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/kwargs/pkg/value"
)

// Markdown describes v as a Markdown document: a table of the top-level
// entries for mappings and sequences, a code span otherwise.
func Markdown(title string, v value.Value) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "# %s\n\n", title)
	}

	switch v.Tag() {
	case value.TagMapping:
		m, _ := v.AsMapping()
		sb.WriteString("| Key | Type | Value |\n|---|---|---|\n")
		m.Each(func(key string, child value.Value) bool {
			fmt.Fprintf(&sb, "| `%s` | %s | `%s` |\n", cell(key), child.Tag(), cell(child.String()))
			return true
		})
	case value.TagSequence:
		s, _ := v.AsSequence()
		sb.WriteString("| Index | Type | Value |\n|---|---|---|\n")
		for i, child := range s.Items() {
			fmt.Fprintf(&sb, "| %d | %s | `%s` |\n", i, child.Tag(), cell(child.String()))
		}
	default:
		fmt.Fprintf(&sb, "%s: `%s`\n", v.Tag(), v.String())
	}
	return sb.String()
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "`", "'")
}
