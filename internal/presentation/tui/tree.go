package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/kwargs/pkg/value"
	"github.com/muesli/termenv"
)

// Tree renders a Value as an indented, coloured outline.
type Tree struct {
	profile termenv.Profile
	indent  string
}

// NewTree creates a Tree for the given colour profile.
// termenv.Ascii disables colours.
func NewTree(profile termenv.Profile) *Tree {
	return &Tree{profile: profile, indent: "  "}
}

// Render returns the outline of v, one scalar per line.
// v is expected to come from the depth-bounded decoders or converters.
func (t *Tree) Render(v value.Value) string {
	var sb strings.Builder
	switch v.Tag() {
	case value.TagMapping, value.TagSequence:
		if t.empty(v) {
			sb.WriteString(t.scalar(v))
			sb.WriteByte('\n')
			break
		}
		t.children(&sb, v, 0)
	default:
		sb.WriteString(t.scalar(v))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (t *Tree) children(sb *strings.Builder, v value.Value, level int) {
	pad := strings.Repeat(t.indent, level)
	if m, err := v.AsMapping(); err == nil {
		m.Each(func(key string, child value.Value) bool {
			sb.WriteString(pad)
			sb.WriteString(t.color(key, "#818cf8").Bold().String())
			sb.WriteByte(':')
			t.entry(sb, child, level)
			return true
		})
		return
	}
	if s, err := v.AsSequence(); err == nil {
		for _, child := range s.Items() {
			sb.WriteString(pad)
			sb.WriteByte('-')
			t.entry(sb, child, level)
		}
	}
}

func (t *Tree) entry(sb *strings.Builder, child value.Value, level int) {
	if child.IsMapping() || child.IsSequence() {
		if !t.empty(child) {
			sb.WriteByte('\n')
			t.children(sb, child, level+1)
			return
		}
	}
	sb.WriteByte(' ')
	sb.WriteString(t.scalar(child))
	sb.WriteByte('\n')
}

func (t *Tree) empty(v value.Value) bool {
	if m, err := v.AsMapping(); err == nil {
		return m.Len() == 0
	}
	if s, err := v.AsSequence(); err == nil {
		return s.Len() == 0
	}
	return false
}

func (t *Tree) scalar(v value.Value) string {
	switch v.Tag() {
	case value.TagNull:
		return t.color("null", "#6b7280").Italic().String()
	case value.TagBool:
		b, _ := v.AsBool()
		return t.color(strconv.FormatBool(b), "#f472b6").String()
	case value.TagInt:
		i, _ := v.AsInt()
		return t.color(strconv.FormatInt(i, 10), "#38bdf8").String()
	case value.TagFloat:
		f, _ := v.AsFloat()
		return t.color(value.FormatFloat(f), "#22d3ee").String()
	case value.TagString:
		s, _ := v.AsString()
		return t.color(strconv.Quote(s), "#4ade80").String()
	case value.TagMapping:
		return "{}"
	case value.TagSequence:
		return "[]"
	}
	return fmt.Sprint(v)
}

func (t *Tree) color(s, hex string) termenv.Style {
	return t.profile.String(s).Foreground(t.profile.Color(hex))
}
