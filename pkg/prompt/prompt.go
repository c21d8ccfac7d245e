// Package prompt turns a component forest into the natural-language requests
// sent to a code generation provider. Everything here is a pure function of
// its input; nothing touches the Store.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chazu/uiforge/pkg/component"
	"github.com/chazu/uiforge/pkg/tree"
)

// EmptyDesign is the description used when the forest has no components.
const EmptyDesign = "The user has not added any components. Generate a visually appealing landing page with a main heading, a paragraph of text, and a call-to-action button. The theme should be modern and clean."

// Describe renders a forest as a numbered, indented outline. Each sibling
// list is numbered from 1; a container's children follow it two indentation
// levels deeper, introduced by a line announcing them.
func Describe(forest []tree.SnapshotNode) string {
	if len(forest) == 0 {
		return EmptyDesign
	}
	var b strings.Builder
	describeLevel(&b, forest, 0)
	return b.String()
}

func describeLevel(b *strings.Builder, nodes []tree.SnapshotNode, level int) {
	indent := strings.Repeat("  ", level)
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(b, "%s%d. A '%s' component with these properties: { %s }.",
			indent, i+1, n.Kind, formatProps(n.Kind, n.Props))
		if len(n.Children) > 0 {
			fmt.Fprintf(b, "\n%s  It contains the following child components:\n", indent)
			describeLevel(b, n.Children, level+2)
		}
	}
}

// formatProps lists properties in schema order, extra keys last.
func formatProps(k component.Kind, props component.Properties) string {
	keys := props.Keys(k)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		v := props[key]
		if v == nil {
			continue
		}
		parts = append(parts, key+": "+formatValue(v))
	}
	return strings.Join(parts, ", ")
}

func formatValue(v component.Value) string {
	r, ok := v.(component.Responsive)
	if !ok {
		return fmt.Sprintf("%q", v.String())
	}
	return fmt.Sprintf("{ desktop: %q, tablet: %q, mobile: %q }",
		scalarText(r.Desktop), scalarText(r.Tablet), scalarText(r.Mobile))
}

func scalarText(s component.Scalar) string {
	if s == nil {
		return ""
	}
	return s.String()
}

var (
	leadingFence  = regexp.MustCompile("^```(html)?\n")
	trailingFence = regexp.MustCompile("\n```$")
)

// StripCodeFence removes a markdown fence wrapped around a whole response.
// Fences in the middle of the text are left alone.
func StripCodeFence(s string) string {
	s = leadingFence.ReplaceAllString(s, "")
	return trailingFence.ReplaceAllString(s, "")
}
