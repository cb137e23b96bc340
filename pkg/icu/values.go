package icu

import (
	"fmt"
	"strings"
)

// Values maps placeholder and tag names to interpolation values.
type Values map[string]any

// RichTag renders a tag's formatted children into a structured node.
// The node is kept as is by FormatRich and stringified elsewhere.
type RichTag func(children Parts) any

// MarkupTag renders a tag's formatted children into a markup string.
type MarkupTag func(children string) string

// Embed marks a value as a rich node to be embedded verbatim by FormatRich.
type Embed struct {
	Node any
}

// Part is one piece of rich output: either a text run or a node.
type Part struct {
	Node any
	Text string
}

// IsNode reports whether the part carries a node rather than text.
func (p Part) IsNode() bool {
	return p.Node != nil
}

// Parts is the output of FormatRich: text runs interleaved with nodes.
type Parts []Part

// String concatenates text runs and the string form of every node.
func (ps Parts) String() string {
	var b strings.Builder
	for _, p := range ps {
		if p.IsNode() {
			b.WriteString(stringify(p.Node))
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

// Nodes returns only the node parts' values.
func (ps Parts) Nodes() []any {
	var nodes []any
	for _, p := range ps {
		if p.IsNode() {
			nodes = append(nodes, p.Node)
		}
	}
	return nodes
}

func (ps Parts) appendText(s string) Parts {
	if s == "" {
		return ps
	}
	if n := len(ps); n > 0 && !ps[n-1].IsNode() {
		ps[n-1].Text += s
		return ps
	}
	return append(ps, Part{Text: s})
}

func (ps Parts) appendNode(node any) Parts {
	switch v := node.(type) {
	case nil:
		return ps
	case string:
		return ps.appendText(v)
	case Parts:
		for _, p := range v {
			if p.IsNode() {
				ps = append(ps, p)
			} else {
				ps = ps.appendText(p.Text)
			}
		}
		return ps
	}
	return append(ps, Part{Node: node})
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case Parts:
		return s.String()
	case Embed:
		return stringify(s.Node)
	case fmt.Stringer:
		return s.String()
	case error:
		return s.Error()
	}
	return fmt.Sprint(v)
}
