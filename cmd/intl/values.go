package main

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/intl/pkg/icu"
)

// Render modes.
const (
	modeText     = "text"
	modeMarkup   = "markup"
	modeRich     = "rich"
	modeMarkdown = "markdown"
)

func validMode(mode string) error {
	switch mode {
	case modeText, modeMarkup, modeRich, modeMarkdown:
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownMode, mode)
	}
}

// parseValues turns name=value pairs into interpolation values.
func parseValues(pairs []string) (icu.Values, error) {
	values := make(icu.Values, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidValue, pair)
		}
		values[name] = coerce(value)
	}
	return values, nil
}

// plainDecimal matches "42", "-1.5" or "0.25" but not "007", "1e3", "NaN"
// or "Inf", which stay strings.
var plainDecimal = regexp.MustCompile(`^[+-]?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// coerce converts plain decimals to float64 and RFC 3339 timestamps to
// time.Time so that plural, number and date placeholders receive typed
// values. Everything else stays a string.
func coerce(s string) any {
	if plainDecimal.MatchString(s) {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return s
}

// bindTags binds every tag name to a function that keeps the tag in the
// output: as HTML for text and markup, as a {"tag", "children"} object
// for rich output.
func bindTags(values icu.Values, mode string, tags []string) {
	for _, name := range tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if mode == modeRich {
			values[name] = icu.RichTag(func(children icu.Parts) any {
				return richNode{Tag: name, Children: partsJSON(children)}
			})
			continue
		}
		values[name] = icu.MarkupTag(func(children string) string {
			return "<" + name + ">" + children + "</" + name + ">"
		})
	}
}

type richNode struct {
	Tag      string `json:"tag"`
	Children []any  `json:"children"`
}

// partsJSON converts rich output to JSON-friendly values: text runs become
// strings and nodes are kept.
func partsJSON(parts icu.Parts) []any {
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		switch {
		case !p.IsNode():
			out = append(out, p.Text)
		default:
			if nested, ok := p.Node.(icu.Parts); ok {
				out = append(out, partsJSON(nested)...)
				continue
			}
			out = append(out, p.Node)
		}
	}
	return out
}

// valuesKey is a stable representation of values for cache keys.
func valuesKey(values map[string][]string) string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		for _, v := range values[name] {
			b.WriteString(strconv.Quote(name))
			b.WriteByte('=')
			b.WriteString(strconv.Quote(v))
			b.WriteByte(';')
		}
	}
	return b.String()
}
