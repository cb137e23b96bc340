package main

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/intl/pkg/sanitizer"
)

// Raw HTML in the source is dropped by goldmark's default renderer.
var markdown = goldmark.New()

// markdownHTML converts a rendered message written in Markdown to HTML and
// applies policy to the result.
func markdownHTML(src string, policy *bluemonday.Policy) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String(), policy), nil
}
