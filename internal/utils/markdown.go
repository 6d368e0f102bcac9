package utils

import (
	"strings"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts note content to HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func RenderMarkdown(content string) (string, error) {
	var buf strings.Builder
	if err := goldmark.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
