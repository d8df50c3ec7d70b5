// Package minifier collapses SQL text to a single compact line.
//
// Minify works on raw text and does not treat quoted literals specially:
// runs of spaces inside a string literal are collapsed like any other.
package minifier

import (
	"regexp"
	"strings"
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	// whitespace on either side of ,;()=<>!+-*/
	punctuation = regexp.MustCompile(`\s*([,;()=<>!+\-*/])\s*`)
)

// Minify collapses whitespace runs to one space, drops whitespace next to
// punctuation, and trims the result. It is idempotent.
func Minify(sql string) string {
	out := whitespace.ReplaceAllString(sql, " ")
	out = punctuation.ReplaceAllString(out, "$1")
	return strings.TrimSpace(out)
}
