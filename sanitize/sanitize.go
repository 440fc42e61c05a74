package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// tags matches reasoning markers and any other angle-bracket markup.
var tags = regexp.MustCompile(`<think>|</think>|<[^>]+>`)

// Clean converts raw model output into display text.
//
// All tag-like markup is removed, runes outside printable ASCII that are not
// whitespace are dropped, and whitespace runs (including newlines) collapse
// to a single space. The result is trimmed and Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	s = tags.ReplaceAllString(s, "")
	s = strings.Map(printable, s)
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

func printable(r rune) rune {
	if r >= 0x20 && r <= 0x7e {
		return r
	}
	if isSpace(r) {
		return r
	}
	return -1
}

// isSpace reports whether r separates words. The file, group, record and unit
// separators (U+001C to U+001F) count as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
