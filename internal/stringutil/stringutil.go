package stringutil

import (
	"strings"
	"unicode"
)

// SplitList splits a comma-separated list of file names.
// An empty string yields no names. Empty items are kept so that opening them fails loudly.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Printable returns a new string with non-printable characters are replaced with Unicode replacement character.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsPrint(r) {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}
