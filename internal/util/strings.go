package util

import (
	"strings"
	"unicode"
)

// AddSpace inserts a space between adjacent ASCII and non-ASCII runs, so
// translated messages read well when field names are embedded in CJK text.
func AddSpace(s string) string {
	var b strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && isASCII(r) != isASCII(prev) && !unicode.IsSpace(r) && !unicode.IsSpace(prev) && !unicode.IsPunct(r) && !unicode.IsPunct(prev) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

func isASCII(r rune) bool {
	return r < unicode.MaxASCII
}
