package exporter

/**
 * escape.go - printable form of raw key bytes
 */

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

/**
 * EscapeKey returns s as valid UTF-8. Bytes that are not part of a
 * valid sequence are written as \xNN and a backslash as \\, so two
 * different keys never render the same.
 */
func EscapeKey(s string) string {

	if utf8.ValidString(s) && !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[i])
		case r == '\\':
			b.WriteString(`\\`)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}

	return b.String()
}
