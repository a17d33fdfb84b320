package output

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeTerminal replaces control characters and invalid UTF-8 with
// visible escapes so that process supplied text cannot drive the terminal.
// Newlines and tabs are kept.
//
//	"hi\x1b[31mred" -> `hi\x1b[31mred`
//	"bad:\xff"      -> `bad:\xff`
func SanitizeTerminal(s string) string {
	return sanitize(s, false)
}

// SanitizeLine is SanitizeTerminal for single line contexts such as titles
// and table cells: newlines and tabs are escaped too.
func SanitizeLine(s string) string {
	return sanitize(s, true)
}

func sanitize(s string, oneLine bool) string {
	clean := strings.IndexFunc(s, func(r rune) bool { return needsEscape(r, oneLine) })
	if clean < 0 && utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			appendEscapedRune(&b, rune(s[i]))
		case needsEscape(r, oneLine):
			appendEscapedRune(&b, r)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

func needsEscape(r rune, oneLine bool) bool {
	if r == '\n' || r == '\t' {
		return oneLine
	}
	return r == utf8.RuneError || unicode.IsControl(r)
}

// appendEscapedRune writes r as \xHH, \uHHHH or \UHHHHHHHH.
func appendEscapedRune(b *strings.Builder, r rune) {
	switch {
	case r <= 0xff:
		fmt.Fprintf(b, `\x%02x`, r)
	case r <= 0xffff:
		fmt.Fprintf(b, `\u%04x`, r)
	default:
		fmt.Fprintf(b, `\U%08x`, r)
	}
}
