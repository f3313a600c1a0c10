//go:build !windows

package mumblelink

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// WChar is the producer's wchar_t: a UTF-32 code unit.
type WChar uint32

// decodeWide decodes up to the first zero code unit. Values that are not
// valid code points become U+FFFD.
func decodeWide(units []WChar) string {
	units = units[:wideLen(units)]
	var b strings.Builder
	b.Grow(len(units))
	for _, u := range units {
		r := utf8.RuneError
		if u <= unicode.MaxRune && utf8.ValidRune(rune(u)) {
			r = rune(u)
		}
		b.WriteRune(r)
	}
	return b.String()
}
