//go:build windows

package mumblelink

import "unicode/utf16"

// encodeWide fills dst with s and zero pads the rest.
func encodeWide(dst []WChar, s string) {
	u16 := utf16.Encode([]rune(s))
	n := min(len(u16), len(dst))
	for i := 0; i < n; i++ {
		dst[i] = WChar(u16[i])
	}
	clear(dst[n:])
}
