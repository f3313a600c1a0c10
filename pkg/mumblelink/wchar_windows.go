//go:build windows

package mumblelink

import "unicode/utf16"

// WChar is the producer's wchar_t: a UTF-16 code unit.
type WChar uint16

// decodeWide decodes up to the first zero code unit. Unpaired surrogates
// become U+FFFD.
func decodeWide(units []WChar) string {
	units = units[:wideLen(units)]
	u16 := make([]uint16, len(units))
	for i, u := range units {
		u16[i] = uint16(u)
	}
	return string(utf16.Decode(u16))
}
