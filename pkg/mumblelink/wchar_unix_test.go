//go:build !windows

package mumblelink

// encodeWide fills dst with s and zero pads the rest.
func encodeWide(dst []WChar, s string) {
	i := 0
	for _, r := range s {
		if i == len(dst) {
			break
		}
		dst[i] = WChar(r)
		i++
	}
	clear(dst[i:])
}
