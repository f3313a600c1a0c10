package mumblelink

// wideLen returns the number of code units before the first zero, or
// len(units) when there is none.
func wideLen(units []WChar) int {
	for i, u := range units {
		if u == 0 {
			return i
		}
	}
	return len(units)
}
