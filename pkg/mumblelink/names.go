package mumblelink

// DefaultName returns the object name the producer publishes under on this
// platform.
func DefaultName() string {
	return defaultName()
}
