package mumblelink

// ContextSource is implemented by Record and RawRecord.
type ContextSource interface {
	ContextBuffer() *[ContextSize]byte
}

// ReadContextAs reinterprets the leading bytes of the context buffer as a T.
//
// The layout of the context is defined by the game, so nothing is checked:
// T has to match what the game writes, field order and padding included,
// and must be plain data (see the notes in cast.go). A T larger than
// ContextSize gets zeros past the buffer.
func ReadContextAs[T any](src ContextSource) T {
	return castFrom[T](src.ContextBuffer()[:])
}

// MapContext hands a copy of the context buffer to f.
func MapContext[T any](src ContextSource, f func([ContextSize]byte) T) T {
	return f(*src.ContextBuffer())
}
