package mumblelink

import "unsafe"

// The two functions below are the only places that look at typed memory as
// bytes. Both copy, so the source never needs the destination's alignment.
//
// T must be plain data: fixed size numbers, bools and arrays or structs of
// them. Pointers, strings, slices, maps, channels, funcs and interfaces would
// receive arbitrary bit patterns.

// asBytes returns the memory of *v as a byte slice.
func asBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// castFrom copies the leading bytes of src into a new T. When T is larger
// than src the remainder stays zero; when it is smaller the rest of src is
// ignored.
func castFrom[T any](src []byte) T {
	var v T
	copy(asBytes(&v), src)
	return v
}
