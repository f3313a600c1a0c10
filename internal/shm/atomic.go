package shm

import (
	"encoding/binary"
	"sync/atomic"
	"unsafe"
)

// LoadUint32 loads the native-endian uint32 at off in mem. The load is atomic
// when the address is 4-byte aligned, which holds for any 4-aligned offset
// into a page-aligned mapping. Otherwise it falls back to a plain read.
func LoadUint32(mem []byte, off int) uint32 {
	p := unsafe.Pointer(&mem[off : off+4][0])
	if uintptr(p)%4 != 0 {
		return binary.NativeEndian.Uint32(mem[off:])
	}
	return atomic.LoadUint32((*uint32)(p))
}
