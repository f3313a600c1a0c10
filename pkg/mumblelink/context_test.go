package mumblelink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleContext struct {
	ServerAddress [28]byte
	MapID         uint32
	MapType       uint32
	ShardID       uint32
	Instance      uint32
	BuildID       uint32
	UIState       uint32
	CompassWidth  uint16
	CompassHeight uint16
	Rotation      float32
	PlayerX       float32
	PlayerY       float32
	MountIndex    uint8
}

func TestReadContextAsRoundTrip(t *testing.T) {
	want := sampleContext{
		MapID:         1206,
		MapType:       5,
		ShardID:       1,
		BuildID:       157135,
		UIState:       0x1a,
		CompassWidth:  362,
		CompassHeight: 338,
		Rotation:      -1.25,
		PlayerX:       4312.5,
		PlayerY:       -19.75,
		MountIndex:    3,
	}
	copy(want.ServerAddress[:], []byte{2, 0, 0x17, 0x70, 10, 0, 0, 1})

	var rec Record
	copy(rec.Context[:], asBytes(&want))
	assert.Equal(t, want, ReadContextAs[sampleContext](&rec))

	// the raw record exposes the same buffer
	var raw RawRecord
	raw.Context = rec.Context
	assert.Equal(t, want, ReadContextAs[sampleContext](&raw))
}

func TestReadContextAsSmallAndLarge(t *testing.T) {
	var rec Record
	for i := range rec.Context {
		rec.Context[i] = 0xab
	}
	assert.Equal(t, uint16(0xabab), ReadContextAs[uint16](&rec))

	big := ReadContextAs[[ContextSize + 16]byte](&rec)
	assert.Equal(t, byte(0xab), big[ContextSize-1])
	assert.Equal(t, [16]byte{}, [16]byte(big[ContextSize:]))
}

func TestMapContext(t *testing.T) {
	var rec Record
	rec.Context[0], rec.Context[255] = 7, 9
	sum := MapContext(&rec, func(b [ContextSize]byte) int {
		b[0] = 100 // works on a copy
		return int(b[0]) + int(b[255])
	})
	assert.Equal(t, 109, sum)
	assert.Equal(t, byte(7), rec.Context[0])
}

func TestCastFromUnalignedSource(t *testing.T) {
	buf := make([]byte, 9)
	want := uint64(0x0102030405060708)
	copy(buf[1:], asBytes(&want))
	assert.Equal(t, want, castFrom[uint64](buf[1:]))
}
