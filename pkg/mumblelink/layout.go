package mumblelink

import "unsafe"

// Buffer capacities of the producer's record, in elements.
const (
	NameLen        = 256
	IdentityLen    = 256
	ContextSize    = 256
	DescriptionLen = 2048
)

// Vector3D is a three dimensional vector.
type Vector3D [3]float32

// Position is a character or camera position in a left handed coordinate
// system, in meters.
type Position struct {
	// Position in space.
	Position Vector3D `json:"position"`
	// Front is a unit vector pointing out of the eyes.
	Front Vector3D `json:"front"`
	// Top is a unit vector pointing out of the top of the head.
	Top Vector3D `json:"top"`
}

// PositionImperial is a Position scaled to inches.
type PositionImperial struct {
	Position Vector3D `json:"position"`
	Front    Vector3D `json:"front"`
	Top      Vector3D `json:"top"`
}

// RawRecord is the byte exact layout the producer writes. Every field is
// 4-byte aligned, so the Go layout matches the producer's C struct with no
// extra padding. Field order and sizes must not change.
type RawRecord struct {
	UIVersion   uint32
	UITick      uint32
	Avatar      Position
	Name        [NameLen]WChar
	Camera      Position
	Identity    [IdentityLen]WChar
	ContextLen  uint32
	Context     [ContextSize]byte
	Description [DescriptionLen]WChar
}

// RawSize is the size of the shared region in bytes.
const RawSize = int(unsafe.Sizeof(RawRecord{}))

const tickOffset = int(unsafe.Offsetof(RawRecord{}.UITick))
