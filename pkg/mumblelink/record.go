package mumblelink

// Record is the decoded, owned copy of a RawRecord. It shares no memory with
// the shared region.
type Record struct {
	UIVersion   uint64            `json:"ui_version"`
	UITick      uint64            `json:"ui_tick"`
	Avatar      Position          `json:"avatar"`
	Name        string            `json:"name"`
	Camera      Position          `json:"camera"`
	Identity    string            `json:"identity"`
	ContextLen  uint64            `json:"context_len"`
	Context     [ContextSize]byte `json:"-"`
	Description string            `json:"description"`
}

// Decode converts the raw layout. Scalars and vectors are copied, wide
// strings are cut at the first zero and decoded lossily. It never fails.
func (r *RawRecord) Decode() Record {
	return Record{
		UIVersion:   uint64(r.UIVersion),
		UITick:      uint64(r.UITick),
		Avatar:      r.Avatar,
		Name:        decodeWide(r.Name[:]),
		Camera:      r.Camera,
		Identity:    decodeWide(r.Identity[:]),
		ContextLen:  uint64(r.ContextLen),
		Context:     r.Context,
		Description: decodeWide(r.Description[:]),
	}
}

// ContextBuffer implements ContextSource.
func (r *RawRecord) ContextBuffer() *[ContextSize]byte {
	return &r.Context
}

// ContextBuffer implements ContextSource.
func (r *Record) ContextBuffer() *[ContextSize]byte {
	return &r.Context
}

// ContextBytes returns the part of the context the producer marked as used.
func (r *Record) ContextBytes() []byte {
	n := min(r.ContextLen, ContextSize)
	return r.Context[:n]
}

// AvatarImperial returns the avatar position in inches.
func (r *Record) AvatarImperial() PositionImperial {
	return r.Avatar.ToImperial()
}

// CameraImperial returns the camera position in inches.
func (r *Record) CameraImperial() PositionImperial {
	return r.Camera.ToImperial()
}
