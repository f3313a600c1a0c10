// Package api defines public API contracts for mumblelink consumers.
package api

import "github.com/srediag/mumblelink/pkg/mumblelink"

// Reader reads the current record of one MumbleLink region.
// *mumblelink.Link implements it.
type Reader interface {
	// Name returns the shared memory object name.
	Name() string
	// Read copies and decodes the current record.
	Read() (mumblelink.Record, error)
	// Tick returns the producer's tick counter without decoding the record.
	Tick() (uint32, error)
}

// ReadCloser is a Reader that owns its region.
type ReadCloser interface {
	Reader
	Close() error
}

var _ ReadCloser = (*mumblelink.Link)(nil)
