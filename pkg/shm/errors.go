package shm

import (
	"errors"

	internalshm "github.com/srediag/mumblelink/internal/shm"
)

// ErrUnreadable is returned by reads on a region that is not mapped, either
// because it was closed or because it never was. The region has to be opened
// again.
var ErrUnreadable = errors.New("shm: region is not mapped")

// Errors a provider may wrap inside an OSError.
var (
	ErrUndersized          = internalshm.ErrUndersized
	ErrNoSpace             = internalshm.ErrNoSpace
	ErrUnsupportedPlatform = internalshm.ErrUnsupportedPlatform
	ErrInvalidName         = internalshm.ErrInvalidName
)

// OSError records a failed open, close or unlink together with the
// underlying operating system error.
type OSError struct {
	Op   string
	Name string
	Err  error
}

func (e *OSError) Error() string {
	return "shm: " + e.Op + " " + e.Name + ": " + e.Err.Error()
}

func (e *OSError) Unwrap() error {
	return e.Err
}
