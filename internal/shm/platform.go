// Package shm contains the platform-specific providers behind named shared memory regions.
package shm

import (
	"context"
	"errors"
)

var (
	// ErrUndersized is returned when an existing object is smaller than the requested size.
	ErrUndersized = errors.New("shared memory object smaller than requested size")
	// ErrNoSpace is returned when /dev/shm cannot hold a new object of the requested size.
	ErrNoSpace = errors.New("shared memory has not enough space left")
	// ErrUnsupportedPlatform is returned by the provider on platforms without an implementation.
	ErrUnsupportedPlatform = errors.New("shared memory is not supported on this platform")
	// ErrInvalidName is returned for empty names or names containing a path separator.
	ErrInvalidName = errors.New("invalid shared memory name")
)

// MappedRegion represents a memory-mapped shared region.
type MappedRegion struct {
	Addr []byte
	Name string
	// Created reports whether this process created the object rather than attaching to it.
	Created bool

	// fd on unix, HANDLE on windows
	handle uintptr
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	Name string
	Size int
}

// Provider opens, maps and releases named shared memory objects.
// Exactly one implementation is compiled in per platform.
type Provider interface {
	// MapRegion attaches to the named object, creating and sizing it when absent.
	MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error)
	// UnmapRegion unmaps the view and releases the OS handle. It is a no-op on a released region.
	UnmapRegion(ctx context.Context, region *MappedRegion) error
	// Unlink removes the named object so the next MapRegion creates a fresh one.
	Unlink(ctx context.Context, name string) error
}

// NewProvider returns the provider for the running platform.
func NewProvider() Provider {
	return newPlatformProvider()
}

func validate(opts MapOptions) error {
	if err := validateName(opts.Name); err != nil {
		return err
	}
	if opts.Size <= 0 {
		return errors.New("invalid region size")
	}
	return nil
}
