//go:build !linux && !windows

package shm

import (
	"context"
	"fmt"
)

type unsupportedProvider struct{}

func newPlatformProvider() Provider {
	return unsupportedProvider{}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (unsupportedProvider) MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	return nil, ErrUnsupportedPlatform
}

func (unsupportedProvider) UnmapRegion(ctx context.Context, region *MappedRegion) error {
	return nil
}

func (unsupportedProvider) Unlink(ctx context.Context, name string) error {
	return ErrUnsupportedPlatform
}
