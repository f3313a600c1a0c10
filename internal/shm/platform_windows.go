//go:build windows

package shm

import (
	"context"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOpenFileMappingW = modkernel32.NewProc("OpenFileMappingW")
)

const fileMapAllAccess = 0xF001F

type windowsProvider struct{}

func newPlatformProvider() Provider {
	return windowsProvider{}
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func openFileMapping(access uint32, name *uint16) (windows.Handle, error) {
	r, _, e := procOpenFileMappingW.Call(uintptr(access), 0, uintptr(unsafe.Pointer(name)))
	if r == 0 {
		return 0, e
	}
	return windows.Handle(r), nil
}

// MapRegion maps or creates a shared memory region (Windows implementation).
// CreateFileMapping hands back the existing section when another process won
// the race, which counts as an attach.
func (windowsProvider) MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	name, err := windows.UTF16PtrFromString(opts.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidName, err)
	}

	created := false
	h, err := openFileMapping(fileMapAllAccess, name)
	if errors.Is(err, windows.ERROR_FILE_NOT_FOUND) {
		h, err = windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, uint32(opts.Size), name)
		switch {
		case err == nil:
			created = true
		case errors.Is(err, windows.ERROR_ALREADY_EXISTS) && h != 0:
			err = nil
		default:
			return nil, fmt.Errorf("CreateFileMapping: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("OpenFileMapping: %w", err)
	}

	addr, err := windows.MapViewOfFile(h, fileMapAllAccess, 0, 0, uintptr(opts.Size))
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, fmt.Errorf("MapViewOfFile: %w", err)
	}
	return &MappedRegion{
		Addr:    unsafe.Slice((*byte)(unsafe.Pointer(addr)), opts.Size),
		Name:    opts.Name,
		Created: created,
		handle:  uintptr(h),
	}, nil
}

// UnmapRegion unmaps and closes the shared memory region (Windows implementation).
func (windowsProvider) UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	var errs []error
	if err := windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&region.Addr[0]))); err != nil {
		errs = append(errs, fmt.Errorf("UnmapViewOfFile: %w", err))
	}
	if err := windows.CloseHandle(windows.Handle(region.handle)); err != nil {
		errs = append(errs, fmt.Errorf("CloseHandle: %w", err))
	}
	region.Addr = nil
	region.handle = 0
	return errors.Join(errs...)
}

// Unlink is a no-op: the section goes away with its last handle.
func (windowsProvider) Unlink(ctx context.Context, name string) error {
	return validateName(name)
}
