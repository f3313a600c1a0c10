//go:build linux

package shm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// devShm is where glibc's shm_open places named objects.
const devShm = "/dev/shm"

type posixProvider struct {
	dir string
}

func newPlatformProvider() Provider {
	return &posixProvider{dir: devShm}
}

func validateName(name string) error {
	name = strings.TrimPrefix(name, "/")
	if name == "" || strings.ContainsRune(name, '/') || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (p *posixProvider) path(name string) string {
	return filepath.Join(p.dir, strings.TrimPrefix(name, "/"))
}

// MapRegion maps or creates a shared memory region (Linux implementation).
// An existing object is attached and never resized; a missing one is created
// exclusively and sized exactly once before it is mapped.
func (p *posixProvider) MapRegion(ctx context.Context, opts MapOptions) (*MappedRegion, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}
	shmPath := p.path(opts.Name)

	created := false
	fd, err := p.attach(shmPath, opts.Size)
	if errors.Is(err, unix.ENOENT) {
		fd, err = p.create(shmPath, opts.Size)
		created = err == nil
		if errors.Is(err, unix.EEXIST) {
			// lost the creation race, the winner sizes the object
			fd, err = p.attach(shmPath, opts.Size)
		}
	}
	if err != nil {
		return nil, err
	}

	addr, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &MappedRegion{
		Addr:    addr,
		Name:    opts.Name,
		Created: created,
		handle:  uintptr(fd),
	}, nil
}

func (p *posixProvider) attach(shmPath string, size int) (int, error) {
	fd, err := unix.Open(shmPath, unix.O_RDWR|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("open: %w", err)
	}
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("fstat: %w", err)
	}
	if st.Size < int64(size) {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("attach %s: %w (%d < %d)", shmPath, ErrUndersized, st.Size, size)
	}
	return fd, nil
}

func (p *posixProvider) create(shmPath string, size int) (int, error) {
	if !canCreateOnDevShm(uint64(size), shmPath) {
		return -1, fmt.Errorf("create %s: %w (size %d)", shmPath, ErrNoSpace, size)
	}
	fd, err := unix.Open(shmPath, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_NOFOLLOW|unix.O_CLOEXEC, 0600)
	if err != nil {
		return -1, fmt.Errorf("create: %w", err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		_ = unix.Unlink(shmPath)
		return -1, fmt.Errorf("ftruncate: %w", err)
	}
	return fd, nil
}

// UnmapRegion unmaps and closes the shared memory region (Linux implementation).
func (p *posixProvider) UnmapRegion(ctx context.Context, region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	var errs []error
	if err := unix.Munmap(region.Addr); err != nil {
		errs = append(errs, fmt.Errorf("munmap: %w", err))
	}
	if err := unix.Close(int(region.handle)); err != nil {
		errs = append(errs, fmt.Errorf("close: %w", err))
	}
	region.Addr = nil
	region.handle = 0
	return errors.Join(errs...)
}

// Unlink removes the object from /dev/shm. Existing mappings stay valid.
func (p *posixProvider) Unlink(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := unix.Unlink(p.path(name)); err != nil {
		return fmt.Errorf("unlink: %w", err)
	}
	return nil
}
