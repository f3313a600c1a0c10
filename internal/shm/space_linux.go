//go:build linux

package shm

import (
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// canCreateOnDevShm reports whether an object of size bytes fits in /dev/shm.
// Paths outside /dev/shm are not checked.
func canCreateOnDevShm(size uint64, path string) bool {
	if !strings.HasPrefix(path, devShm+"/") {
		return true
	}
	stat, err := disk.Usage(devShm)
	if err != nil {
		// let the kernel decide
		return true
	}
	return stat.Free >= size
}
