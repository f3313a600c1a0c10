// Package shm provides a handle over a named shared memory region that other
// processes publish into.
//
// A Region attaches to the named object, or creates and sizes it when it does
// not exist yet, and maps it read-write. Reads copy out of the mapping; the
// region never synchronizes with the writer. Close releases the mapping and
// the OS handle exactly once.
//
// The package is instrumented with OpenTelemetry metrics and tracing. Without
// a Meter or Tracer the noop providers are used.
//
// Example usage:
//
//	r, err := shm.Open(ctx, shm.OpenOptions{Name: "MumbleLink", Size: 5460})
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//	buf := make([]byte, r.Size())
//	_, err = r.ReadAt(buf, 0)
//
// Platform-specific providers are in internal/shm.
package shm
