package mumblelink

import "github.com/srediag/mumblelink/pkg/shm"

// ErrUnreadable is returned when reading from a Link that was closed or
// never mapped. Open a new Link.
var ErrUnreadable = shm.ErrUnreadable

// OSError wraps the operating system error from opening, mapping or
// releasing the region.
type OSError = shm.OSError
