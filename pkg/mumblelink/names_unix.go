//go:build !windows

package mumblelink

import (
	"os"
	"strconv"
)

// The producer keys its object on the real user id.
func defaultName() string {
	return "MumbleLink." + strconv.Itoa(os.Getuid())
}
