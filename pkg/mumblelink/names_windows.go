//go:build windows

package mumblelink

func defaultName() string {
	return "MumbleLink"
}
