//go:build !windows

package mumblelink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWideOutOfRangeIsReplaced(t *testing.T) {
	assert.Equal(t, "�\U0010FFFF", decodeWide([]WChar{0x110000, 0x10FFFF}))
	assert.Equal(t, "�", decodeWide([]WChar{0xFFFFFFFF}))
}
