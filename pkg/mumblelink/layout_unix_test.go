//go:build !windows

package mumblelink

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestRawLayoutMatchesProducer(t *testing.T) {
	var r RawRecord
	assert.Equal(t, 10580, RawSize)
	assert.EqualValues(t, 4, unsafe.Sizeof(WChar(0)))
	assert.Equal(t, 4, tickOffset)
	assert.EqualValues(t, 8, unsafe.Offsetof(r.Avatar))
	assert.EqualValues(t, 44, unsafe.Offsetof(r.Name))
	assert.EqualValues(t, 1068, unsafe.Offsetof(r.Camera))
	assert.EqualValues(t, 1104, unsafe.Offsetof(r.Identity))
	assert.EqualValues(t, 2128, unsafe.Offsetof(r.ContextLen))
	assert.EqualValues(t, 2132, unsafe.Offsetof(r.Context))
	assert.EqualValues(t, 2388, unsafe.Offsetof(r.Description))
}
