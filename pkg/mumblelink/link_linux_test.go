//go:build linux

package mumblelink

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	internalshm "github.com/srediag/mumblelink/internal/shm"
	"github.com/srediag/mumblelink/pkg/shm"
)

func TestDefaultNameUsesUID(t *testing.T) {
	require.Equal(t, "MumbleLink."+strconv.Itoa(os.Getuid()), DefaultName())
}

func TestLinkSharedMemoryRoundTrip(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skipf("/dev/shm not available: %v", err)
	}
	ctx := context.Background()
	name := fmt.Sprintf("MumbleLink.test-%d-%d", os.Getpid(), time.Now().UnixNano())
	defer shm.Remove(ctx, name)

	// stand-in for the producer
	provider := internalshm.NewProvider()
	producer, err := provider.MapRegion(ctx, internalshm.MapOptions{Name: name, Size: RawSize})
	require.NoError(t, err)
	defer provider.UnmapRegion(ctx, producer)
	require.True(t, producer.Created)

	link, err := OpenNamed(ctx, name)
	require.NoError(t, err)
	require.Equal(t, name, link.Name())
	require.False(t, link.Created())

	raw := sampleRaw()
	copy(producer.Addr, asBytes(raw))

	rec, err := link.Read()
	require.NoError(t, err)
	require.Equal(t, raw.Decode(), rec)

	raw.UITick++
	copy(producer.Addr, asBytes(raw))
	tick, err := link.Tick()
	require.NoError(t, err)
	require.Equal(t, raw.UITick, tick)

	require.NoError(t, link.Close())
	require.NoError(t, link.Close())
	_, err = link.Read()
	require.ErrorIs(t, err, ErrUnreadable)
}

func TestLinkCreatesMissingRegion(t *testing.T) {
	if _, err := os.Stat("/dev/shm"); err != nil {
		t.Skipf("/dev/shm not available: %v", err)
	}
	ctx := context.Background()
	name := fmt.Sprintf("MumbleLink.fresh-%d-%d", os.Getpid(), time.Now().UnixNano())
	defer shm.Remove(ctx, name)

	first, err := Open(ctx, WithName(name))
	require.NoError(t, err)
	defer first.Close()
	require.True(t, first.Created())

	fi, err := os.Stat("/dev/shm/" + name)
	require.NoError(t, err)
	require.EqualValues(t, RawSize, fi.Size())

	second, err := OpenNamed(ctx, name)
	require.NoError(t, err)
	defer second.Close()
	require.False(t, second.Created())

	rec, err := second.Read()
	require.NoError(t, err)
	require.Equal(t, Record{}, rec)
}

func TestLinkOpenFailureIsOSError(t *testing.T) {
	_, err := OpenNamed(context.Background(), "nested/name")
	var osErr *OSError
	require.ErrorAs(t, err, &osErr)
}
