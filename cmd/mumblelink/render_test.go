package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srediag/mumblelink/pkg/mumblelink"
)

func sampleRecord() mumblelink.Record {
	rec := mumblelink.Record{
		UIVersion:   2,
		UITick:      42,
		Avatar:      mumblelink.Position{Position: mumblelink.Vector3D{1, 2, 3}, Front: mumblelink.Vector3D{0, 0, 1}},
		Camera:      mumblelink.Position{Position: mumblelink.Vector3D{1, 2, 4}},
		Name:        "Guild Wars 2",
		Identity:    `{"name":"Rytlock"}`,
		Description: "link",
		ContextLen:  4,
	}
	copy(rec.Context[:], []byte{0xde, 0xad, 0xbe, 0xef, 0xff})
	return rec
}

func newTestRenderer(format, context, units string) (*renderer, *bytes.Buffer) {
	var out bytes.Buffer
	return newRenderer(&out, &Config{Format: format, Context: context, Units: units}), &out
}

func TestRenderText(t *testing.T) {
	r, out := newTestRenderer("text", "hex", "metric")
	rec := sampleRecord()
	require.NoError(t, r.Render("MumbleLink", &rec))

	s := out.String()
	assert.Contains(t, s, "link:        MumbleLink\n")
	assert.Contains(t, s, "ui_tick:     42\n")
	assert.Contains(t, s, "name:        Guild Wars 2\n")
	assert.Contains(t, s, "avatar:      position=[1 2 3] front=[0 0 1] top=[0 0 0] (m)\n")
	assert.Contains(t, s, "context:     deadbeef\n")
}

func TestRenderTextImperial(t *testing.T) {
	r, out := newTestRenderer("text", "none", "imperial")
	rec := sampleRecord()
	rec.Avatar = mumblelink.Position{Position: mumblelink.Vector3D{1, 0, 0}}
	require.NoError(t, r.Render("MumbleLink", &rec))

	assert.Contains(t, out.String(), "avatar:      position=[39.3701 0 0] front=[0 0 0] top=[0 0 0] (in)\n")
	assert.NotContains(t, out.String(), "context:")
}

func TestRenderJSON(t *testing.T) {
	r, out := newTestRenderer("json", "hex", "metric")
	rec := sampleRecord()
	require.NoError(t, r.Render("MumbleLink", &rec))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "MumbleLink", got["link"])
	assert.Equal(t, float64(42), got["ui_tick"])
	assert.Equal(t, "Guild Wars 2", got["name"])
	assert.Equal(t, "deadbeef", got["context"])
	assert.Equal(t, "metric", got["units"])
	avatar := got["avatar"].(map[string]any)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, avatar["position"])
}

func TestRenderGW2Context(t *testing.T) {
	want := GW2Context{MapID: 15, UIState: GW2MapOpen | GW2InCombat, CompassWidth: 362, PlayerX: -12.5, MountIndex: 2}
	rec := sampleRecord()
	rec.Context = [mumblelink.ContextSize]byte{}
	copy(rec.Context[:], unsafe.Slice((*byte)(unsafe.Pointer(&want)), unsafe.Sizeof(want)))

	r, out := newTestRenderer("json", "gw2", "metric")
	require.NoError(t, r.Render("MumbleLink", &rec))

	var got struct {
		Context GW2Context `json:"context"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, want, got.Context)
}

func TestRenderDebug(t *testing.T) {
	r, out := newTestRenderer("debug", "none", "metric")
	rec := sampleRecord()
	require.NoError(t, r.Render("MumbleLink", &rec))
	assert.Contains(t, out.String(), `Link:"MumbleLink"`)
	assert.Contains(t, out.String(), `Name:"Guild Wars 2"`)
}

func TestRenderError(t *testing.T) {
	r, out := newTestRenderer("text", "none", "metric")
	require.NoError(t, r.Error("MumbleLink", errors.New("boom")))
	assert.Equal(t, "MumbleLink: boom\n", out.String())
}

func TestGW2ContextLayout(t *testing.T) {
	var c GW2Context
	assert.Equal(t, uintptr(28), unsafe.Offsetof(c.MapID))
	assert.Equal(t, uintptr(52), unsafe.Offsetof(c.CompassWidth))
	assert.Equal(t, uintptr(56), unsafe.Offsetof(c.CompassRotation))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(c.ProcessID))
	assert.Equal(t, uintptr(84), unsafe.Offsetof(c.MountIndex))
	assert.LessOrEqual(t, unsafe.Sizeof(c), uintptr(mumblelink.ContextSize))
}
