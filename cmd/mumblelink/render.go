package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/luci/go-render/render"
	"github.com/valyala/bytebufferpool"

	"github.com/srediag/mumblelink/pkg/mumblelink"
)

// renderer writes records to out in the configured format. It is safe for
// concurrent use.
type renderer struct {
	mu      sync.Mutex
	out     io.Writer
	format  string
	context string
	units   string
}

func newRenderer(out io.Writer, cfg *Config) *renderer {
	return &renderer{out: out, format: cfg.Format, context: cfg.Context, units: cfg.Units}
}

// view is what json and debug output show for one record.
type view struct {
	Link string `json:"link"`
	mumblelink.Record
	Avatar  any    `json:"avatar"`
	Camera  any    `json:"camera"`
	Units   string `json:"units"`
	Context any    `json:"context,omitempty"`
}

func (r *renderer) view(name string, rec *mumblelink.Record) view {
	v := view{Link: name, Record: *rec, Avatar: rec.Avatar, Camera: rec.Camera, Units: r.units}
	if r.units == "imperial" {
		v.Avatar = rec.AvatarImperial()
		v.Camera = rec.CameraImperial()
	}
	switch r.context {
	case "gw2":
		v.Context = mumblelink.ReadContextAs[GW2Context](rec)
	case "hex":
		v.Context = hex.EncodeToString(rec.ContextBytes())
	}
	return v
}

// Render writes one record.
func (r *renderer) Render(name string, rec *mumblelink.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	v := r.view(name, rec)
	switch r.format {
	case "json":
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = buf.Write(b)
		_ = buf.WriteByte('\n')
	case "debug":
		_, _ = buf.WriteString(render.Render(v))
		_ = buf.WriteByte('\n')
	default:
		r.text(buf, &v)
	}
	_, err := r.out.Write(buf.B)
	return err
}

// Error writes a failed read of name.
func (r *renderer) Error(name string, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, werr := fmt.Fprintf(r.out, "%s: %v\n", name, err)
	return werr
}

func (r *renderer) text(buf *bytebufferpool.ByteBuffer, v *view) {
	unit := "m"
	if r.units == "imperial" {
		unit = "in"
	}
	fmt.Fprintf(buf, "link:        %s\n", v.Link)
	fmt.Fprintf(buf, "ui_version:  %d\n", v.UIVersion)
	fmt.Fprintf(buf, "ui_tick:     %d\n", v.UITick)
	fmt.Fprintf(buf, "name:        %s\n", v.Name)
	fmt.Fprintf(buf, "identity:    %s\n", v.Identity)
	fmt.Fprintf(buf, "description: %s\n", v.Description)
	fmt.Fprintf(buf, "avatar:      %s (%s)\n", formatPosition(v.Avatar), unit)
	fmt.Fprintf(buf, "camera:      %s (%s)\n", formatPosition(v.Camera), unit)
	fmt.Fprintf(buf, "context_len: %d\n", v.ContextLen)
	if v.Context != nil {
		fmt.Fprintf(buf, "context:     %+v\n", v.Context)
	}
	_ = buf.WriteByte('\n')
}

func formatPosition(p any) string {
	switch p := p.(type) {
	case mumblelink.Position:
		return fmt.Sprintf("position=%v front=%v top=%v", p.Position, p.Front, p.Top)
	case mumblelink.PositionImperial:
		return fmt.Sprintf("position=%v front=%v top=%v", p.Position, p.Front, p.Top)
	}
	return fmt.Sprint(p)
}
