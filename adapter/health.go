package adapter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/heptiolabs/healthcheck"

	"github.com/srediag/mumblelink/api"
)

// ErrNoProducer is reported while the region holds a zero tick.
var ErrNoProducer = errors.New("no producer has published to the link")

// Readable returns a liveness check that passes while the region can be read.
func Readable(r api.Reader) healthcheck.Check {
	return func() error {
		_, err := r.Tick()
		return err
	}
}

// TickWatch is a readiness check that fails when the producer's tick has not
// moved for longer than the window.
type TickWatch struct {
	r      api.Reader
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	seen    bool
	last    uint32
	changed time.Time
}

// NewTickWatch returns a TickWatch over r.
func NewTickWatch(r api.Reader, window time.Duration) *TickWatch {
	return &TickWatch{r: r, window: window, now: time.Now}
}

// Check implements healthcheck.Check.
func (w *TickWatch) Check() error {
	tick, err := w.r.Tick()
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	now := w.now()
	if !w.seen || tick != w.last {
		w.seen = true
		w.last = tick
		w.changed = now
	}
	if tick == 0 {
		return ErrNoProducer
	}
	if idle := now.Sub(w.changed); idle > w.window {
		return fmt.Errorf("tick %d unchanged for %s", tick, idle.Truncate(time.Millisecond))
	}
	return nil
}

// NewHealthHandler returns a handler serving /live and /ready for the readers.
func NewHealthHandler(readers []api.Reader, window time.Duration) healthcheck.Handler {
	h := healthcheck.NewHandler()
	for _, r := range readers {
		h.AddLivenessCheck(r.Name()+"-readable", Readable(r))
		h.AddReadinessCheck(r.Name()+"-tick", NewTickWatch(r, window).Check)
	}
	return h
}
