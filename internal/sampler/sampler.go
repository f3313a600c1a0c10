// Package sampler polls a MumbleLink region on behalf of a consumer and
// keeps the records whose tick changed.
package sampler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Workiva/go-datastructures/queue"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/srediag/mumblelink/api"
	"github.com/srediag/mumblelink/internal/logs"
	"github.com/srediag/mumblelink/pkg/mumblelink"
)

// ErrNoProducer is returned while the region holds a zero tick.
var ErrNoProducer = errors.New("producer has not published yet")

// Sample is a record together with the time it was read.
type Sample struct {
	Record mumblelink.Record
	At     time.Time
}

// Sampler reads a region and remembers the last records whose tick differed
// from the previous read. It is safe for concurrent use.
type Sampler struct {
	reader  api.Reader
	history *queue.RingBuffer
	log     *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	seen     bool
	lastTick uint64
}

// New returns a sampler over r keeping up to size changed records. The ring
// rounds size up to a power of two.
func New(r api.Reader, size uint64, log *zap.Logger) *Sampler {
	if size == 0 {
		size = 1
	}
	return &Sampler{
		reader:  r,
		history: queue.NewRingBuffer(size),
		log:     logs.OrNamed(log, "sampler").With(zap.String("name", r.Name())),
		now:     time.Now,
	}
}

// Poll reads the region once. changed reports whether the tick differs from
// the previous successful poll; the first poll always counts as a change.
func (s *Sampler) Poll() (sample Sample, changed bool, err error) {
	rec, err := s.reader.Read()
	if err != nil {
		return Sample{}, false, err
	}
	sample = Sample{Record: rec, At: s.now()}

	s.mu.Lock()
	changed = !s.seen || rec.UITick != s.lastTick
	s.seen = true
	s.lastTick = rec.UITick
	s.mu.Unlock()

	if changed {
		s.push(sample)
	}
	return sample, changed, nil
}

// push drops the oldest entry when the ring is full.
func (s *Sampler) push(sample Sample) {
	for {
		ok, err := s.history.Offer(sample)
		if err != nil || ok {
			return
		}
		if _, err := s.history.Poll(time.Millisecond); err != nil && !errors.Is(err, queue.ErrTimeout) {
			return
		}
	}
}

// Drain removes and returns the buffered samples, oldest first.
func (s *Sampler) Drain() []Sample {
	out := make([]Sample, 0, s.history.Len())
	for s.history.Len() > 0 {
		item, err := s.history.Poll(time.Millisecond)
		if err != nil {
			break
		}
		out = append(out, item.(Sample))
	}
	return out
}

// Len returns the number of buffered samples.
func (s *Sampler) Len() int {
	return int(s.history.Len())
}

// Run polls every interval until ctx is done and calls fn for every changed
// sample. Read errors are logged and polling continues.
func (s *Sampler) Run(ctx context.Context, interval time.Duration, fn func(Sample)) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		sample, changed, err := s.Poll()
		switch {
		case err != nil:
			s.log.Warn("poll failed", zap.Error(err))
			if errors.Is(err, mumblelink.ErrUnreadable) {
				return err
			}
		case changed && fn != nil:
			fn(sample)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Close releases the history ring.
func (s *Sampler) Close() {
	s.history.Dispose()
}

// WaitForProducer polls r with b until the producer has published a non-zero
// tick. Read errors other than a zero tick stop the wait immediately.
func WaitForProducer(ctx context.Context, r api.Reader, b backoff.BackOff, log *zap.Logger) (mumblelink.Record, error) {
	log = logs.OrNamed(log, "sampler").With(zap.String("name", r.Name()))
	var rec mumblelink.Record
	op := func() error {
		var err error
		rec, err = r.Read()
		if err != nil {
			return backoff.Permanent(err)
		}
		if rec.UITick == 0 {
			return ErrNoProducer
		}
		return nil
	}
	notify := func(err error, next time.Duration) {
		log.Info("waiting for producer", zap.Error(err), zap.Duration("next", next))
	}
	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return mumblelink.Record{}, err
	}
	return rec, nil
}
