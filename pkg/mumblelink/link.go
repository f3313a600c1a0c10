package mumblelink

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/srediag/mumblelink/pkg/shm"
)

// region is the part of *shm.Region a Link needs.
type region interface {
	io.ReaderAt
	Uint32At(off int) (uint32, error)
	Created() bool
	Close() error
}

// Link is an open MumbleLink region. Reads are safe from several goroutines.
type Link struct {
	name   string
	region region
}

type options struct {
	name   string
	logger *zap.Logger
	meter  metric.Meter
	tracer trace.Tracer
}

// Option configures Open.
type Option func(*options)

// WithName overrides DefaultName.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger used for open and release events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMeter sets the OpenTelemetry meter of the underlying region.
func WithMeter(m metric.Meter) Option {
	return func(o *options) { o.meter = m }
}

// WithTracer sets the OpenTelemetry tracer of the underlying region.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// Open attaches to the MumbleLink region, creating it when the producer has
// not created it yet. The name is resolved once, here.
func Open(ctx context.Context, opts ...Option) (*Link, error) {
	o := options{name: DefaultName()}
	for _, opt := range opts {
		opt(&o)
	}
	r, err := shm.Open(ctx, shm.OpenOptions{
		Name:   o.name,
		Size:   RawSize,
		Logger: o.logger,
		Meter:  o.meter,
		Tracer: o.tracer,
	})
	if err != nil {
		return nil, err
	}
	return &Link{name: o.name, region: r}, nil
}

// OpenNamed is Open with WithName(name).
func OpenNamed(ctx context.Context, name string, opts ...Option) (*Link, error) {
	return Open(ctx, append(opts, WithName(name))...)
}

// Name returns the object name of the region.
func (l *Link) Name() string {
	return l.name
}

// Created reports whether this Link created the region rather than the producer.
func (l *Link) Created() bool {
	return l.region != nil && l.region.Created()
}

// ReadRaw copies the record out of shared memory as is.
func (l *Link) ReadRaw() (RawRecord, error) {
	var raw RawRecord
	if l == nil || l.region == nil {
		return raw, ErrUnreadable
	}
	if _, err := l.region.ReadAt(asBytes(&raw), 0); err != nil {
		return RawRecord{}, err
	}
	return raw, nil
}

// Read copies and decodes the record.
func (l *Link) Read() (Record, error) {
	raw, err := l.ReadRaw()
	if err != nil {
		return Record{}, err
	}
	return raw.Decode(), nil
}

// Tick loads only the UITick field.
func (l *Link) Tick() (uint32, error) {
	if l == nil || l.region == nil {
		return 0, ErrUnreadable
	}
	return l.region.Uint32At(tickOffset)
}

// Close releases the region. Later reads fail with ErrUnreadable. It is safe
// to call more than once.
func (l *Link) Close() error {
	if l == nil || l.region == nil {
		return nil
	}
	return l.region.Close()
}
