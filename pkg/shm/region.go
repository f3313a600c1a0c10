package shm

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/srediag/mumblelink/internal/logs"
	internalshm "github.com/srediag/mumblelink/internal/shm"
)

const instrumentationName = "github.com/srediag/mumblelink/pkg/shm"

// OpenOptions defines options for creating or opening a shared memory region.
type OpenOptions struct {
	// Name is the identifier for the shared memory region.
	Name string
	// Size is the number of bytes mapped, and the size given to the object when it is created.
	Size int

	Logger *zap.Logger
	Meter  metric.Meter
	Tracer trace.Tracer
}

// Region is a mapped named shared memory region. It is safe for concurrent
// use; Close waits for in-flight reads.
type Region struct {
	mu       sync.RWMutex
	provider internalshm.Provider
	region   *internalshm.MappedRegion

	name    string
	size    int
	created bool

	log    *zap.Logger
	reads  metric.Int64Counter
	errs   metric.Int64Counter
	attrs  metric.MeasurementOption
	closed bool
}

// Open attaches to the named region, creating it when absent.
func Open(ctx context.Context, opts OpenOptions) (*Region, error) {
	return open(ctx, internalshm.NewProvider(), opts)
}

func open(ctx context.Context, provider internalshm.Provider, opts OpenOptions) (*Region, error) {
	log := logs.OrNamed(opts.Logger, "shm").With(zap.String("name", opts.Name))
	meter := opts.Meter
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(instrumentationName)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(instrumentationName)
	}

	attrs := metric.WithAttributes(attribute.String("shm.name", opts.Name))
	ctx, span := tracer.Start(ctx, "shm.Open", trace.WithAttributes(
		attribute.String("shm.name", opts.Name),
		attribute.Int("shm.size", opts.Size),
	))
	defer span.End()

	opens, _ := meter.Int64Counter("mumblelink.shm.opens",
		metric.WithDescription("Shared memory regions opened or created."))
	reads, _ := meter.Int64Counter("mumblelink.shm.reads",
		metric.WithDescription("Reads served from shared memory."))
	errs, _ := meter.Int64Counter("mumblelink.shm.errors",
		metric.WithDescription("Failed shared memory operations."))

	mapped, err := provider.MapRegion(ctx, internalshm.MapOptions{Name: opts.Name, Size: opts.Size})
	if err != nil {
		err = &OSError{Op: "open", Name: opts.Name, Err: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		errs.Add(ctx, 1, attrs)
		log.Warn("open shared memory failed", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.Bool("shm.created", mapped.Created))
	opens.Add(ctx, 1, attrs)
	if mapped.Created {
		log.Debug("created shared memory", zap.Int("size", opts.Size))
	} else {
		log.Debug("attached shared memory", zap.Int("size", opts.Size))
	}

	r := &Region{
		provider: provider,
		region:   mapped,
		name:     opts.Name,
		size:     opts.Size,
		created:  mapped.Created,
		log:      log,
		reads:    reads,
		errs:     errs,
		attrs:    attrs,
	}
	runtime.SetFinalizer(r, (*Region).finalize)
	return r, nil
}

// Name returns the object name the region was opened with.
func (r *Region) Name() string { return r.name }

// Size returns the mapped length in bytes.
func (r *Region) Size() int { return r.size }

// Created reports whether this process created the object.
func (r *Region) Created() bool { return r.created }

// Mapped reports whether the region is still mapped.
func (r *Region) Mapped() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.closed && r.region != nil && r.region.Addr != nil
}

// ReadAt copies len(p) bytes starting at off out of the mapping. It
// implements io.ReaderAt and returns ErrUnreadable once the region is closed.
func (r *Region) ReadAt(p []byte, off int64) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mem, err := r.mem()
	if err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, errors.New("shm: negative offset")
	}
	if off >= int64(len(mem)) {
		return 0, io.EOF
	}
	n := copy(p, mem[off:])
	r.reads.Add(context.Background(), 1, r.attrs)
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Uint32At loads the native-endian uint32 at off, atomically when off is 4-byte aligned.
func (r *Region) Uint32At(off int) (uint32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mem, err := r.mem()
	if err != nil {
		return 0, err
	}
	if off < 0 || off+4 > len(mem) {
		return 0, io.ErrUnexpectedEOF
	}
	return internalshm.LoadUint32(mem, off), nil
}

func (r *Region) mem() ([]byte, error) {
	if r == nil || r.closed || r.region == nil || r.region.Addr == nil {
		return nil, ErrUnreadable
	}
	return r.region.Addr, nil
}

// Close unmaps the region and releases the OS handle. Calling Close more
// than once is safe; only the first call releases anything.
func (r *Region) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	runtime.SetFinalizer(r, nil)

	err := r.provider.UnmapRegion(context.Background(), r.region)
	r.region = nil
	if err != nil {
		r.errs.Add(context.Background(), 1, r.attrs)
		r.log.Warn("release shared memory failed", zap.Error(err))
		return &OSError{Op: "close", Name: r.name, Err: err}
	}
	r.log.Debug("released shared memory")
	return nil
}

func (r *Region) finalize() {
	_ = r.Close()
}

// Remove unlinks the named object so the next Open creates a fresh one.
// Mappings that are still open stay valid.
func Remove(ctx context.Context, name string) error {
	return remove(ctx, internalshm.NewProvider(), name)
}

func remove(ctx context.Context, provider internalshm.Provider, name string) error {
	if err := provider.Unlink(ctx, name); err != nil {
		return &OSError{Op: "unlink", Name: name, Err: err}
	}
	return nil
}
