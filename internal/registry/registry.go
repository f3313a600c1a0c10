// Package registry keeps several MumbleLink regions open by name.
package registry

import (
	"context"
	"errors"
	"sort"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/srediag/mumblelink/api"
	"github.com/srediag/mumblelink/internal/logs"
	"github.com/srediag/mumblelink/pkg/mumblelink"
)

// OpenFunc opens the region with the given name.
type OpenFunc func(ctx context.Context, name string) (api.ReadCloser, error)

// OpenLink opens regions with mumblelink.OpenNamed.
func OpenLink(opts ...mumblelink.Option) OpenFunc {
	return func(ctx context.Context, name string) (api.ReadCloser, error) {
		return mumblelink.OpenNamed(ctx, name, opts...)
	}
}

// Result is the outcome of reading one region.
type Result struct {
	Name   string
	Record mumblelink.Record
	Err    error
}

// Registry maps region names to open readers. Reads of all regions go
// through a bounded worker pool.
type Registry struct {
	open  OpenFunc
	links cmap.ConcurrentMap[string, api.ReadCloser]
	pool  *ants.Pool
	log   *zap.Logger
}

// New returns a registry running at most workers concurrent reads.
func New(open OpenFunc, workers int, log *zap.Logger) (*Registry, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Registry{
		open:  open,
		links: cmap.New[api.ReadCloser](),
		pool:  pool,
		log:   logs.OrNamed(log, "registry"),
	}, nil
}

// Open returns the reader for name, opening the region on first use.
func (r *Registry) Open(ctx context.Context, name string) (api.ReadCloser, error) {
	if l, ok := r.links.Get(name); ok {
		return l, nil
	}
	l, err := r.open(ctx, name)
	if err != nil {
		return nil, err
	}
	if !r.links.SetIfAbsent(name, l) {
		// another caller won, keep theirs
		_ = l.Close()
		l, _ = r.links.Get(name)
		return l, nil
	}
	r.log.Debug("registered link", zap.String("name", name))
	return l, nil
}

// Get returns the reader for name if it is open.
func (r *Registry) Get(name string) (api.ReadCloser, bool) {
	return r.links.Get(name)
}

// Names returns the open region names, sorted.
func (r *Registry) Names() []string {
	names := r.links.Keys()
	sort.Strings(names)
	return names
}

// Readers returns the open readers ordered by name.
func (r *Registry) Readers() []api.Reader {
	names := r.Names()
	out := make([]api.Reader, 0, len(names))
	for _, name := range names {
		if l, ok := r.links.Get(name); ok {
			out = append(out, l)
		}
	}
	return out
}

// Close closes and forgets the region with the given name.
func (r *Registry) Close(name string) error {
	l, ok := r.links.Pop(name)
	if !ok {
		return nil
	}
	return l.Close()
}

// ReadAll reads every open region concurrently. Results are ordered by name.
func (r *Registry) ReadAll(ctx context.Context) []Result {
	readers := r.Readers()
	results := make([]Result, len(readers))
	var wg sync.WaitGroup
	for i, l := range readers {
		i, l := i, l
		results[i].Name = l.Name()
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			results[i].Record, results[i].Err = l.Read()
		})
		if err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()
	return results
}

// Shutdown closes every region and releases the worker pool.
func (r *Registry) Shutdown() error {
	var errs []error
	for _, name := range r.links.Keys() {
		if err := r.Close(name); err != nil {
			errs = append(errs, err)
		}
	}
	r.pool.Release()
	return errors.Join(errs...)
}
