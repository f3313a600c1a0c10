package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/srediag/mumblelink/adapter"
	"github.com/srediag/mumblelink/api"
	"github.com/srediag/mumblelink/internal/logs"
	"github.com/srediag/mumblelink/internal/registry"
	"github.com/srediag/mumblelink/internal/sampler"
	"github.com/srediag/mumblelink/pkg/mumblelink"
	"github.com/srediag/mumblelink/pkg/shm"
)

const instrumentationName = "github.com/srediag/mumblelink/cmd/mumblelink"

func regionNames(cfg *Config) []string {
	if len(cfg.Names) == 0 {
		return []string{mumblelink.DefaultName()}
	}
	return cfg.Names
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openRegistry opens every configured region, waiting for producers when
// cfg.Wait is set.
func openRegistry(ctx context.Context, cfg *Config) (*registry.Registry, error) {
	open := registry.OpenLink(
		mumblelink.WithMeter(otel.Meter(instrumentationName)),
		mumblelink.WithTracer(otel.Tracer(instrumentationName)),
	)
	reg, err := registry.New(open, cfg.Workers, logs.Named("registry"))
	if err != nil {
		return nil, errors.Wrap(err, "start worker pool")
	}
	for _, name := range regionNames(cfg) {
		if _, err := reg.Open(ctx, name); err != nil {
			_ = reg.Shutdown()
			return nil, errors.Wrapf(err, "open %s", name)
		}
	}
	if cfg.Wait > 0 {
		if err := waitForProducers(ctx, reg.Readers(), cfg.Wait); err != nil {
			_ = reg.Shutdown()
			return nil, err
		}
	}
	return reg, nil
}

func waitForProducers(ctx context.Context, readers []api.Reader, wait time.Duration) error {
	for _, r := range readers {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = wait
		if _, err := sampler.WaitForProducer(ctx, r, b, nil); err != nil {
			return errors.Wrapf(err, "wait for producer on %s", r.Name())
		}
	}
	return nil
}

func (wrapper *CliWrapper) read(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(c)
	defer cancel()

	reg, err := openRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer reg.Shutdown()

	out := newRenderer(wrapper.out, cfg)
	var failed error
	for _, res := range reg.ReadAll(ctx) {
		if res.Err != nil {
			_ = out.Error(res.Name, res.Err)
			failed = errors.Wrapf(res.Err, "read %s", res.Name)
			continue
		}
		if err := out.Render(res.Name, &res.Record); err != nil {
			return err
		}
	}
	return failed
}

func (wrapper *CliWrapper) watch(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(c)
	defer cancel()

	reg, err := openRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer reg.Shutdown()

	out := newRenderer(wrapper.out, cfg)
	log := logs.Named("watch")
	var wg sync.WaitGroup
	for _, r := range reg.Readers() {
		s := sampler.New(r, cfg.History, log)
		wg.Add(1)
		go func(r api.Reader) {
			defer wg.Done()
			defer s.Close()
			err := s.Run(ctx, cfg.Interval, func(sample sampler.Sample) {
				if err := out.Render(r.Name(), &sample.Record); err != nil {
					log.Warn("render failed", zap.Error(err))
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Error("watch stopped", zap.String("name", r.Name()), zap.Error(err))
			}
		}(r)
	}
	wg.Wait()
	return nil
}

func (wrapper *CliWrapper) serve(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(c)
	defer cancel()

	reg, err := openRegistry(ctx, cfg)
	if err != nil {
		return err
	}
	defer reg.Shutdown()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           newServeMux(reg, 5*cfg.Interval),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log := logs.Named("serve").With(zap.String("listen", cfg.Listen))
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown failed", zap.Error(err))
		}
	}()
	log.Info("serving", zap.Strings("names", reg.Names()))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	return nil
}

// newServeMux mounts /metrics, /live and /ready for the open regions.
func newServeMux(reg *registry.Registry, window time.Duration) *http.ServeMux {
	preg := prometheus.NewRegistry()
	preg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		adapter.NewCollector(reg.Readers),
	)
	health := adapter.NewHealthHandler(reg.Readers(), window)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(preg, promhttp.HandlerOpts{Registry: preg}))
	mux.HandleFunc("/live", health.LiveEndpoint)
	mux.HandleFunc("/ready", health.ReadyEndpoint)
	return mux
}

func (wrapper *CliWrapper) remove(c *cli.Context) error {
	cfg, err := config(c)
	if err != nil {
		return err
	}
	for _, name := range regionNames(cfg) {
		if err := shm.Remove(c.Context, name); err != nil {
			return err
		}
		logs.Named("remove").Info("removed", zap.String("name", name))
	}
	return nil
}
