package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/ibeckermayer/mockshot/internal/browser"
	"github.com/ibeckermayer/mockshot/internal/config"
	"github.com/ibeckermayer/mockshot/internal/scheduler"
	"github.com/ibeckermayer/mockshot/internal/screenshot"
	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/server"
	"github.com/ibeckermayer/mockshot/internal/store"
	"github.com/ibeckermayer/mockshot/internal/tracing"
)

// App holds the application state.
type App struct {
	mu sync.RWMutex

	// Immutable after creation
	store     *store.Store
	scheduler *scheduler.Scheduler
	tracer    *tracing.Tracer
	registry  *prometheus.Registry
	metrics   *screenshot.Metrics
	launcher  func(browser.Config) screenshot.Launcher
	handler   http.Handler

	// Mutable fields - use getSnapshot() for concurrent access.
	config  *config.Config
	service *screenshot.Service
}

// snapshot holds fields that may be replaced by ReloadConfig.
// Use getSnapshot() to obtain a consistent, point-in-time copy.
type snapshot struct {
	config  *config.Config
	service *screenshot.Service
}

// getSnapshot returns a snapshot of mutable fields under read lock.
func (a *App) getSnapshot() snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return snapshot{
		config:  a.config,
		service: a.service,
	}
}

// Option customizes an App
type Option func(*App)

// WithLauncher replaces the Chrome launcher
func WithLauncher(l screenshot.Launcher) Option {
	return func(a *App) {
		a.launcher = func(browser.Config) screenshot.Launcher { return l }
	}
}

func chromeLauncher(cfg browser.Config) screenshot.Launcher {
	return screenshot.Chrome(browser.NewLauncher(cfg))
}

// New creates a new App instance.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	a := &App{
		config:   cfg,
		launcher: chromeLauncher,
		registry: server.NewRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve db path: %w", err)
	}
	a.store, err = store.New(dbPath)
	if err != nil {
		return nil, err
	}
	log.Printf("Using database at: %s", dbPath)

	a.tracer, err = tracing.New(cfg.Tracing, cfg.Server.Addr)
	if err != nil {
		a.store.Close()
		return nil, err
	}

	a.scheduler, err = scheduler.New("")
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := a.schedulePrune(cfg); err != nil {
		a.Close()
		return nil, err
	}

	a.metrics = screenshot.NewMetrics(a.registry)
	a.service = a.newService(cfg)

	serverOpts := []server.Option{
		server.WithProfiles(a.store),
		server.WithHistory(a.store),
		server.WithRegistry(a.registry),
		server.WithMaxBodyBytes(int64(cfg.Server.MaxBodyMB) << 20),
	}
	if a.tracer.Enabled() {
		serverOpts = append(serverOpts, server.WithTracing(a.tracer.Middleware()))
	}
	a.handler = server.New(a, serverOpts...)

	return a, nil
}

// newService builds a capture service for cfg
func (a *App) newService(cfg *config.Config) *screenshot.Service {
	launcher := a.launcher(browser.Config{
		Headless:  cfg.Browser.Headless,
		ExecPath:  cfg.Browser.ExecPath,
		NoSandbox: cfg.Browser.NoSandbox,
	})

	opts := []screenshot.Option{
		screenshot.WithMetrics(a.metrics),
		screenshot.WithRecorder(historyRecorder{a.store}),
	}
	if cfg.Screenshot.DumpHTML {
		if dir, err := config.CacheDir(); err != nil {
			log.Printf("HTML dumps disabled: %v", err)
		} else {
			opts = append(opts, screenshot.WithDumper(store.NewHTMLDumps(filepath.Join(dir, "html"))))
		}
	}

	return screenshot.New(launcher, ServiceConfig(cfg), opts...)
}

// ServiceConfig maps the file config onto the capture service's limits
func ServiceConfig(cfg *config.Config) screenshot.Config {
	sc := cfg.Screenshot
	return screenshot.Config{
		DefaultScale:   sc.DefaultScale,
		MaxDuration:    sc.MaxDuration(),
		ImageTimeout:   sc.ImageTimeout(),
		SettleDelay:    sc.SettleDelay(),
		MaxConcurrent:  int64(sc.MaxConcurrent),
		ViewportWidth:  sc.ViewportWidth,
		ViewportHeight: sc.ViewportHeight,
	}
}

func (a *App) schedulePrune(cfg *config.Config) error {
	if cfg.Store.RetentionDays == 0 {
		a.scheduler.RemoveJob("prune-exports")
		log.Println("Export history pruning disabled")
		return nil
	}
	retention := time.Duration(cfg.Store.RetentionDays) * 24 * time.Hour
	return a.scheduler.AddPruneJob(cfg.Store.PruneSchedule, retention, a.store)
}

// Capture screenshots a mockup with the current service
func (a *App) Capture(ctx context.Context, req serializer.Request) (*screenshot.Result, error) {
	return a.getSnapshot().service.Capture(ctx, req)
}

// Render returns the document a capture would load
func (a *App) Render(req serializer.Request) (string, error) {
	return a.getSnapshot().service.Render(req)
}

// Handler is the HTTP surface
func (a *App) Handler() http.Handler {
	return a.handler
}

// Store exposes profiles and export history
func (a *App) Store() *store.Store {
	return a.store
}

// Run listens on the configured address until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	addr := a.getSnapshot().config.Server.Addr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is canceled, then drains in-flight captures.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	s := a.getSnapshot()

	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: time.Duration(s.config.Server.ReadHeaderTimeoutSeconds) * time.Second,
	}

	a.scheduler.Start()
	defer func() { <-a.scheduler.Stop().Done() }()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("[server] Listening on %s", ln.Addr())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("[server] Shutting down")

		// Give running captures their full budget
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.getSnapshot().config.Screenshot.MaxDuration()+5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// PruneNow deletes export history past the configured retention
func (a *App) PruneNow() error {
	cfg := a.getSnapshot().config
	if cfg.Store.RetentionDays == 0 {
		return nil
	}
	retention := time.Duration(cfg.Store.RetentionDays) * 24 * time.Hour
	return a.scheduler.RunNow("prune-exports", scheduler.PruneJob(a.store, retention))
}

// ReloadConfig reloads the configuration from disk.
func (a *App) ReloadConfig() error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	return a.applyConfig(cfg)
}

// applyConfig swaps in a new capture service and prune schedule.
// The listen address, database and tracing only change on restart.
func (a *App) applyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := a.schedulePrune(cfg); err != nil {
		return err
	}

	service := a.newService(cfg)

	a.mu.Lock()
	a.config = cfg
	a.service = service
	a.mu.Unlock()

	log.Println("Configuration reloaded")
	return nil
}

// Close releases the database and flushes traces
func (a *App) Close() error {
	var errs []error
	if a.tracer != nil {
		errs = append(errs, a.tracer.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}
