// Package screenshot renders a serialized mockup in a headless browser and
// returns a PNG of the mockup element.
package screenshot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/ibeckermayer/mockshot/internal/browser"
	"github.com/ibeckermayer/mockshot/internal/render"
	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/types"
)

var (
	// ErrInvalidRequest wraps every validation failure. The HTTP layer maps it to 400.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrMockupRootMissing means the rendered page had no mockup container
	ErrMockupRootMissing = errors.New("mockup container not found in rendered page")

	// ErrBrowserLaunch wraps failures to start the headless browser
	ErrBrowserLaunch = errors.New("failed to launch browser")
)

// Launcher starts a browser for one capture
type Launcher interface {
	Launch(ctx context.Context) (Browser, error)
}

// Browser is a running headless browser
type Browser interface {
	NewPage(ctx context.Context, opts browser.PageOptions) (Page, error)
	Close() error
}

// Page is a single browser tab
type Page interface {
	SetContent(ctx context.Context, html string) error
	WaitForAssets(ctx context.Context, imageTimeout, settle time.Duration) error
	// QuerySelector returns a nil Element when nothing matches
	QuerySelector(ctx context.Context, selector string) (Element, error)
	Close() error
}

// Element is a node that can be captured
type Element interface {
	Screenshot(ctx context.Context) ([]byte, error)
}

// Config bounds a capture
type Config struct {
	DefaultScale   int
	MaxDuration    time.Duration
	ImageTimeout   time.Duration
	SettleDelay    time.Duration
	MaxConcurrent  int64
	ViewportWidth  int
	ViewportHeight int
}

// DefaultConfig matches the documented service defaults
func DefaultConfig() Config {
	return Config{
		DefaultScale:   2,
		MaxDuration:    30 * time.Second,
		ImageTimeout:   5 * time.Second,
		SettleDelay:    500 * time.Millisecond,
		MaxConcurrent:  4,
		ViewportWidth:  800,
		ViewportHeight: 1200,
	}
}

// Result is a finished capture
type Result struct {
	ID       string
	PNG      []byte
	Filename string
	Platform types.Platform
	Scale    int
}

// Outcome describes one capture attempt for export history
type Outcome struct {
	ID       string
	Platform types.Platform
	Theme    types.Theme
	Scale    int
	Bytes    int
	Duration time.Duration
	Err      error
	At       time.Time
}

// Recorder persists capture outcomes
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// Dumper saves rendered documents for debugging
type Dumper interface {
	DumpHTML(name, html string) (string, error)
}

// Service captures mockups
type Service struct {
	launcher Launcher
	cfg      Config
	sem      *semaphore.Weighted
	metrics  *Metrics
	recorder Recorder
	dumper   Dumper
}

// Option configures optional collaborators
type Option func(*Service)

// WithMetrics reports captures to m
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRecorder records every capture outcome
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithDumper saves every rendered document
func WithDumper(d Dumper) Option {
	return func(s *Service) { s.dumper = d }
}

// New creates a capture service
func New(launcher Launcher, cfg Config, opts ...Option) *Service {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.DefaultScale == 0 {
		cfg.DefaultScale = 2
	}

	s := &Service{
		launcher: launcher,
		cfg:      cfg,
		sem:      semaphore.NewWeighted(cfg.MaxConcurrent),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	return s
}

// Render validates req and returns the HTML document that would be captured
func (s *Service) Render(req serializer.Request) (string, error) {
	sp, _, err := s.validate(req)
	if err != nil {
		return "", err
	}
	return render.Document(sp)
}

// Capture validates req, renders it and screenshots the mockup element.
// Invalid requests fail with ErrInvalidRequest before any browser starts.
func (s *Service) Capture(ctx context.Context, req serializer.Request) (*Result, error) {
	start := time.Now()

	sp, scale, err := s.validate(req)
	if err != nil {
		s.metrics.observe(platformLabel(req), outcomeInvalid, time.Since(start), 0)
		return nil, err
	}

	id := uuid.NewString()
	res, err := s.capture(ctx, id, sp, scale)

	platform := render.TemplateFor(sp.Platform)
	elapsed := time.Since(start)
	size := 0
	if res != nil {
		size = len(res.PNG)
	}

	if err != nil {
		log.Printf("[screenshot] %s capture %s failed after %v: %v", platform, id, elapsed, err)
		s.metrics.observe(string(platform), outcomeError, elapsed, 0)
	} else {
		log.Printf("[screenshot] %s capture %s: %d bytes at %dx in %v", platform, id, size, scale, elapsed)
		s.metrics.observe(string(platform), outcomeOK, elapsed, size)
	}

	if s.recorder != nil {
		o := Outcome{
			ID:       id,
			Platform: platform,
			Theme:    sp.Theme,
			Scale:    scale,
			Bytes:    size,
			Duration: elapsed,
			Err:      err,
			At:       start,
		}
		// Recorded even when the request was canceled
		if rerr := s.recorder.Record(context.WithoutCancel(ctx), o); rerr != nil {
			log.Printf("[screenshot] failed to record export %s: %v", id, rerr)
		}
	}

	return res, err
}

func (s *Service) capture(ctx context.Context, id string, sp serializer.SerializedPost, scale int) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.MaxDuration)
	defer cancel()

	doc, err := render.Document(sp)
	if err != nil {
		return nil, fmt.Errorf("failed to render mockup: %w", err)
	}
	platform := render.TemplateFor(sp.Platform)

	if s.dumper != nil {
		if path, err := s.dumper.DumpHTML(string(platform)+"-"+id, doc); err != nil {
			log.Printf("[screenshot] failed to dump html: %v", err)
		} else {
			log.Printf("[screenshot] dumped html to %s", path)
		}
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed waiting for a browser slot: %w", err)
	}
	defer s.sem.Release(1)

	s.metrics.inFlight.Inc()
	defer s.metrics.inFlight.Dec()

	b, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBrowserLaunch, err)
	}
	defer closeLogged("browser", b.Close)

	page, err := b.NewPage(ctx, browser.PageOptions{
		Width:  s.cfg.ViewportWidth,
		Height: s.cfg.ViewportHeight,
		Scale:  float64(scale),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer closeLogged("page", page.Close)

	if err := page.SetContent(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to load mockup: %w", err)
	}

	// Broken images are tolerated; only the overall deadline fails the capture
	if err := page.WaitForAssets(ctx, s.cfg.ImageTimeout, s.cfg.SettleDelay); err != nil {
		return nil, fmt.Errorf("failed waiting for mockup assets: %w", err)
	}

	el, err := page.QuerySelector(ctx, render.RootSelector)
	if err != nil {
		return nil, fmt.Errorf("failed to find mockup: %w", err)
	}
	if el == nil {
		return nil, ErrMockupRootMissing
	}

	png, err := el.Screenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to capture mockup: %w", err)
	}

	return &Result{
		ID:       id,
		PNG:      png,
		Filename: Filename(platform),
		Platform: platform,
		Scale:    scale,
	}, nil
}

// Filename is the download name for a platform's export
func Filename(p types.Platform) string {
	return string(p) + "-mockup.png"
}

func closeLogged(what string, close func() error) {
	if err := close(); err != nil {
		log.Printf("[screenshot] failed to close %s: %v", what, err)
	}
}
