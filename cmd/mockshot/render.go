package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"

	"github.com/ibeckermayer/mockshot/internal/app"
	browserpkg "github.com/ibeckermayer/mockshot/internal/browser"
	"github.com/ibeckermayer/mockshot/internal/client"
	"github.com/ibeckermayer/mockshot/internal/config"
	"github.com/ibeckermayer/mockshot/internal/render"
	"github.com/ibeckermayer/mockshot/internal/screenshot"
	"github.com/ibeckermayer/mockshot/internal/serializer"
	"github.com/ibeckermayer/mockshot/internal/store"
	"github.com/ibeckermayer/mockshot/internal/tracing"
	"github.com/ibeckermayer/mockshot/internal/types"
)

// exporter turns one request into PNG bytes
type exporter func(ctx context.Context, req serializer.Request) ([]byte, error)

func runRender(args []string) {
	cfg := loadConfig()

	fs := flag.NewFlagSet("render", flag.ExitOnError)
	scale := fs.Int("scale", 0, "device scale factor (1, 2 or 3); 0 uses the file's scale or the default")
	prefix := fs.String("prefix", "", "filename prefix (default: the post's platform)")
	out := fs.String("out", cfg.Client.OutputDir, "output directory")
	local := fs.Bool("local", false, "capture with a local Chrome instead of the server")
	open := fs.Bool("open", false, "open each PNG when done")
	dated := fs.Bool("dated", false, "name files {platform}-{handle}-{date} from the post")
	fs.Parse(args)

	files := fs.Args()
	if len(files) == 0 {
		fmt.Println("Usage: mockshot render [flags] FILE.json...")
		fs.PrintDefaults()
		os.Exit(1)
	}
	if *prefix != "" && len(files) > 1 {
		log.Fatal("--prefix needs a single input file")
	}
	if *prefix != "" && *dated {
		log.Fatal("--prefix and --dated are mutually exclusive")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var export exporter
	closeTracer := func() error { return nil }
	if *local {
		export = localExporter(cfg)
	} else {
		var err error
		export, closeTracer, err = remoteExporter(ctx, cfg)
		if err != nil {
			log.Fatal(err)
		}
	}
	defer closeTracer()

	var mu sync.Mutex
	var written []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Screenshot.MaxConcurrent)

	for _, file := range files {
		file := file
		g.Go(func() error {
			req, err := readRequest(file)
			if err != nil {
				return err
			}
			if *scale != 0 {
				req.Scale = *scale
			}
			if req.Scale == 0 {
				req.Scale = cfg.Screenshot.DefaultScale
			}

			png, err := export(gctx, req)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			platform := render.TemplateFor(req.Mockup.Platform)
			name, err := exportName(file, *prefix, *dated, len(files) > 1, platform, *req.Mockup)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			path, err := client.SaveExport(*out, name, platform, req.Scale, png)
			if err != nil {
				return err
			}
			log.Printf("Saved %s (%d bytes)", path, len(png))

			mu.Lock()
			written = append(written, path)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		closeTracer()
		log.Fatalf("Export failed: %v", err)
	}

	if *open {
		for _, path := range written {
			if err := browser.OpenFile(path); err != nil {
				log.Printf("Failed to open %s: %v", path, err)
			}
		}
	}
}

// exportName picks the filename prefix for one input file. A single export
// is named after its platform and batches after their files. Dated batch
// names keep the file name so posts sharing a handle and day don't collide.
func exportName(file, prefix string, dated, batch bool, platform types.Platform, sp serializer.SerializedPost) (string, error) {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	switch {
	case dated:
		ts, err := serializer.ParseTimestamp(sp.Timestamp)
		if err != nil {
			return "", err
		}
		name := client.DatedPrefix(platform, sp.Author.Handle, ts)
		if batch {
			name += "-" + base
		}
		return name, nil
	case prefix != "":
		return prefix, nil
	case batch:
		return base, nil
	}
	return "", nil
}

// remoteExporter checks the server is up before any file is read.
// The returned func flushes pending spans.
func remoteExporter(ctx context.Context, cfg *config.Config) (exporter, func() error, error) {
	hc := &http.Client{Timeout: cfg.Client.Timeout()}
	closeTracer := func() error { return nil }

	tracer, err := tracing.New(cfg.Tracing, "")
	if err != nil {
		log.Printf("Tracing disabled: %v", err)
	} else {
		closeTracer = tracer.Close
		if tracer.Enabled() {
			if traced, err := tracer.Client(hc); err == nil {
				hc = traced
			}
		}
	}

	c := client.New(cfg.Client.ServerURL, hc)
	if err := c.Health(ctx); err != nil {
		closeTracer()
		return nil, nil, fmt.Errorf("server at %s is not reachable (use --local to capture without it): %w", cfg.Client.ServerURL, err)
	}

	return func(ctx context.Context, req serializer.Request) ([]byte, error) {
		return c.ExportSerialized(ctx, *req.Mockup, req.Scale)
	}, closeTracer, nil
}

func localExporter(cfg *config.Config) exporter {
	launcher := screenshot.Chrome(browserpkg.NewLauncher(browserpkg.Config{
		Headless:  cfg.Browser.Headless,
		ExecPath:  cfg.Browser.ExecPath,
		NoSandbox: cfg.Browser.NoSandbox,
	}))

	var opts []screenshot.Option
	if cfg.Screenshot.DumpHTML {
		opts = append(opts, screenshot.WithDumper(store.NewHTMLDumps(dumpDir())))
	}
	svc := screenshot.New(launcher, app.ServiceConfig(cfg), opts...)

	return func(ctx context.Context, req serializer.Request) ([]byte, error) {
		res, err := svc.Capture(ctx, req)
		if err != nil {
			return nil, err
		}
		return res.PNG, nil
	}
}
