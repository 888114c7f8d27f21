package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pkg/browser"

	browserpkg "github.com/ibeckermayer/mockshot/internal/browser"
	"github.com/ibeckermayer/mockshot/internal/render"
	"github.com/ibeckermayer/mockshot/internal/store"
)

func renderFile(args []string, usage string) (string, string) {
	if len(args) < 1 {
		fmt.Println(usage)
		os.Exit(1)
	}

	req, err := readRequest(args[0])
	if err != nil {
		log.Fatalf("Failed to read mockup: %v", err)
	}
	if req.Mockup == nil || req.Mockup.Platform == "" {
		log.Fatal("Mockup has no platform")
	}

	doc, err := render.Document(*req.Mockup)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	return string(render.TemplateFor(req.Mockup.Platform)), doc
}

// runPreview writes the rendered document to the dump dir and opens it
func runPreview(args []string) {
	platform, doc := renderFile(args, "Usage: mockshot preview FILE.json")

	path, err := store.NewHTMLDumps(dumpDir()).DumpHTML(platform+"-preview", doc)
	if err != nil {
		log.Fatalf("Failed to write preview: %v", err)
	}
	log.Printf("Wrote %s", path)

	if err := browser.OpenFile(path); err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
}

// runInspect loads the mockup in a visible Chrome with the capture options,
// so layout can be checked with devtools.
func runInspect(args []string) {
	_, doc := renderFile(args, "Usage: mockshot inspect FILE.json")
	cfg := loadConfig()

	log.Println("Opening mockup in Chrome with capture options...")

	launcher := browserpkg.NewLauncher(browserpkg.Config{
		Headless:  false, // visible so you can inspect it
		ExecPath:  cfg.Browser.ExecPath,
		NoSandbox: cfg.Browser.NoSandbox,
	})

	ctx := context.Background()
	b, err := launcher.Launch(ctx)
	if err != nil {
		log.Fatalf("Failed to launch chrome: %v", err)
	}
	defer b.Close()

	page, err := b.NewPage(ctx, browserpkg.PageOptions{
		Width:  cfg.Screenshot.ViewportWidth,
		Height: cfg.Screenshot.ViewportHeight,
		Scale:  float64(cfg.Screenshot.DefaultScale),
	})
	if err != nil {
		log.Fatalf("Failed to open page: %v", err)
	}
	defer page.Close()

	if err := page.SetContent(ctx, doc); err != nil {
		log.Fatalf("Failed to load mockup: %v", err)
	}

	fmt.Println("Press Enter to close the browser...")
	fmt.Scanln()

	log.Println("Done.")
}
