// Package browser drives a headless Chrome through chromedp to capture
// rendered mockups as PNG images.
package browser

import "github.com/chromedp/chromedp"

// Config controls how Chrome is launched
type Config struct {
	Headless  bool
	ExecPath  string // empty means chromedp's lookup
	NoSandbox bool   // needed when running as root in containers
}

// Options returns chromedp allocator options for rendering mockups.
// Every browser the service launches uses these.
func Options(cfg Config) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),

		// Keep renders reproducible
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("font-render-hinting", "none"),

		// Large enough for the widest mockup plus tall posts
		chromedp.WindowSize(1200, 1600),

		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)

	if cfg.Headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox, chromedp.Flag("disable-dev-shm-usage", true))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	return opts
}
