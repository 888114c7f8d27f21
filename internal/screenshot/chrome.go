package screenshot

import (
	"context"

	"github.com/ibeckermayer/mockshot/internal/browser"
)

// Chrome adapts the chromedp launcher to the service's interfaces
func Chrome(l *browser.Launcher) Launcher {
	return chromeLauncher{l: l}
}

type chromeLauncher struct {
	l *browser.Launcher
}

func (c chromeLauncher) Launch(ctx context.Context) (Browser, error) {
	b, err := c.l.Launch(ctx)
	if err != nil {
		return nil, err
	}
	return chromeBrowser{b: b}, nil
}

type chromeBrowser struct {
	b *browser.Browser
}

func (c chromeBrowser) NewPage(ctx context.Context, opts browser.PageOptions) (Page, error) {
	p, err := c.b.NewPage(ctx, opts)
	if err != nil {
		return nil, err
	}
	return chromePage{Page: p}, nil
}

func (c chromeBrowser) Close() error {
	return c.b.Close()
}

type chromePage struct {
	*browser.Page
}

// QuerySelector avoids wrapping a nil *browser.Element in a non-nil interface
func (c chromePage) QuerySelector(ctx context.Context, selector string) (Element, error) {
	el, err := c.Page.QuerySelector(ctx, selector)
	if err != nil || el == nil {
		return nil, err
	}
	return el, nil
}
