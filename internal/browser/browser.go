package browser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	cdppage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Launcher starts Chrome instances
type Launcher struct {
	cfg Config
}

// NewLauncher creates a launcher with the given config
func NewLauncher(cfg Config) *Launcher {
	return &Launcher{cfg: cfg}
}

// Browser is one running Chrome process
type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// Launch starts Chrome and waits until it accepts commands.
// The returned browser must be closed by the caller.
func (l *Launcher) Launch(ctx context.Context) (*Browser, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, Options(l.cfg)...)

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(log.Printf),
	)

	// An empty Run starts the process
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}

	return &Browser{
		ctx: browserCtx,
		cancel: func() {
			browserCancel()
			allocCancel()
		},
	}, nil
}

// PageOptions sets the CSS viewport and device scale factor of a new page
type PageOptions struct {
	Width  int
	Height int
	Scale  float64
}

// NewPage opens a tab. The page background is transparent so only the
// mockup paints pixels.
func (b *Browser) NewPage(ctx context.Context, opts PageOptions) (*Page, error) {
	tabCtx, tabCancel := chromedp.NewContext(b.ctx)
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height), chromedp.EmulateScale(opts.Scale)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}).
				Do(ctx)
		}),
	)
	if err != nil {
		tabCancel()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &Page{ctx: tabCtx, cancel: tabCancel}, nil
}

// Close shuts down Chrome. It is safe to call more than once.
func (b *Browser) Close() error {
	var err error
	b.closeOnce.Do(func() {
		// Cancel closes the browser gracefully, cancel() then kills the allocator
		err = chromedp.Cancel(b.ctx)
		b.cancel()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Page is one browser tab
type Page struct {
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// run executes actions on the tab, bounded by the caller's ctx
func (p *Page) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// SetContent replaces the document with html
func (p *Page) SetContent(ctx context.Context, html string) error {
	err := p.run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := cdppage.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return cdppage.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to set content: %w", err)
	}
	return nil
}

// waitForAssetsJS resolves once every image has loaded or failed (or the
// timeout passes) and web fonts are ready
const waitForAssetsJS = `new Promise((resolve) => {
	const pending = Array.from(document.images).filter((img) => !img.complete);
	let left = pending.length;
	if (left === 0) { resolve(); return; }
	const done = () => { if (--left <= 0) resolve(); };
	pending.forEach((img) => {
		img.addEventListener('load', done, { once: true });
		img.addEventListener('error', done, { once: true });
	});
	setTimeout(resolve, %d);
}).then(() => document.fonts.ready).then(() => true)`

// WaitForAssets blocks until images and fonts settle, then waits settle
// longer for layout to finish
func (p *Page) WaitForAssets(ctx context.Context, imageTimeout, settle time.Duration) error {
	var ok bool
	err := p.run(ctx,
		chromedp.Evaluate(fmt.Sprintf(waitForAssetsJS, imageTimeout.Milliseconds()), &ok,
			func(ep *runtime.EvaluateParams) *runtime.EvaluateParams {
				return ep.WithAwaitPromise(true)
			},
		),
		chromedp.Sleep(settle),
	)
	if err != nil {
		return fmt.Errorf("failed waiting for assets: %w", err)
	}
	return nil
}

// QuerySelector finds the first element matching selector.
// It returns a nil element and no error when nothing matches.
func (p *Page) QuerySelector(ctx context.Context, selector string) (*Element, error) {
	var nodes []*cdp.Node
	if err := p.run(ctx, chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", selector, err)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return &Element{page: p, node: nodes[0]}, nil
}

// Element is a DOM node on a page
type Element struct {
	page *Page
	node *cdp.Node
}

// Screenshot captures the element's border box as PNG at the page's
// device scale factor
func (e *Element) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := e.page.run(ctx, chromedp.ScreenshotNodes([]*cdp.Node{e.node}, 1, &buf)); err != nil {
		return nil, fmt.Errorf("failed to capture element: %w", err)
	}
	return buf, nil
}

// Close closes the tab. It is safe to call more than once.
func (p *Page) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = chromedp.Cancel(p.ctx)
		p.cancel()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
