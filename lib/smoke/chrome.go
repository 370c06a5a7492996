package smoke

import (
	"context"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
)

// chromeFlags are passed to Chrome on top of chromedp's defaults. The
// sandbox cannot be set up in most containers.
var chromeFlags = map[string]any{
	"no-sandbox": true,
}

func allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for name, value := range chromeFlags {
		opts = append(opts, chromedp.Flag(name, value))
	}
	return opts
}

// ChromeBrowser is a Browser backed by a headless Chrome started through
// chromedp.
type ChromeBrowser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
}

var _ Browser = (*ChromeBrowser)(nil)

// NewChromeBrowser launches a headless browser with a single tab.
func NewChromeBrowser(parent context.Context) (*ChromeBrowser, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, allocatorOptions()...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// An empty Run starts the browser.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()
		return nil, err
	}
	return &ChromeBrowser{ctx: ctx, cancel: cancel, allocCancel: allocCancel}, nil
}

// scoped carries the caller's deadline over to the browser context.
func (b *ChromeBrowser) scoped(ctx context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := ctx.Deadline(); ok {
		return context.WithDeadline(b.ctx, dl)
	}
	return context.WithCancel(b.ctx)
}

// Navigate loads url and returns once the document's DOMContentLoaded event
// fired. Subresources may still be loading.
func (b *ChromeBrowser) Navigate(ctx context.Context, url string) (int64, error) {
	tctx, cancel := b.scoped(ctx)
	defer cancel()

	load := newDocumentLoad()
	lctx, lcancel := context.WithCancel(tctx)
	defer lcancel()
	chromedp.ListenTarget(lctx, load.handle)

	var errorText string
	err := chromedp.Run(tctx, chromedp.ActionFunc(func(ctx context.Context) error {
		_, loaderID, text, err := page.Navigate(url).Do(ctx)
		if err != nil {
			return err
		}
		errorText = text
		load.start(loaderID)
		return nil
	}))
	if err != nil {
		return 0, err
	}

	if errorText != "" {
		// HTTP error pages are still documents with a status.
		if resp := load.documentResponse(); resp != nil {
			return resp.Status, nil
		}
		return 0, errors.Errorf("page load error %s", errorText)
	}
	return load.wait(tctx)
}

func (b *ChromeBrowser) WaitVisible(ctx context.Context, selector string) error {
	tctx, cancel := b.scoped(ctx)
	defer cancel()
	return chromedp.Run(tctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// FullScreenshot captures the whole page as PNG.
func (b *ChromeBrowser) FullScreenshot(ctx context.Context) ([]byte, error) {
	tctx, cancel := b.scoped(ctx)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(tctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, err
	}
	return buf, nil
}

func (b *ChromeBrowser) Close() error {
	err := chromedp.Cancel(b.ctx)
	b.cancel()
	b.allocCancel()
	return err
}

// documentLoad follows the target's events for one navigation until its
// DOMContentLoaded. Events seen before the loader ID is known are replayed
// once it is.
type documentLoad struct {
	mu       sync.Mutex
	started  bool
	loaderID cdp.LoaderID
	early    []any
	reqID    network.RequestID
	response *network.Response
	finished bool
	done     chan error
}

func newDocumentLoad() *documentLoad {
	return &documentLoad{done: make(chan error, 1)}
}

func (d *documentLoad) handle(ev any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		d.early = append(d.early, ev)
		return
	}
	d.handleLocked(ev)
}

// start records the loader of the navigation. An empty loader ID means a
// same-document navigation, which has no response.
func (d *documentLoad) start(loaderID cdp.LoaderID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.started = true
	d.loaderID = loaderID
	if loaderID == "" {
		d.finishLocked(nil)
		return
	}
	for _, ev := range d.early {
		d.handleLocked(ev)
	}
	d.early = nil
}

func (d *documentLoad) handleLocked(ev any) {
	if d.finished {
		return
	}
	switch ev := ev.(type) {
	case *network.EventRequestWillBeSent:
		if ev.LoaderID == d.loaderID && ev.Type == network.ResourceTypeDocument {
			d.reqID = ev.RequestID
		}
	case *network.EventResponseReceived:
		if ev.LoaderID == d.loaderID && ev.Type == network.ResourceTypeDocument {
			d.response = ev.Response
		}
	case *network.EventLoadingFailed:
		if d.reqID != "" && ev.RequestID == d.reqID && d.response == nil {
			d.finishLocked(errors.Errorf("page load error %s", ev.ErrorText))
		}
	case *page.EventDomContentEventFired:
		d.finishLocked(nil)
	}
}

func (d *documentLoad) finishLocked(err error) {
	d.finished = true
	d.done <- err
}

func (d *documentLoad) documentResponse() *network.Response {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.response
}

// wait blocks until DOMContentLoaded and returns the document's status.
func (d *documentLoad) wait(ctx context.Context) (int64, error) {
	select {
	case err := <-d.done:
		if err != nil {
			return 0, err
		}
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	resp := d.documentResponse()
	if resp == nil {
		return 0, ErrNoResponse
	}
	return resp.Status, nil
}
