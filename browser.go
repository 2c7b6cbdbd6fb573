package htmlslide

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Browser is the engine contract the orchestrator (C8) and raster capture
// (C5) consume: navigate, wait for load, size the viewport, evaluate
// arbitrary script, locate an element by id, and take an element-bounded
// screenshot. chromedpBrowser is the production implementation.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	WaitNetworkIdle(ctx context.Context, settle time.Duration) error
	SetViewport(ctx context.Context, widthPx, heightPx int, scale float64) error
	Evaluate(ctx context.Context, script string, out any) error
	ElementScreenshot(ctx context.Context, nodeID string, clip PixelRect) ([]byte, error)
	Close() error
}

// chromedpBrowser drives a headless Chrome instance via chromedp, one
// allocator/context pair per HTML file, matching the single-threaded
// cooperative model: every call sequences on the same browser page.
type chromedpBrowser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewChromedpBrowser launches a new headless browser context at the given
// device scale factor and provisional viewport.
func NewChromedpBrowser(ctx context.Context, scale float64) (Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1280, 720),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, emulateScale(1280, 720, scale)); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	log.Debug().Float64("scale", scale).Msg("browser context launched")
	return &chromedpBrowser{allocCtx: allocCtx, allocCancel: allocCancel, ctx: browserCtx, cancel: cancel}, nil
}

func emulateScale(w, h int, scale float64) chromedp.Action {
	return chromedp.EmulateViewport(int64(w), int64(h), chromedp.EmulateScale(scale))
}

func (b *chromedpBrowser) Navigate(ctx context.Context, url string) error {
	log.Debug().Str("url", url).Msg("navigating")
	if err := chromedp.Run(b.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (b *chromedpBrowser) WaitNetworkIdle(ctx context.Context, settle time.Duration) error {
	if err := chromedp.Run(b.ctx, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}
	time.Sleep(settle)
	return nil
}

func (b *chromedpBrowser) SetViewport(ctx context.Context, widthPx, heightPx int, scale float64) error {
	if err := chromedp.Run(b.ctx, emulateScale(widthPx, heightPx, scale)); err != nil {
		return fmt.Errorf("set viewport %dx%d: %w", widthPx, heightPx, err)
	}
	return nil
}

func (b *chromedpBrowser) Evaluate(ctx context.Context, script string, out any) error {
	if err := chromedp.Run(b.ctx, chromedp.Evaluate(script, out)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}

// ElementScreenshot takes a PNG screenshot bounded by the element with id
// nodeID, with a fixed 1s timeout. clip is not used, and the page's default
// background colour is not overridden, so areas the page leaves transparent
// are captured with the browser's default background. Callers are
// responsible for the DOM mutation sequence (hide/restore) around this call.
func (b *chromedpBrowser) ElementScreenshot(ctx context.Context, nodeID string, clip PixelRect) ([]byte, error) {
	var buf []byte
	sel := "#" + nodeID
	action := chromedp.Screenshot(sel, &buf, chromedp.NodeVisible, chromedp.ByQuery)
	timeoutCtx, cancel := context.WithTimeout(b.ctx, 1*time.Second)
	defer cancel()
	if err := chromedp.Run(timeoutCtx, action); err != nil {
		return nil, fmt.Errorf("screenshot %s: %w", nodeID, err)
	}
	return buf, nil
}

func (b *chromedpBrowser) Close() error {
	b.cancel()
	b.allocCancel()
	return nil
}

// captureBeyondViewportAction builds a clip-bounded page.CaptureScreenshot
// action with captureBeyondViewport set. ElementScreenshot does not call it.
func captureBeyondViewportAction(clip page.Viewport) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.CaptureScreenshot().
			WithClip(&clip).
			WithCaptureBeyondViewport(true).
			Do(ctx)
		return err
	})
}
