package htmlslide

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/VantageDataChat/htmlslide/pptx"
	"github.com/rs/zerolog/log"
)

// TimeoutConfig bounds the suspension points the orchestrator waits on.
type TimeoutConfig struct {
	Navigation    time.Duration
	NetworkIdle   time.Duration
	NetworkSettle time.Duration
	Screenshot    time.Duration
}

// DefaultTimeouts matches the concurrency model's stated bounds: 30s
// navigation, 500ms settle after network idle, 1s per screenshot.
func DefaultTimeouts() TimeoutConfig {
	return TimeoutConfig{
		Navigation:    30 * time.Second,
		NetworkIdle:   30 * time.Second,
		NetworkSettle: 500 * time.Millisecond,
		Screenshot:    1 * time.Second,
	}
}

// ConvertOptions configures one ConvertSlide call.
type ConvertOptions struct {
	TmpDir        string
	Slide         *pptx.Slide // optional pre-created slide to populate
	ViewportScale float64
	Timeouts      TimeoutConfig
}

// SlideResult is ConvertSlide's successful output.
type SlideResult struct {
	Slide        *pptx.Slide
	Placeholders []Placeholder
	Diagnostics  []Diagnostic
}

// BrowserFactory constructs a Browser for one HTML file. Production code
// passes NewChromedpBrowser; any other Browser implementation can be
// supplied in its place.
type BrowserFactory func(ctx context.Context, scale float64) (Browser, error)

// SnapshotFunc evaluates the DOM snapshot script against browser and
// returns the resulting StyledNode tree rooted at body. Split out from
// Browser itself so a caller can supply a fixture tree without implementing
// the full Browser interface's Evaluate semantics for a specific script.
type SnapshotFunc func(ctx context.Context, b Browser) (*StyledNode, BodyMetrics, error)

// BodyMetrics carries the body's computed canvas size, used for viewport
// resizing and pre-walk validation.
type BodyMetrics struct {
	WidthPx, HeightPx             float64
	ScrollWidthPx, ScrollHeightPx float64
}

// ConvertSlide drives one HTML file end to end: launch a browser via
// newBrowser, navigate, wait for network idle, read the body size, size the
// viewport to the body, snapshot computed style into a StyledNode tree, walk
// it, raster capture, validate,
// and render onto presentation (appending a new slide unless opts.Slide is
// set).
func ConvertSlide(ctx context.Context, htmlPath string, presentation *pptx.Presentation, opts ConvertOptions, newBrowser BrowserFactory, snapshot SnapshotFunc) (*SlideResult, error) {
	if opts.TmpDir == "" {
		opts.TmpDir = os.TempDir()
	}
	if opts.ViewportScale == 0 {
		opts.ViewportScale = 3
	}
	if opts.Timeouts == (TimeoutConfig{}) {
		opts.Timeouts = DefaultTimeouts()
	}

	browser, err := newBrowser(ctx, opts.ViewportScale)
	if err != nil {
		return nil, &ConvertError{Path: htmlPath, Diagnostics: []Diagnostic{{
			Kind: KindBrowserFailure, Severity: SeverityFatal, Message: err.Error(),
		}}}
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("browser context close failed")
		}
	}()

	navCtx, cancel := context.WithTimeout(ctx, opts.Timeouts.Navigation)
	defer cancel()
	if err := browser.Navigate(navCtx, "file://"+htmlPath); err != nil {
		return nil, &ConvertError{Path: htmlPath, Diagnostics: []Diagnostic{{
			Kind: KindBrowserFailure, Severity: SeverityFatal, Message: err.Error(),
		}}}
	}

	idleCtx, cancel := context.WithTimeout(ctx, opts.Timeouts.NetworkIdle)
	defer cancel()
	if err := browser.WaitNetworkIdle(idleCtx, opts.Timeouts.NetworkSettle); err != nil {
		return nil, &ConvertError{Path: htmlPath, Diagnostics: []Diagnostic{{
			Kind: KindBrowserFailure, Severity: SeverityFatal, Message: err.Error(),
		}}}
	}

	body, metrics, err := snapshot(ctx, browser)
	if err != nil {
		return nil, &ConvertError{Path: htmlPath, Diagnostics: []Diagnostic{{
			Kind: KindBrowserFailure, Severity: SeverityFatal, Message: fmt.Sprintf("snapshot DOM: %v", err),
		}}}
	}

	if err := browser.SetViewport(ctx, int(metrics.WidthPx), int(metrics.HeightPx), opts.ViewportScale); err != nil {
		log.Warn().Err(err).Msg("resize viewport to body failed, continuing with provisional viewport")
	} else if body, metrics, err = snapshot(ctx, browser); err != nil {
		return nil, &ConvertError{Path: htmlPath, Diagnostics: []Diagnostic{{
			Kind: KindBrowserFailure, Severity: SeverityFatal, Message: fmt.Sprintf("snapshot DOM after viewport resize: %v", err),
		}}}
	}

	v := &Validator{}
	v.PreWalk(PxToInch(metrics.WidthPx), PxToInch(metrics.HeightPx), PxToInch(metrics.ScrollWidthPx), PxToInch(metrics.ScrollHeightPx), SlideWidthIn, SlideHeightIn)

	if bg := body.Style("background-image"); containsGradient(bg) {
		v.BodyGradient()
	}

	walker := NewWalker(v)
	data := walker.Walk(body)

	rasterizer := NewRasterizer(browser, opts.TmpDir)
	if err := rasterizer.Run(ctx, &data, v); err != nil {
		return nil, fmt.Errorf("raster capture: %w", err)
	}

	v.PostWalk(data.Elements, SlideHeightIn)

	if v.HasFatal() {
		return nil, v.CombinedError(htmlPath)
	}

	slide := opts.Slide
	if slide == nil {
		slide = presentation.CreateSlide()
	}
	Render(&data, slide)

	return &SlideResult{Slide: slide, Placeholders: data.Placeholders, Diagnostics: v.Diagnostics()}, nil
}

func containsGradient(backgroundImage string) bool {
	return backgroundImage != "" && backgroundImage != "none" && strings.Contains(backgroundImage, "gradient")
}
