package htmlslide

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp" // registers a webp decoder with image.Decode; captures here are decoded with png.Decode
)

// Rasterizer performs raster capture (C5): for each RasterRequest, it runs
// the hide/clip/ancestor-mutation/overlap-suppression sequence, takes an
// element-bounded screenshot, restores the DOM, and writes a PNG to the
// configured temp directory keyed by the element's id.
type Rasterizer struct {
	browser Browser
	tmpDir  string
}

// NewRasterizer returns a Rasterizer writing PNGs under tmpDir.
func NewRasterizer(b Browser, tmpDir string) *Rasterizer {
	return &Rasterizer{browser: b, tmpDir: tmpDir}
}

// capturedImage records the resolved PNG path for one raster request.
type capturedImage struct {
	id   string
	path string
}

// Run resolves every RasterRequest in data against the live page, mutating
// data.Elements in place: each image_placeholder is replaced with an
// image carrying the resolved PNG path, or dropped (with a validator
// warning) if its capture failed.
func (r *Rasterizer) Run(ctx context.Context, data *SlideData, v *Validator) error {
	captured := map[string]string{}

	for _, req := range data.RasterRequests {
		path, err := r.captureOne(ctx, req)
		if err != nil {
			v.RasterFailure(req.ID, err)
			log.Warn().Str("node", req.ID).Err(err).Msg("raster capture failed, dropping placeholder")
			continue
		}
		captured[req.ID] = path
	}

	kept := data.Elements[:0]
	for _, el := range data.Elements {
		if el.Kind != ElementImagePlaceholder {
			kept = append(kept, el)
			continue
		}
		path, ok := captured[el.ID]
		if !ok {
			continue
		}
		el.Kind = ElementImage
		el.Src = path
		kept = append(kept, el)
	}
	data.Elements = kept

	return nil
}

// captureOne performs the full hide/restore sequence for one element and
// returns the path of the PNG written for it.
func (r *Rasterizer) captureOne(ctx context.Context, req RasterRequest) (string, error) {
	if req.HideChildren {
		if err := r.browser.Evaluate(ctx, hideDescendantsScript(req.ID), nil); err != nil {
			return "", fmt.Errorf("hide descendants: %w", err)
		}
	}
	if err := r.browser.Evaluate(ctx, clipScript(req.ID), nil); err != nil {
		return "", fmt.Errorf("apply clip: %w", err)
	}
	if err := r.browser.Evaluate(ctx, zeroAncestorBackgroundsScript(req.ID), nil); err != nil {
		return "", fmt.Errorf("zero ancestor backgrounds: %w", err)
	}
	if err := r.browser.Evaluate(ctx, hideOverlappingScript(req.ID, req.X, req.Y, req.W, req.H), nil); err != nil {
		return "", fmt.Errorf("hide overlapping elements: %w", err)
	}

	defer func() {
		_ = r.browser.Evaluate(ctx, restoreScript(req.ID), nil)
	}()

	raw, err := r.browser.ElementScreenshot(ctx, req.ID, PixelRect{X: req.X * PxPerInch, Y: req.Y * PxPerInch, W: req.W * PxPerInch, H: req.H * PxPerInch})
	if err != nil {
		return "", err
	}
	normalized, err := normalizePNG(raw)
	if err != nil {
		return "", fmt.Errorf("normalize raster: %w", err)
	}

	return r.writePNG(normalized)
}

func (r *Rasterizer) writePNG(data []byte) (string, error) {
	name := filepath.Join(r.tmpDir, "htmlslide-"+uuid.NewString()+".png")
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return "", fmt.Errorf("write raster png %s: %w", name, err)
	}
	return name, nil
}

// normalizePNG decodes and re-encodes a raster capture to ensure alpha is
// not premultiplied in a way PPTX's image renderer mishandles.
func normalizePNG(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	if _, ok := img.(*image.NRGBA); ok {
		return data, nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("re-encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func hideDescendantsScript(id string) string {
	return fmt.Sprintf(`(() => {
		const el = document.getElementById(%q);
		if (!el) return;
		el.querySelectorAll('*').forEach(d => { d.style.opacity = '0'; });
		el.style.color = 'transparent';
	})()`, id)
}

func clipScript(id string) string {
	return fmt.Sprintf(`(() => {
		const el = document.getElementById(%q);
		if (!el) return;
		const r = getComputedStyle(el).borderRadius || '0';
		el.dataset.htmlslideOldClip = el.style.clipPath || '';
		el.style.clipPath = 'inset(0 round ' + r + ')';
	})()`, id)
}

func zeroAncestorBackgroundsScript(id string) string {
	return fmt.Sprintf(`(() => {
		let el = document.getElementById(%q);
		if (!el) return;
		el = el.parentElement;
		while (el && el !== document.body.parentElement) {
			el.dataset.htmlslideOldBg = el.style.background || '';
			el.style.background = 'none';
			el = el.parentElement;
		}
	})()`, id)
}

func hideOverlappingScript(id string, x, y, w, h float64) string {
	return fmt.Sprintf(`(() => {
		const target = document.getElementById(%q);
		if (!target) return;
		const tx = %f * 96, ty = %f * 96, tw = %f * 96, th = %f * 96;
		document.querySelectorAll('body *').forEach(el => {
			if (el === target || target.contains(el) || el.contains(target)) return;
			const r = el.getBoundingClientRect();
			const overlaps = r.left < tx + tw && r.right > tx && r.top < ty + th && r.bottom > ty;
			if (overlaps) {
				el.dataset.htmlslideHidden = '1';
				el.style.visibility = 'hidden';
			}
		});
	})()`, id, x, y, w, h)
}

func restoreScript(id string) string {
	return fmt.Sprintf(`(() => {
		const el = document.getElementById(%q);
		if (el) {
			el.querySelectorAll('*').forEach(d => { d.style.opacity = ''; });
			el.style.color = '';
			el.style.clipPath = el.dataset.htmlslideOldClip || '';
			delete el.dataset.htmlslideOldClip;
			let a = el.parentElement;
			while (a && a !== document.body.parentElement) {
				a.style.background = a.dataset.htmlslideOldBg || '';
				delete a.dataset.htmlslideOldBg;
				a = a.parentElement;
			}
		}
		document.querySelectorAll('[data-htmlslide-hidden]').forEach(h => {
			h.style.visibility = '';
			delete h.dataset.htmlslideHidden;
		});
	})()`, id)
}
