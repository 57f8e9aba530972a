package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder for DecodeConfig
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-builder/internal/rendering"
)

// Image is a rasterized resume.
type Image struct {
	PNG    []byte
	Width  int
	Height int
}

// Rasterizer captures the resume element of an HTML page as an image.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) (*Image, error)
}

// Default browser settings.
const (
	DefaultViewportWidth  = 800
	DefaultViewportHeight = 1100
	DefaultChromeTimeout  = 30 * time.Second
)

// ChromeRasterizer renders HTML in headless Chrome and screenshots the
// element with id "resume". Requires Chrome/Chromium to be installed.
type ChromeRasterizer struct {
	ViewportWidth int
	Timeout       time.Duration
	Verbose       bool
}

// NewChromeRasterizer returns a rasterizer with default settings.
func NewChromeRasterizer(verbose bool) *ChromeRasterizer {
	return &ChromeRasterizer{
		ViewportWidth: DefaultViewportWidth,
		Timeout:       DefaultChromeTimeout,
		Verbose:       verbose,
	}
}

// Rasterize implements Rasterizer.
func (c *ChromeRasterizer) Rasterize(ctx context.Context, html string) (*Image, error) {
	width := c.ViewportWidth
	if width <= 0 {
		width = DefaultViewportWidth
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultChromeTimeout
	}

	if c.Verbose {
		log.Printf("[BROWSER] Starting headless browser (viewport %dpx)", width)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), DefaultViewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitVisible("#"+rendering.ResumeElementID, chromedp.ByQuery),
		chromedp.Screenshot("#"+rendering.ResumeElementID, &buf, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	if c.Verbose {
		log.Printf("[BROWSER] Captured %dx%d screenshot (%d bytes)", cfg.Width, cfg.Height, len(buf))
	}

	return &Image{PNG: buf, Width: cfg.Width, Height: cfg.Height}, nil
}
