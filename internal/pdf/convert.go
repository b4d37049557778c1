// Package pdf converts rendered letters to PDF with a headless browser and
// merges them with the original resume.
package pdf

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultConvertTimeout bounds a single browser render
	DefaultConvertTimeout = 60 * time.Second
	// DefaultMaxBrowsers bounds concurrent Chrome launches. Each launch
	// costs a few hundred MB, so concurrent requests queue here.
	DefaultMaxBrowsers = 2

	paperWidthInches  = 8.5
	paperHeightInches = 11
)

// Converter renders HTML to PDF via headless Chrome.
type Converter struct {
	sem      *semaphore.Weighted
	timeout  time.Duration
	execPath string
}

// NewConverter creates a Converter. The Chrome binary is discovered on
// PATH unless CHROME_PATH is set.
func NewConverter() *Converter {
	return &Converter{
		sem:      semaphore.NewWeighted(DefaultMaxBrowsers),
		timeout:  DefaultConvertTimeout,
		execPath: os.Getenv("CHROME_PATH"),
	}
}

// Convert renders the HTML document to Letter-sized PDF bytes.
func (c *Converter) Convert(ctx context.Context, html string) ([]byte, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, &RenderError{Message: "canceled while waiting for a browser slot", Cause: err}
	}
	defer c.sem.Release(1)

	// Chrome handles file:// URLs more reliably than data: URLs for
	// multi-kilobyte documents, so the HTML goes through a temp file.
	dir, err := os.MkdirTemp("", "coverletter-render-*")
	if err != nil {
		return nil, &RenderError{Message: "temp dir creation failed", Cause: err}
	}
	defer os.RemoveAll(dir)

	htmlPath := filepath.Join(dir, "letter.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &RenderError{Message: "temp file write failed", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, c.timeout)
	defer cancelTimeout()

	var pdfBytes []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(paperWidthInches).
				WithPaperHeight(paperHeightInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBytes = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "headless browser render failed", Cause: err}
	}
	if len(pdfBytes) == 0 {
		return nil, &RenderError{Message: "browser returned an empty document"}
	}

	return pdfBytes, nil
}

// WithTimeout returns a copy of the Converter with a different per-render
// timeout. Used by tests.
func (c *Converter) WithTimeout(d time.Duration) *Converter {
	return &Converter{sem: c.sem, timeout: d, execPath: c.execPath}
}
