package capture

import (
	"errors"
	"log/slog"

	"github.com/use-agent/pagegrab/browser"
	"github.com/use-agent/pagegrab/models"
)

// withPage opens one page on b, runs fn, and disposes the page on every
// exit path, so a mid-pipeline failure never leaks a page handle.
func withPage(b browser.Browser, fn func(browser.Page) error) error {
	page, err := b.NewPage()
	if err != nil {
		return models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			slog.Warn("closing page", "error", cerr)
		}
	}()

	return fn(page)
}

// stabilize waits for network idle, bounded by the configured timeout.
// Timing out is not a failure: pages with polling widgets or analytics
// beacons never reach true idle, so the pipeline proceeds with whatever
// state the page reached.
func (c *Capturer) stabilize(page browser.Page, url string) {
	err := page.WaitForNetworkIdle(c.cfg.StabilizeTimeout)
	switch {
	case err == nil:
	case errors.Is(err, browser.ErrWaitTimeout):
		slog.Info("network idle not reached, proceeding",
			"url", url,
			"timeout", c.cfg.StabilizeTimeout,
		)
	default:
		slog.Warn("network idle wait failed, proceeding", "url", url, "error", err)
	}
}

// search fills the input selector with the term and clicks the button.
// Any failure is logged and never fails the request; the pipeline continues
// with whatever page state resulted. A failed fill skips the click.
func (c *Capturer) search(page browser.Page, cfg models.SearchConfig) {
	if err := page.Fill(cfg.InputSelector, cfg.Term); err != nil {
		slog.Warn("search fill failed",
			"selector", cfg.InputSelector,
			"error", err,
		)
		return
	}
	if err := page.Click(cfg.ButtonSelector); err != nil {
		slog.Warn("search click failed",
			"selector", cfg.ButtonSelector,
			"error", err,
		)
	}
}
