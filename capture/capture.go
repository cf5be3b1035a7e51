// Package capture implements the extraction pipeline: one stabilized page
// per request, a search interaction when configured, and the selector-driven
// extraction strategies producing a PageInfo.
package capture

import (
	"context"
	"errors"

	"github.com/use-agent/pagegrab/browser"
	"github.com/use-agent/pagegrab/cleaner"
	"github.com/use-agent/pagegrab/config"
	"github.com/use-agent/pagegrab/models"
)

// Capturer orchestrates one capture per call. It is safe for concurrent use:
// all per-request state lives on the stack, the pool handles its own locking.
type Capturer struct {
	pool    *browser.Pool
	cfg     config.CaptureConfig
	cleaner *cleaner.Cleaner
}

// New creates a Capturer over the given pool.
func New(pool *browser.Pool, cfg config.CaptureConfig, cl *cleaner.Cleaner) *Capturer {
	return &Capturer{pool: pool, cfg: cfg, cleaner: cl}
}

// Do runs the full pipeline for one request:
//
//	validate → acquire browser → open page → navigate → stabilize →
//	search → meta → items XOR body → screenshot → dispose
//
// Configuration errors are rejected before any browser interaction. Once a
// page is open, disposal is guaranteed on every exit path. Transient
// failures (search, selector timeouts, stabilization) degrade into the
// defined placeholders; hard failures abort without a partial PageInfo.
//
// Cancellation is honored only before browser work starts; a running
// pipeline completes or fails on its own.
func (c *Capturer) Do(ctx context.Context, req *models.CaptureRequest) (*models.PageInfo, error) {
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}
	if err := ctx.Err(); err != nil {
		return nil, models.NewCaptureError(models.ErrCodeTimeout, "request canceled", err)
	}

	variant, err := browser.ParseVariant(req.Engine)
	if err != nil {
		return nil, models.NewCaptureError(models.ErrCodeUnsupportedEngine, err.Error(), nil)
	}

	b, err := c.pool.Acquire(variant)
	if err != nil {
		return nil, models.NewCaptureError(
			models.ErrCodeBrowserCrash,
			"failed to acquire browser",
			err,
		)
	}

	info := &models.PageInfo{}
	err = withPage(b, func(page browser.Page) error {
		if navErr := page.Goto(req.URL); navErr != nil {
			return categorizeError(navErr, models.ErrCodeNavigation, "navigation to target URL failed")
		}

		c.stabilize(page, req.URL)

		if req.Search.Enabled {
			c.search(page, req.Search)
		}

		meta, metaErr := extractMeta(page)
		if metaErr != nil {
			return categorizeError(metaErr, models.ErrCodeInternal, "failed to read page markup")
		}
		info.Meta = meta

		if req.Items.Enabled {
			items, itemsErr := c.extractItems(page, req.Items)
			if itemsErr != nil {
				return categorizeError(itemsErr, models.ErrCodeInternal, "items extraction failed")
			}
			info.Items = &items
		}

		if req.Body.Enabled {
			body, bodyErr := c.extractBody(page, req.URL, req.Body)
			if bodyErr != nil {
				return categorizeError(bodyErr, models.ErrCodeInternal, "body extraction failed")
			}
			info.Body = body
		}

		if req.Screenshot {
			shot, shotErr := captureScreenshot(page)
			if shotErr != nil {
				return categorizeError(shotErr, models.ErrCodeInternal, "screenshot capture failed")
			}
			info.Screenshot = shot
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// categorizeError wraps raw errors into typed CaptureErrors so the API layer
// can map them to appropriate HTTP status codes.
func categorizeError(err error, defaultCode, msg string) *models.CaptureError {
	var capErr *models.CaptureError
	if errors.As(err, &capErr) {
		return capErr
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewCaptureError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewCaptureError(models.ErrCodeTimeout, "request canceled", err)
	default:
		return models.NewCaptureError(defaultCode, msg, err)
	}
}
