// Package browser defines the capability set the extraction pipeline needs
// from a browser-automation backend, and the pool that owns browser
// instances across requests. The playwright adapter is the production
// implementation; tests substitute fakes from the mock package.
package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/use-agent/pagegrab/models"
)

// ErrWaitTimeout is returned by bounded waits (selector waits, network-idle
// stabilization) when the bound elapses. Callers branch on it to substitute
// placeholders instead of failing the request.
var ErrWaitTimeout = errors.New("browser: wait timed out")

// Variant identifies a launchable browser engine.
type Variant string

const (
	Chromium Variant = models.EngineChromium
	Firefox  Variant = models.EngineFirefox
	WebKit   Variant = models.EngineWebKit
)

// ParseVariant validates an engine name from a request.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Chromium, Firefox, WebKit:
		return v, nil
	default:
		return "", fmt.Errorf("unsupported engine variant %q", s)
	}
}

// Backend supplies launchable browser engines.
type Backend interface {
	// Launch starts a new browser instance of the given variant.
	Launch(variant Variant) (Browser, error)

	// Stop releases backend-wide resources. Browsers launched earlier
	// must be closed separately (the pool does this on shutdown).
	Stop() error
}

// Browser is one live browser instance, shared across requests.
type Browser interface {
	IsConnected() bool
	NewPage() (Page, error)
	Close() error
}

// Page is one open tab, exclusive to a single request.
type Page interface {
	// Goto navigates and waits for the navigation's own completion
	// semantics. Navigation failure is fatal for the request.
	Goto(url string) error

	// WaitForNetworkIdle waits until no network requests have been in
	// flight for a quiescence window, bounded by timeout. Returns
	// ErrWaitTimeout when the bound elapses.
	WaitForNetworkIdle(timeout time.Duration) error

	// WaitForSelector waits for at least one match, bounded by timeout.
	// Returns ErrWaitTimeout when the bound elapses.
	WaitForSelector(selector string, timeout time.Duration) (Element, error)

	// QuerySelector returns the first match, or nil when there is none.
	QuerySelector(selector string) (Element, error)

	// QuerySelectorAll returns every match in document order.
	QuerySelectorAll(selector string) ([]Element, error)

	Fill(selector, value string) error
	Click(selector string) error
	Screenshot() ([]byte, error)
	Content() (string, error)
	Close() error
}

// Element is a handle to one element in the rendered page.
type Element interface {
	TextContent() (string, error)
	GetAttribute(name string) (string, error)

	// QuerySelector returns the first matching descendant, or nil.
	QuerySelector(selector string) (Element, error)
	QuerySelectorAll(selector string) ([]Element, error)
}
