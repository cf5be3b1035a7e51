// Package mock provides function-field fakes for the browser capability
// interfaces, used by tests to drive the pipeline without a real browser.
package mock

import (
	"time"

	"github.com/use-agent/pagegrab/browser"
)

var _ browser.Backend = (*Backend)(nil)

// Backend is a mock implementation of browser.Backend.
type Backend struct {
	LaunchFn func(variant browser.Variant) (browser.Browser, error)
	StopFn   func() error
}

func (b *Backend) Launch(variant browser.Variant) (browser.Browser, error) {
	return b.LaunchFn(variant)
}

func (b *Backend) Stop() error {
	if b.StopFn == nil {
		return nil
	}
	return b.StopFn()
}

var _ browser.Browser = (*Browser)(nil)

// Browser is a mock implementation of browser.Browser.
type Browser struct {
	IsConnectedFn func() bool
	NewPageFn     func() (browser.Page, error)
	CloseFn       func() error
}

func (b *Browser) IsConnected() bool {
	if b.IsConnectedFn == nil {
		return true
	}
	return b.IsConnectedFn()
}

func (b *Browser) NewPage() (browser.Page, error) {
	return b.NewPageFn()
}

func (b *Browser) Close() error {
	if b.CloseFn == nil {
		return nil
	}
	return b.CloseFn()
}

var _ browser.Page = (*Page)(nil)

// Page is a mock implementation of browser.Page.
type Page struct {
	GotoFn               func(url string) error
	WaitForNetworkIdleFn func(timeout time.Duration) error
	WaitForSelectorFn    func(selector string, timeout time.Duration) (browser.Element, error)
	QuerySelectorFn      func(selector string) (browser.Element, error)
	QuerySelectorAllFn   func(selector string) ([]browser.Element, error)
	FillFn               func(selector, value string) error
	ClickFn              func(selector string) error
	ScreenshotFn         func() ([]byte, error)
	ContentFn            func() (string, error)
	CloseFn              func() error
}

func (p *Page) Goto(url string) error {
	if p.GotoFn == nil {
		return nil
	}
	return p.GotoFn(url)
}

func (p *Page) WaitForNetworkIdle(timeout time.Duration) error {
	if p.WaitForNetworkIdleFn == nil {
		return nil
	}
	return p.WaitForNetworkIdleFn(timeout)
}

func (p *Page) WaitForSelector(selector string, timeout time.Duration) (browser.Element, error) {
	return p.WaitForSelectorFn(selector, timeout)
}

func (p *Page) QuerySelector(selector string) (browser.Element, error) {
	return p.QuerySelectorFn(selector)
}

func (p *Page) QuerySelectorAll(selector string) ([]browser.Element, error) {
	return p.QuerySelectorAllFn(selector)
}

func (p *Page) Fill(selector, value string) error {
	if p.FillFn == nil {
		return nil
	}
	return p.FillFn(selector, value)
}

func (p *Page) Click(selector string) error {
	if p.ClickFn == nil {
		return nil
	}
	return p.ClickFn(selector)
}

func (p *Page) Screenshot() ([]byte, error) {
	return p.ScreenshotFn()
}

func (p *Page) Content() (string, error) {
	return p.ContentFn()
}

func (p *Page) Close() error {
	if p.CloseFn == nil {
		return nil
	}
	return p.CloseFn()
}

var _ browser.Element = (*Element)(nil)

// Element is a mock implementation of browser.Element.
type Element struct {
	TextContentFn      func() (string, error)
	GetAttributeFn     func(name string) (string, error)
	QuerySelectorFn    func(selector string) (browser.Element, error)
	QuerySelectorAllFn func(selector string) ([]browser.Element, error)
}

func (e *Element) TextContent() (string, error) {
	return e.TextContentFn()
}

func (e *Element) GetAttribute(name string) (string, error) {
	return e.GetAttributeFn(name)
}

func (e *Element) QuerySelector(selector string) (browser.Element, error) {
	return e.QuerySelectorFn(selector)
}

func (e *Element) QuerySelectorAll(selector string) ([]browser.Element, error) {
	return e.QuerySelectorAllFn(selector)
}
