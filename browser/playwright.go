package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightOptions configures the playwright backend.
type PlaywrightOptions struct {
	// Headless controls whether launched browsers run headless.
	Headless bool

	// InstallDriver runs the driver installation before starting.
	InstallDriver bool

	// ExecutablePath overrides the chromium binary. Ignored for the
	// firefox and webkit variants, which use the bundled builds.
	ExecutablePath string

	// NavigationTimeout bounds Page.Goto. 0 disables the bound.
	NavigationTimeout time.Duration
}

// PlaywrightBackend implements Backend on top of playwright-go, the one
// driver that launches all three engine variants.
type PlaywrightBackend struct {
	pw   *playwright.Playwright
	opts PlaywrightOptions
}

var _ Backend = (*PlaywrightBackend)(nil)

// NewPlaywrightBackend starts the playwright driver process.
func NewPlaywrightBackend(opts PlaywrightOptions) (*PlaywrightBackend, error) {
	if opts.InstallDriver {
		if err := playwright.Install(&playwright.RunOptions{SkipInstallBrowsers: true}); err != nil {
			return nil, fmt.Errorf("installing playwright driver: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright driver: %w", err)
	}

	return &PlaywrightBackend{pw: pw, opts: opts}, nil
}

// Launch starts a headless browser of the given variant.
func (b *PlaywrightBackend) Launch(variant Variant) (Browser, error) {
	var bt playwright.BrowserType
	switch variant {
	case Chromium:
		bt = b.pw.Chromium
	case Firefox:
		bt = b.pw.Firefox
	case WebKit:
		bt = b.pw.WebKit
	default:
		return nil, fmt.Errorf("unsupported engine variant %q", variant)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.opts.Headless),
	}
	if variant == Chromium && b.opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(b.opts.ExecutablePath)
	}

	browser, err := bt.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("launching %s: %w", variant, err)
	}

	return &pwBrowser{browser: browser, navTimeout: b.opts.NavigationTimeout}, nil
}

// Stop shuts down the playwright driver process.
func (b *PlaywrightBackend) Stop() error {
	return b.pw.Stop()
}

type pwBrowser struct {
	browser    playwright.Browser
	navTimeout time.Duration
}

func (b *pwBrowser) IsConnected() bool {
	return b.browser.IsConnected()
}

func (b *pwBrowser) NewPage() (Page, error) {
	page, err := b.browser.NewPage()
	if err != nil {
		return nil, err
	}
	return &pwPage{page: page, navTimeout: b.navTimeout}, nil
}

func (b *pwBrowser) Close() error {
	return b.browser.Close()
}

type pwPage struct {
	page       playwright.Page
	navTimeout time.Duration
}

func (p *pwPage) Goto(url string) error {
	// Timeout 0 disables playwright's default 30s navigation deadline,
	// keeping navigation unbounded unless configured otherwise.
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout: playwright.Float(float64(p.navTimeout.Milliseconds())),
	})
	return err
}

func (p *pwPage) WaitForNetworkIdle(timeout time.Duration) error {
	err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return ErrWaitTimeout
	}
	return err
}

func (p *pwPage) WaitForSelector(selector string, timeout time.Duration) (Element, error) {
	el, err := p.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return nil, ErrWaitTimeout
		}
		return nil, err
	}
	if el == nil {
		return nil, ErrWaitTimeout
	}
	return &pwElement{el: el}, nil
}

func (p *pwPage) QuerySelector(selector string) (Element, error) {
	el, err := p.page.QuerySelector(selector)
	if err != nil || el == nil {
		return nil, err
	}
	return &pwElement{el: el}, nil
}

func (p *pwPage) QuerySelectorAll(selector string) ([]Element, error) {
	handles, err := p.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(handles), nil
}

func (p *pwPage) Fill(selector, value string) error {
	return p.page.Fill(selector, value)
}

func (p *pwPage) Click(selector string) error {
	return p.page.Click(selector)
}

func (p *pwPage) Screenshot() ([]byte, error) {
	return p.page.Screenshot()
}

func (p *pwPage) Content() (string, error) {
	return p.page.Content()
}

func (p *pwPage) Close() error {
	return p.page.Close()
}

type pwElement struct {
	el playwright.ElementHandle
}

func (e *pwElement) TextContent() (string, error) {
	return e.el.TextContent()
}

func (e *pwElement) GetAttribute(name string) (string, error) {
	return e.el.GetAttribute(name)
}

func (e *pwElement) QuerySelector(selector string) (Element, error) {
	el, err := e.el.QuerySelector(selector)
	if err != nil || el == nil {
		return nil, err
	}
	return &pwElement{el: el}, nil
}

func (e *pwElement) QuerySelectorAll(selector string) ([]Element, error) {
	handles, err := e.el.QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	return wrapElements(handles), nil
}

func wrapElements(handles []playwright.ElementHandle) []Element {
	elements := make([]Element, 0, len(handles))
	for _, h := range handles {
		elements = append(elements, &pwElement{el: h})
	}
	return elements
}
