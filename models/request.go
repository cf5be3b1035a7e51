package models

// Engine variants the browser pool can launch.
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// Body fallback output formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// CaptureRequest is the payload for POST /api/v1/capture.
type CaptureRequest struct {
	// URL is the target page. Required.
	URL string `json:"url" binding:"required,url"`

	// Engine selects the browser engine: "chromium", "firefox" or "webkit".
	// Default: "chromium".
	Engine string `json:"engine,omitempty"`

	// Screenshot requests a screenshot of the final page state.
	Screenshot bool `json:"screenshot,omitempty"`

	// Search configures an optional search interaction performed after
	// navigation and before extraction.
	Search SearchConfig `json:"search,omitempty"`

	// Items configures list-page extraction. Mutually exclusive with Body.
	Items ItemsConfig `json:"items,omitempty"`

	// Body configures detail-page extraction. Mutually exclusive with Items.
	Body BodyConfig `json:"body,omitempty"`

	// MaxAge enables the response cache: a cached result younger than
	// MaxAge milliseconds is returned without touching the browser.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// SearchConfig describes the fill-and-click search interaction.
// All three fields are expected when Enabled; a missing selector makes the
// search step fail non-fatally, it does not reject the request.
type SearchConfig struct {
	Enabled        bool   `json:"enabled,omitempty"`
	InputSelector  string `json:"input_selector,omitempty"`
	ButtonSelector string `json:"button_selector,omitempty"`
	Term           string `json:"term,omitempty"`
}

// ItemsConfig describes a repeated-element extraction pattern (result lists).
type ItemsConfig struct {
	Enabled       bool   `json:"enabled,omitempty"`
	ItemSelector  string `json:"item_selector,omitempty"`
	TitleSelector string `json:"title_selector,omitempty"`
	DateSelector  string `json:"date_selector,omitempty"`
}

// BodyConfig describes a named-field extraction pattern (detail pages).
type BodyConfig struct {
	Enabled        bool     `json:"enabled,omitempty"`
	BodySelectors  []string `json:"body_selectors,omitempty"`
	TitleSelectors []string `json:"title_selectors,omitempty"`
	DateSelectors  []string `json:"date_selectors,omitempty"`

	// Format controls how the full-page fallback (empty BodySelectors) is
	// rendered: "html" (default), "markdown" or "text".
	Format string `json:"format,omitempty" binding:"omitempty,oneof=html markdown text"`
}

// Defaults applies default values to unset fields.
func (r *CaptureRequest) Defaults() {
	if r.Engine == "" {
		r.Engine = EngineChromium
	}
	if r.Body.Format == "" {
		r.Body.Format = FormatHTML
	}
}

// Validate enforces the configuration invariants that must be rejected
// before any browser interaction.
func (r *CaptureRequest) Validate() *CaptureError {
	switch r.Engine {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return NewCaptureError(
			ErrCodeUnsupportedEngine,
			"unsupported engine: "+r.Engine+" (want chromium, firefox or webkit)",
			nil,
		)
	}

	if r.Items.Enabled && r.Body.Enabled {
		return NewCaptureError(
			ErrCodeInvalidInput,
			"items and body extraction cannot both be enabled",
			nil,
		)
	}

	if r.Items.Enabled && r.Items.ItemSelector == "" {
		return NewCaptureError(
			ErrCodeInvalidInput,
			"items extraction requires item_selector",
			nil,
		)
	}

	return nil
}
