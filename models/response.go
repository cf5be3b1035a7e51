package models

// Meta keys extracted from the page's <meta> tags.
const (
	MetaDescription = "description"
	MetaKeywords    = "keywords"
	MetaTitle       = "title"
)

// Meta maps the recognised meta keys to their tag content. A key is present
// only when a matching tag was found; a nil value means the matching tag had
// no content attribute.
type Meta map[string]*string

// PageInfo is the extraction result for one capture.
//
// Items and Body are mutually exclusive and each appears only when its mode
// was enabled. Items points at a slice so that an enabled-but-empty result
// still serialises as [] rather than disappearing from the JSON.
type PageInfo struct {
	Meta       Meta          `json:"meta"`
	Items      *[]ItemRecord `json:"items,omitempty"`
	Body       *BodyContent  `json:"body,omitempty"`
	Screenshot *Screenshot   `json:"screenshot,omitempty"`
}

// ItemRecord is one matched element of an items extraction.
//
// Title and Date are omitted entirely when the corresponding selector was
// not configured; when configured but unmatched they carry the placeholder
// ("" for title, "no date" for date). Links always has at least one entry:
// an item without anchors yields [""], never [].
type ItemRecord struct {
	Title *string  `json:"title,omitempty"`
	Links []string `json:"links"`
	Date  *string  `json:"date,omitempty"`
}

// BodyContent groups the three per-selector-list results of a body extraction.
type BodyContent struct {
	Title []SelectorResult `json:"title"`
	Body  []SelectorResult `json:"body"`
	Date  []SelectorResult `json:"date"`
}

// SelectorResult is the outcome of waiting for one selector. A nil Content
// signals the wait timed out; a resolved selector always yields a string,
// possibly empty. A nil Selector marks a fallback entry.
type SelectorResult struct {
	Selector *string `json:"selector"`
	Content  *string `json:"content"`
}

// Screenshot carries the captured image as base64 plus a human-readable size.
type Screenshot struct {
	Size   string `json:"size"`
	Base64 string `json:"base64"`
}

// ErrorResponse is the envelope for failed requests (also used by middleware).
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string    `json:"status"`
	Uptime  string    `json:"uptime"`
	Pool    PoolStats `json:"pool"`
	Version string    `json:"version"`
}

// PoolStats reports which engine variants currently hold a live browser.
type PoolStats struct {
	LiveEngines []string `json:"live_engines"`
}
