package capture

import (
	"testing"
	"time"

	"github.com/use-agent/pagegrab/browser"
	"github.com/use-agent/pagegrab/mock"
	"github.com/use-agent/pagegrab/models"
)

func TestExtractItemsTimeoutYieldsEmptySlice(t *testing.T) {
	page := &mock.Page{
		WaitForSelectorFn: func(selector string, timeout time.Duration) (browser.Element, error) {
			return nil, browser.ErrWaitTimeout
		},
	}

	c := &Capturer{cfg: testConfig()}
	items, err := c.extractItems(page, models.ItemsConfig{
		Enabled:      true,
		ItemSelector: ".never-appears",
	})
	if err != nil {
		t.Fatalf("extractItems: %v", err)
	}
	if items == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}

func TestExtractItemsPlaceholders(t *testing.T) {
	const fixture = `<html><body>
<div class="card"><span class="when">2024-01-02</span><a href="/x">x</a><a href="/y">y</a></div>
<div class="card">bare entry with nothing inside</div>
</body></html>`

	page := newDOMPage(t, fixture)
	c := &Capturer{cfg: testConfig()}

	items, err := c.extractItems(page, models.ItemsConfig{
		Enabled:       true,
		ItemSelector:  ".card",
		TitleSelector: ".head",
		DateSelector:  ".when",
	})
	if err != nil {
		t.Fatalf("extractItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	// Neither card has a .head: the configured title selector yields "".
	for i, item := range items {
		if item.Title == nil || *item.Title != "" {
			t.Errorf("item %d: title = %v, want empty string placeholder", i, item.Title)
		}
	}

	if got := items[0].Links; len(got) != 2 || got[0] != "/x" || got[1] != "/y" {
		t.Errorf("item 0: links = %v, want [/x /y]", got)
	}
	if items[0].Date == nil || *items[0].Date != "2024-01-02" {
		t.Errorf("item 0: date = %v, want 2024-01-02", items[0].Date)
	}

	// An anchor-less item yields a single empty link, never an empty slice.
	if got := items[1].Links; len(got) != 1 || got[0] != "" {
		t.Errorf("item 1: links = %v, want [\"\"]", got)
	}
	if items[1].Date == nil || *items[1].Date != "no date" {
		t.Errorf("item 1: date = %v, want the no-date placeholder", items[1].Date)
	}
}

func TestExtractItemsOmitsUnconfiguredFields(t *testing.T) {
	const fixture = `<html><body><li class="row"><a href="/only">only</a></li></body></html>`

	page := newDOMPage(t, fixture)
	c := &Capturer{cfg: testConfig()}

	items, err := c.extractItems(page, models.ItemsConfig{
		Enabled:      true,
		ItemSelector: ".row",
	})
	if err != nil {
		t.Fatalf("extractItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != nil {
		t.Errorf("title = %q, want absent without a title selector", *items[0].Title)
	}
	if items[0].Date != nil {
		t.Errorf("date = %q, want absent without a date selector", *items[0].Date)
	}
}

func TestExtractBodyFullPageFallback(t *testing.T) {
	const fixture = `<html><head></head><body><p>Whole page content</p></body></html>`

	page := newDOMPage(t, fixture)
	c := &Capturer{cfg: testConfig()}

	body, err := c.extractBody(page, "http://example.com", models.BodyConfig{
		Enabled: true,
		Format:  models.FormatHTML,
	})
	if err != nil {
		t.Fatalf("extractBody: %v", err)
	}

	if len(body.Body) != 1 {
		t.Fatalf("expected 1 body entry, got %d", len(body.Body))
	}
	if body.Body[0].Selector != nil {
		t.Errorf("fallback selector = %q, want nil", *body.Body[0].Selector)
	}
	if body.Body[0].Content == nil || *body.Body[0].Content != fixture {
		t.Errorf("fallback content = %v, want the full page markup", body.Body[0].Content)
	}

	// Empty title/date selector lists yield a single nil-selector,
	// empty-content entry each.
	for _, section := range [][]models.SelectorResult{body.Title, body.Date} {
		if len(section) != 1 {
			t.Fatalf("expected 1 placeholder entry, got %d", len(section))
		}
		if section[0].Selector != nil {
			t.Errorf("placeholder selector = %q, want nil", *section[0].Selector)
		}
		if section[0].Content == nil || *section[0].Content != "" {
			t.Errorf("placeholder content = %v, want empty string", section[0].Content)
		}
	}
}

func TestSelectorResultsOutcomes(t *testing.T) {
	// Three selectors exercising the three outcomes: a wait that times out,
	// one that resolves with content, and one that resolves during the wait
	// but matches nothing on re-query.
	resolved := &mock.Element{
		TextContentFn: func() (string, error) { return "  Hello\nWorld  ", nil },
	}
	page := &mock.Page{
		WaitForSelectorFn: func(selector string, timeout time.Duration) (browser.Element, error) {
			if selector == "#missing" {
				return nil, browser.ErrWaitTimeout
			}
			return resolved, nil
		},
		QuerySelectorFn: func(selector string) (browser.Element, error) {
			if selector == "#ghost" {
				return nil, nil
			}
			return resolved, nil
		},
	}

	c := &Capturer{cfg: testConfig()}
	results, err := c.selectorResults(page, []string{"#missing", "#present", "#ghost"})
	if err != nil {
		t.Fatalf("selectorResults: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 entries (the ghost selector appends nothing), got %d", len(results))
	}

	if results[0].Selector == nil || *results[0].Selector != "#missing" {
		t.Errorf("entry 0: selector = %v, want #missing", results[0].Selector)
	}
	if results[0].Content != nil {
		t.Errorf("entry 0: content = %q, want nil for a timed-out wait", *results[0].Content)
	}

	if results[1].Selector == nil || *results[1].Selector != "#present" {
		t.Errorf("entry 1: selector = %v, want #present", results[1].Selector)
	}
	if results[1].Content == nil || *results[1].Content != "Hello World" {
		t.Errorf("entry 1: content = %v, want collapsed text", results[1].Content)
	}
}

func TestExtractBodyResolvedEmptyContent(t *testing.T) {
	const fixture = `<html><body><div id="empty"></div></body></html>`

	page := newDOMPage(t, fixture)
	c := &Capturer{cfg: testConfig()}

	body, err := c.extractBody(page, "http://example.com", models.BodyConfig{
		Enabled:       true,
		BodySelectors: []string{"#empty"},
	})
	if err != nil {
		t.Fatalf("extractBody: %v", err)
	}

	if len(body.Body) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(body.Body))
	}
	// Resolved selectors always carry a string, even an empty one; only a
	// timed-out wait leaves content nil.
	if body.Body[0].Content == nil || *body.Body[0].Content != "" {
		t.Errorf("content = %v, want empty string for an empty element", body.Body[0].Content)
	}
}

func TestCollapseText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"line\nbreak", "line break"},
		{"\n  multi\nline\n text \n", "multi line  text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := collapseText(tt.in); got != tt.want {
			t.Errorf("collapseText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
