package cleaner

import (
	"strings"
	"testing"

	"github.com/use-agent/pagegrab/models"
)

const articleFixture = `<html>
<head><title>Release Notes</title></head>
<body>
<div id="content">
<p>The quarterly release introduces a redesigned ingestion pipeline that
processes uploads in parallel and reports progress per file.</p>
<p>Operators upgrading from the previous series should re-run the migration
tool before enabling the new scheduler, as the job table layout changed.</p>
</div>
</body>
</html>`

func TestRenderMarkdown(t *testing.T) {
	c := NewCleaner()

	out, err := c.Render(articleFixture, "http://example.com/notes", models.FormatMarkdown)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "redesigned ingestion pipeline") {
		t.Errorf("markdown output missing article text:\n%s", out)
	}
	if strings.Contains(out, "<p>") {
		t.Errorf("markdown output still contains HTML tags:\n%s", out)
	}
}

func TestRenderText(t *testing.T) {
	c := NewCleaner()

	out, err := c.Render(articleFixture, "http://example.com/notes", models.FormatText)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "re-run the migration") {
		t.Errorf("text output missing article text:\n%s", out)
	}
	if strings.Contains(out, "<p>") {
		t.Errorf("text output still contains HTML tags:\n%s", out)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	c := NewCleaner()

	if _, err := c.Render(articleFixture, "http://example.com", "pdf"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestRenderShortContentFallsBack(t *testing.T) {
	c := NewCleaner()
	raw := "<html><body><p>hi</p></body></html>"

	// Too little text for readability: the raw markup stands in.
	out, err := c.Render(raw, "http://example.com", models.FormatText)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "<p>hi</p>") {
		t.Errorf("expected the raw markup fallback, got:\n%s", out)
	}
}

func TestRenderInvalidURLFallsBack(t *testing.T) {
	c := NewCleaner()

	out, err := c.Render(articleFixture, "http://bad url with spaces", models.FormatText)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out == "" {
		t.Error("expected fallback output, got empty string")
	}
}
