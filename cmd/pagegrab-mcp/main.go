package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// captureRequest mirrors the pagegrab API request model.
type captureRequest struct {
	URL        string       `json:"url"`
	Engine     string       `json:"engine,omitempty"`
	Screenshot bool         `json:"screenshot,omitempty"`
	Items      *itemsConfig `json:"items,omitempty"`
	Body       *bodyConfig  `json:"body,omitempty"`
}

type itemsConfig struct {
	Enabled       bool   `json:"enabled"`
	ItemSelector  string `json:"item_selector,omitempty"`
	TitleSelector string `json:"title_selector,omitempty"`
	DateSelector  string `json:"date_selector,omitempty"`
}

type bodyConfig struct {
	Enabled       bool     `json:"enabled"`
	BodySelectors []string `json:"body_selectors,omitempty"`
	Format        string   `json:"format,omitempty"`
}

// captureResponse mirrors the pagegrab API response model.
type captureResponse struct {
	Meta  map[string]*string `json:"meta"`
	Items *[]struct {
		Title *string  `json:"title"`
		Links []string `json:"links"`
		Date  *string  `json:"date"`
	} `json:"items"`
	Body *struct {
		Title []selectorResult `json:"title"`
		Body  []selectorResult `json:"body"`
		Date  []selectorResult `json:"date"`
	} `json:"body"`
	Screenshot *struct {
		Size   string `json:"size"`
		Base64 string `json:"base64"`
	} `json:"screenshot"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type selectorResult struct {
	Selector *string `json:"selector"`
	Content  *string `json:"content"`
}

func main() {
	apiURL := os.Getenv("PAGEGRAB_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8000"
	}
	apiKey := os.Getenv("PAGEGRAB_API_KEY")

	s := server.NewMCPServer(
		"pagegrab",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	capturePageTool := mcp.NewTool("capture_page",
		mcp.WithDescription("Load a web page in a headless browser and extract its metadata, a repeated list pattern, or body content by CSS selectors. Optionally captures a screenshot."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to capture"),
		),
		mcp.WithString("engine",
			mcp.Description("Browser engine: 'chromium' (default), 'firefox' or 'webkit'"),
			mcp.Enum("chromium", "firefox", "webkit"),
		),
		mcp.WithBoolean("screenshot",
			mcp.Description("Capture a screenshot of the final page state"),
		),
		mcp.WithString("item_selector",
			mcp.Description("CSS selector for repeated list items; enables list extraction"),
		),
		mcp.WithString("title_selector",
			mcp.Description("CSS selector for the title inside each list item"),
		),
		mcp.WithString("date_selector",
			mcp.Description("CSS selector for the date inside each list item"),
		),
		mcp.WithArray("body_selectors",
			mcp.Description("CSS selectors for body content; enables detail-page extraction. An empty list returns the full page."),
		),
		mcp.WithString("format",
			mcp.Description("Full-page fallback format: 'html' (default), 'markdown' or 'text'"),
			mcp.Enum("html", "markdown", "text"),
		),
	)

	s.AddTool(capturePageTool, handleCapturePage(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleCapturePage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := captureRequest{
			URL:        url,
			Engine:     request.GetString("engine", ""),
			Screenshot: request.GetBool("screenshot", false),
		}

		if itemSelector := request.GetString("item_selector", ""); itemSelector != "" {
			reqBody.Items = &itemsConfig{
				Enabled:       true,
				ItemSelector:  itemSelector,
				TitleSelector: request.GetString("title_selector", ""),
				DateSelector:  request.GetString("date_selector", ""),
			}
		}

		if selectors, err := request.RequireStringSlice("body_selectors"); err == nil {
			if reqBody.Items != nil {
				return mcp.NewToolResultError("item_selector and body_selectors cannot both be set"), nil
			}
			reqBody.Body = &bodyConfig{
				Enabled:       true,
				BodySelectors: selectors,
				Format:        request.GetString("format", ""),
			}
		}

		body, err := json.Marshal(reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/capture", bytes.NewReader(body))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("API request failed: %v", err)), nil
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to read response: %v", err)), nil
		}

		var capResp captureResponse
		if err := json.Unmarshal(respBody, &capResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if capResp.Error != nil {
			return mcp.NewToolResultError(fmt.Sprintf("[%s] %s", capResp.Error.Code, capResp.Error.Message)), nil
		}

		return mcp.NewToolResultText(formatResult(&capResp)), nil
	}
}

// formatResult renders a capture response as readable text for the tool
// caller, screenshot data elided down to its size.
func formatResult(r *captureResponse) string {
	var sb strings.Builder

	if len(r.Meta) > 0 {
		sb.WriteString("Meta:\n")
		for _, key := range []string{"title", "description", "keywords"} {
			if v, ok := r.Meta[key]; ok && v != nil {
				sb.WriteString(fmt.Sprintf("  %s: %s\n", key, *v))
			}
		}
		sb.WriteString("\n")
	}

	if r.Items != nil {
		sb.WriteString(fmt.Sprintf("Items (%d):\n", len(*r.Items)))
		for i, item := range *r.Items {
			title := ""
			if item.Title != nil {
				title = *item.Title
			}
			sb.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, title))
			for _, link := range item.Links {
				if link != "" {
					sb.WriteString(fmt.Sprintf("      %s\n", link))
				}
			}
			if item.Date != nil {
				sb.WriteString(fmt.Sprintf("      date: %s\n", *item.Date))
			}
		}
		sb.WriteString("\n")
	}

	if r.Body != nil {
		writeSection := func(name string, results []selectorResult) {
			if len(results) == 0 {
				return
			}
			sb.WriteString(name + ":\n")
			for _, res := range results {
				selector := "(page)"
				if res.Selector != nil {
					selector = *res.Selector
				}
				if res.Content == nil {
					sb.WriteString(fmt.Sprintf("  %s: <timed out>\n", selector))
				} else {
					sb.WriteString(fmt.Sprintf("  %s: %s\n", selector, *res.Content))
				}
			}
		}
		writeSection("Title", r.Body.Title)
		writeSection("Body", r.Body.Body)
		writeSection("Date", r.Body.Date)
		sb.WriteString("\n")
	}

	if r.Screenshot != nil {
		sb.WriteString(fmt.Sprintf("Screenshot: %s (base64 elided)\n", r.Screenshot.Size))
	}

	if sb.Len() == 0 {
		return "No content extracted."
	}
	return sb.String()
}
