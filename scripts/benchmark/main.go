// Benchmark drives a running pagegrab instance through its capture modes
// and reports client-side latency per engine and mode.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL  = flag.String("api-url", "http://localhost:8000", "pagegrab API base URL")
	apiKey  = flag.String("api-key", "", "API key for authenticated requests")
	runs    = flag.Int("runs", 3, "Number of runs per scenario for averaging")
	engines = flag.String("engines", "chromium", "Comma-separated engine variants to benchmark")
	output  = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// Scenarios covering the three extraction modes.
var scenarios = []struct {
	Label   string
	Request map[string]any
}{
	{"Meta only", map[string]any{
		"url": "https://example.com",
	}},
	{"Items", map[string]any{
		"url": "https://news.ycombinator.com",
		"items": map[string]any{
			"enabled":        true,
			"item_selector":  ".athing",
			"title_selector": ".titleline",
		},
	}},
	{"Body fallback", map[string]any{
		"url": "https://go.dev/doc/effective_go",
		"body": map[string]any{
			"enabled": true,
			"format":  "markdown",
		},
	}},
	{"Screenshot", map[string]any{
		"url":        "https://example.com",
		"screenshot": true,
	}},
}

type captureResponse struct {
	Meta  map[string]*string `json:"meta"`
	Items *[]json.RawMessage `json:"items"`
	Body  *json.RawMessage   `json:"body"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type runResult struct {
	Run       int    `json:"run"`
	LatencyMs int64  `json:"latency_ms"`
	BodyBytes int    `json:"body_bytes"`
	ItemCount int    `json:"item_count"`
	MetaKeys  int    `json:"meta_keys"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

type scenarioResult struct {
	Label        string      `json:"label"`
	Engine       string      `json:"engine"`
	Runs         []runResult `json:"runs"`
	AvgLatencyMs float64     `json:"avg_latency_ms"`
}

type benchmarkReport struct {
	Timestamp   string           `json:"timestamp"`
	APIURL      string           `json:"api_url"`
	RunsPerCase int              `json:"runs_per_case"`
	Results     []scenarioResult `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== pagegrab Benchmark Suite ===")
	fmt.Printf("API URL:   %s\n", *apiURL)
	fmt.Printf("Engines:   %s\n", *engines)
	fmt.Printf("Runs/case: %d\n", *runs)
	fmt.Println()

	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure pagegrab is running (e.g. make run)\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		APIURL:      *apiURL,
		RunsPerCase: *runs,
	}

	for _, engine := range strings.Split(*engines, ",") {
		engine = strings.TrimSpace(engine)
		if engine == "" {
			continue
		}
		for _, s := range scenarios {
			fmt.Printf("Benchmarking [%s / %s] ...\n", engine, s.Label)
			sr := scenarioResult{Label: s.Label, Engine: engine}

			for i := 1; i <= *runs; i++ {
				fmt.Printf("  Run %d/%d ... ", i, *runs)
				rr := benchmarkScenario(engine, s.Request, i)
				if rr.Success {
					fmt.Printf("OK  %dms\n", rr.LatencyMs)
				} else {
					fmt.Printf("FAILED: %s\n", rr.Error)
				}
				sr.Runs = append(sr.Runs, rr)
			}

			sr.AvgLatencyMs = averageLatency(sr.Runs)
			report.Results = append(report.Results, sr)
			fmt.Println()
		}
	}

	printTable(report.Results)

	if err := writeJSON(*output, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing JSON output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nDetailed results written to %s\n", *output)
}

func checkAPI(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/api/v1/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func benchmarkScenario(engine string, request map[string]any, run int) runResult {
	rr := runResult{Run: run}

	// Copy so the engine override does not leak across runs.
	payload := make(map[string]any, len(request)+1)
	for k, v := range request {
		payload[k] = v
	}
	payload["engine"] = engine

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		rr.Error = fmt.Sprintf("marshal error: %v", err)
		return rr
	}

	req, err := http.NewRequest("POST", *apiURL+"/api/v1/capture", bytes.NewReader(bodyBytes))
	if err != nil {
		rr.Error = fmt.Sprintf("request error: %v", err)
		return rr
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	client := &http.Client{Timeout: 120 * time.Second}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		rr.Error = fmt.Sprintf("request failed: %v", err)
		return rr
	}
	defer resp.Body.Close()
	rr.LatencyMs = time.Since(start).Milliseconds()

	var buf bytes.Buffer
	var cr captureResponse
	if err := json.NewDecoder(io.TeeReader(resp.Body, &buf)).Decode(&cr); err != nil {
		rr.Error = fmt.Sprintf("decode error: %v", err)
		return rr
	}
	rr.BodyBytes = buf.Len()
	rr.MetaKeys = len(cr.Meta)
	if cr.Items != nil {
		rr.ItemCount = len(*cr.Items)
	}

	if cr.Error != nil {
		rr.Error = fmt.Sprintf("[%s] %s", cr.Error.Code, cr.Error.Message)
		return rr
	}
	rr.Success = resp.StatusCode == http.StatusOK
	if !rr.Success {
		rr.Error = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return rr
}

func averageLatency(runs []runResult) float64 {
	var sum float64
	var count int
	for _, r := range runs {
		if r.Success {
			sum += float64(r.LatencyMs)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func printTable(results []scenarioResult) {
	fmt.Println(strings.Repeat("─", 70))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Engine\tScenario\tAvg Latency\tSuccess\n")
	fmt.Fprintf(w, "──────\t────────\t───────────\t───────\n")

	for _, r := range results {
		success := 0
		for _, run := range r.Runs {
			if run.Success {
				success++
			}
		}
		latency := "-"
		if r.AvgLatencyMs > 0 {
			latency = fmt.Sprintf("%dms", int64(r.AvgLatencyMs))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n", r.Engine, r.Label, latency, success, len(r.Runs))
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 70))
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
