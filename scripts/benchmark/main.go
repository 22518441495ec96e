package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// CLI flags
var (
	apiURL   = flag.String("api-url", "http://localhost:8080", "FAQForge API base URL")
	apiKey   = flag.String("api-key", "", "API key for authenticated requests")
	runs     = flag.Int("runs", 3, "Number of runs per URL for averaging")
	generate = flag.Bool("generate", false, "Benchmark full FAQ generation instead of extraction only (spends LLM tokens)")
	output   = flag.String("output", "benchmark-results.json", "JSON output file path")
)

// Test URLs covering different page shapes.
var testURLs = []struct {
	Label string
	URL   string
}{
	{"Static", "https://example.com"},
	{"Blog", "https://go.dev/blog/go1.21"},
	{"Docs", "https://go.dev/doc/effective_go"},
	{"News", "https://www.bbc.com/news"},
	{"Complex", "https://github.com/PuerkitoBio/goquery"},
}

// --- Request / Response types (mirrors models package) ---

type extractBenchRequest struct {
	URL string `json:"url"`
}

type generateBenchRequest struct {
	URL     string `json:"url"`
	Refresh bool   `json:"refresh"`
}

type timingInfo struct {
	TotalMs     int64 `json:"total_ms"`
	FetchMs     int64 `json:"fetch_ms"`
	SynthesisMs int64 `json:"synthesis_ms"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type documentInfo struct {
	Title       string   `json:"title"`
	Paragraphs  []string `json:"paragraphs"`
	CleanedText string   `json:"cleaned_text"`
	Metadata    struct {
		TokenEstimate int `json:"token_estimate"`
	} `json:"metadata"`
}

type extractBenchResponse struct {
	Success  bool          `json:"success"`
	Document *documentInfo `json:"document"`
	Timing   timingInfo    `json:"timing"`
	Error    *errorDetail  `json:"error,omitempty"`
}

type generateBenchResponse struct {
	Success bool         `json:"success"`
	Count   int          `json:"count"`
	Timing  timingInfo   `json:"timing"`
	Error   *errorDetail `json:"error,omitempty"`
}

// --- Benchmark result types ---

type runResult struct {
	Run           int    `json:"run"`
	TotalMs       int64  `json:"total_ms"`
	FetchMs       int64  `json:"fetch_ms"`
	SynthesisMs   int64  `json:"synthesis_ms,omitempty"`
	TokenEstimate int    `json:"token_estimate,omitempty"`
	Paragraphs    int    `json:"paragraphs,omitempty"`
	ContentLength int    `json:"content_length,omitempty"`
	FAQCount      int    `json:"faq_count,omitempty"`
	HasTitle      bool   `json:"has_title"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

type urlAverages struct {
	TotalMs       float64 `json:"total_ms"`
	FetchMs       float64 `json:"fetch_ms"`
	SynthesisMs   float64 `json:"synthesis_ms"`
	ContentLength float64 `json:"content_length"`
}

type urlResult struct {
	URL      string       `json:"url"`
	Label    string       `json:"label"`
	Runs     []runResult  `json:"runs"`
	Averages *urlAverages `json:"averages,omitempty"`
}

type benchmarkReport struct {
	Timestamp  string      `json:"timestamp"`
	APIURL     string      `json:"api_url"`
	Mode       string      `json:"mode"`
	RunsPerURL int         `json:"runs_per_url"`
	Results    []urlResult `json:"results"`
}

func main() {
	flag.Parse()

	mode := "extract"
	if *generate {
		mode = "generate"
	}

	fmt.Println("=== FAQForge Benchmark Suite ===")
	fmt.Printf("API URL:   %s\n", *apiURL)
	fmt.Printf("Mode:      %s\n", mode)
	fmt.Printf("Runs/URL:  %d\n", *runs)
	fmt.Printf("Output:    %s\n", *output)
	fmt.Println()

	// Quick connectivity check.
	if err := checkAPI(*apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot reach API at %s: %v\n", *apiURL, err)
		fmt.Fprintf(os.Stderr, "Make sure FAQForge is running\n")
		os.Exit(1)
	}

	report := benchmarkReport{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		APIURL:     *apiURL,
		Mode:       mode,
		RunsPerURL: *runs,
	}

	for _, t := range testURLs {
		fmt.Printf("Benchmarking [%s] %s ...\n", t.Label, t.URL)
		ur := urlResult{URL: t.URL, Label: t.Label}

		for i := 1; i <= *runs; i++ {
			fmt.Printf("  Run %d/%d ... ", i, *runs)
			var rr runResult
			if *generate {
				rr = benchmarkGenerate(t.URL, i)
			} else {
				rr = benchmarkExtract(t.URL, i)
			}
			if rr.Success {
				fmt.Printf("OK  %dms\n", rr.TotalMs)
			} else {
				fmt.Printf("FAILED: %s\n", rr.Error)
			}
			ur.Runs = append(ur.Runs, rr)
		}

		ur.Averages = computeAverages(ur.Runs)
		report.Results = append(report.Results, ur)
		fmt.Println()
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

func apiPost(path string, payload interface{}, timeout time.Duration, out interface{}) error {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequest("POST", *apiURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if *apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+*apiKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode error: %w", err)
	}
	return nil
}

func benchmarkExtract(url string, run int) runResult {
	rr := runResult{Run: run}

	var er extractBenchResponse
	if err := apiPost("/api/v1/extract", extractBenchRequest{URL: url}, 90*time.Second, &er); err != nil {
		rr.Error = err.Error()
		return rr
	}

	rr.Success = er.Success
	rr.TotalMs = er.Timing.TotalMs
	rr.FetchMs = er.Timing.FetchMs
	if er.Document != nil {
		rr.TokenEstimate = er.Document.Metadata.TokenEstimate
		rr.Paragraphs = len(er.Document.Paragraphs)
		rr.ContentLength = len(er.Document.CleanedText)
		rr.HasTitle = er.Document.Title != ""
	}
	if er.Error != nil {
		rr.Error = er.Error.Message
	}
	return rr
}

func benchmarkGenerate(url string, run int) runResult {
	rr := runResult{Run: run}

	// Refresh so every run pays the full pipeline cost.
	var gr generateBenchResponse
	if err := apiPost("/api/v1/generate", generateBenchRequest{URL: url, Refresh: true}, 300*time.Second, &gr); err != nil {
		rr.Error = err.Error()
		return rr
	}

	rr.Success = gr.Success
	rr.TotalMs = gr.Timing.TotalMs
	rr.FetchMs = gr.Timing.FetchMs
	rr.SynthesisMs = gr.Timing.SynthesisMs
	rr.FAQCount = gr.Count
	if gr.Error != nil {
		rr.Error = gr.Error.Message
	}
	return rr
}

func computeAverages(runs []runResult) *urlAverages {
	var successCount int
	var avg urlAverages

	for _, r := range runs {
		if !r.Success {
			continue
		}
		successCount++
		avg.TotalMs += float64(r.TotalMs)
		avg.FetchMs += float64(r.FetchMs)
		avg.SynthesisMs += float64(r.SynthesisMs)
		avg.ContentLength += float64(r.ContentLength)
	}

	if successCount == 0 {
		return nil
	}

	n := float64(successCount)
	avg.TotalMs /= n
	avg.FetchMs /= n
	avg.SynthesisMs /= n
	avg.ContentLength /= n
	return &avg
}

func printTable(results []urlResult) {
	fmt.Println(strings.Repeat("─", 85))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "URL\tAvg Latency\tAvg Fetch\tAvg Synthesis\tContent Len\n")
	fmt.Fprintf(w, "───\t───────────\t─────────\t─────────────\t───────────\n")

	for _, r := range results {
		if r.Averages == nil {
			fmt.Fprintf(w, "%s\tFAILED\t-\t-\t-\n", truncateURL(r.URL, 40))
			continue
		}

		fmt.Fprintf(w, "%s\t%dms\t%dms\t%dms\t%s\n",
			truncateURL(r.URL, 40),
			int64(r.Averages.TotalMs),
			int64(r.Averages.FetchMs),
			int64(r.Averages.SynthesisMs),
			formatInt(int(r.Averages.ContentLength)),
		)
	}

	w.Flush()
	fmt.Println(strings.Repeat("─", 85))
}

func truncateURL(u string, max int) string {
	if len(u) <= max {
		return u
	}
	return u[:max-3] + "..."
}

func formatInt(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

func writeJSON(path string, report benchmarkReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
