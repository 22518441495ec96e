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

// generateRequest mirrors the FAQForge API request model.
type generateRequest struct {
	URL     string `json:"url"`
	Count   int    `json:"count,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// generateResponse mirrors the FAQForge API response model.
type generateResponse struct {
	Success   bool   `json:"success"`
	SourceURL string `json:"source_url"`
	Count     int    `json:"count"`
	Items     []struct {
		ID       string `json:"id"`
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Status   string `json:"status"`
	} `json:"items"`
	CacheStatus string `json:"cache_status"`
	Error       *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// extractRequest mirrors the FAQForge API request model.
type extractRequest struct {
	URL         string `json:"url"`
	Mode        string `json:"mode,omitempty"`
	CSSSelector string `json:"css_selector,omitempty"`
}

// extractResponse mirrors the FAQForge API response model.
type extractResponse struct {
	Success  bool `json:"success"`
	Document *struct {
		URL         string   `json:"url"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Paragraphs  []string `json:"paragraphs"`
		CleanedText string   `json:"cleaned_text"`
	} `json:"document"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func main() {
	apiURL := os.Getenv("FAQFORGE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("FAQFORGE_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "FAQFORGE_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"faqforge",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	generateTool := mcp.NewTool("generate_faqs",
		mcp.WithDescription("Fetch a web page, extract its readable content, and generate a set of FAQ question/answer pairs grounded in that content."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to generate FAQs from"),
		),
		mcp.WithNumber("count",
			mcp.Description("Desired number of FAQ items (5-10, default 5)"),
		),
		mcp.WithBoolean("refresh",
			mcp.Description("Bypass the page cache and re-fetch the source"),
		),
	)
	s.AddTool(generateTool, handleGenerateFAQs(apiURL, apiKey))

	extractTool := mcp.NewTool("extract_page",
		mcp.WithDescription("Fetch a web page and return its extracted title, description, and cleaned text without generating FAQs."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the web page to extract"),
		),
		mcp.WithString("mode",
			mcp.Description("Extraction mode: 'structured' (default, headings and paragraphs) or 'readability' (main-article extraction)"),
			mcp.Enum("structured", "readability"),
		),
		mcp.WithString("css_selector",
			mcp.Description("Optional CSS selector limiting extraction to matched elements"),
		),
	)
	s.AddTool(extractTool, handleExtractPage(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiPost sends a POST request to the FAQForge API and returns the response body.
func apiPost(ctx context.Context, client *http.Client, apiURL, apiKey, path string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func handleGenerateFAQs(apiURL, apiKey string) server.ToolHandlerFunc {
	// Generation includes LLM retries, give it room.
	client := &http.Client{Timeout: 300 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := generateRequest{
			URL:     url,
			Count:   request.GetInt("count", 0),
			Refresh: request.GetBool("refresh", false),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/generate", reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("generate request failed: %v", err)), nil
		}

		var genResp generateResponse
		if err := json.Unmarshal(respBody, &genResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !genResp.Success {
			errMsg := "generation failed"
			if genResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", genResp.Error.Code, genResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Generated %d FAQs from %s (cache: %s)\n", genResp.Count, genResp.SourceURL, genResp.CacheStatus))
		for i, item := range genResp.Items {
			sb.WriteString(fmt.Sprintf("\n%d. Q: %s\n   A: %s\n", i+1, item.Question, item.Answer))
		}

		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleExtractPage(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		url, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		reqBody := extractRequest{
			URL:         url,
			Mode:        request.GetString("mode", ""),
			CSSSelector: request.GetString("css_selector", ""),
		}

		respBody, err := apiPost(ctx, client, apiURL, apiKey, "/api/v1/extract", reqBody)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("extract request failed: %v", err)), nil
		}

		var extResp extractResponse
		if err := json.Unmarshal(respBody, &extResp); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse response: %v", err)), nil
		}

		if !extResp.Success || extResp.Document == nil {
			errMsg := "extraction failed"
			if extResp.Error != nil {
				errMsg = fmt.Sprintf("[%s] %s", extResp.Error.Code, extResp.Error.Message)
			}
			return mcp.NewToolResultError(errMsg), nil
		}

		doc := extResp.Document
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Title: %s\nSource: %s\n", doc.Title, doc.URL))
		if doc.Description != "" {
			sb.WriteString(fmt.Sprintf("Description: %s\n", doc.Description))
		}
		sb.WriteString("\n" + doc.CleanedText)

		return mcp.NewToolResultText(sb.String()), nil
	}
}
