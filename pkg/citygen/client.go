package citygen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

// Client wraps the Gemini generateContent API for layout generation.
type Client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a layout generation client.
// Returns nil if apiKey is empty (generation disabled).
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey: apiKey,
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// request is the API request body.
type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// response is the API response body.
type response struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate asks the model for a city layout matching the prompt and
// returns the raw response text. Callers hand the result to
// ParseLayout.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("layout client not configured")
	}

	req := request{
		Contents: []content{
			{Parts: []part{{Text: buildPrompt(prompt)}}},
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("API call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}

	text := apiResp.Candidates[0].Content.Parts[0].Text
	slog.Debug("layout generated", "prompt_len", len(prompt), "response_len", len(text))
	return text, nil
}

func buildPrompt(prompt string) string {
	var b strings.Builder
	b.WriteString(prompt)
	fmt.Fprintf(&b, `

Generate a small city layout for a %dx%d grid. Return the layout as a JSON array of objects with the following format:
[
  { "type": "building_type", "x": x_coordinate, "y": y_coordinate }
]

Available building types:
`, GridSize, GridSize)
	for _, t := range allowedTypes {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	fmt.Fprintf(&b, `
Rules:
1. x and y coordinates must be between 0 and %d
2. Include a mix of different building types
3. Create a logical road network
4. Place parks and green spaces strategically
5. Include renewable energy sources
6. Keep the response concise and complete
7. Return exactly %d buildings (one for each grid cell)

Return only the JSON array, no other text or markdown formatting.`, GridSize-1, GridSize*GridSize)
	return b.String()
}
