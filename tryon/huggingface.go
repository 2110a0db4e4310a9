package tryon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HFClient drives the secondary backend, a hosted try-on space that answers
// synchronously. A key is optional on the free tier, so the provider is
// available as long as an endpoint is set.
type HFClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewHFClient(apiKey string) *HFClient {
	return &HFClient{
		APIKey:     apiKey,
		BaseURL:    "https://yisol-idm-vton.hf.space/api/tryon",
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (c *HFClient) Provider() Provider {
	return Provider{
		Name:      "huggingface",
		Available: func() bool { return c.BaseURL != "" },
		Invoke: func(ctx context.Context, humanRef, garmentRef string) (*Result, error) {
			url, err := c.Generate(ctx, humanRef, garmentRef)
			if err != nil {
				return nil, err
			}
			return &Result{ImageRef: url}, nil
		},
	}
}

// Generate posts both image references and expects the output in the
// immediate response body.
func (c *HFClient) Generate(ctx context.Context, humanRef, garmentRef string) (string, error) {
	payload := map[string]interface{}{
		"human":      humanRef,
		"garment":    garmentRef,
		"is_checked": true,
		"category":   "upper_body",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("huggingface: status %d", resp.StatusCode)
	}

	var parsed struct {
		Output json.RawMessage `json:"output"`
		Error  string          `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("huggingface: malformed response: %v", err)
	}
	if parsed.Error != "" {
		return "", fmt.Errorf("huggingface: %s", parsed.Error)
	}

	url, err := outputURL(parsed.Output)
	if err != nil {
		return "", fmt.Errorf("huggingface: %v", err)
	}
	return url, nil
}
