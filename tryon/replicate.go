package tryon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/proteuswear/storefront-api/config"
)

// ReplicateClient drives the primary try-on backend. Replicate predictions
// are asynchronous: creating one returns a job that must be polled until it
// settles.
type ReplicateClient struct {
	APIKey       string
	ModelVersion string
	BaseURL      string
	PollInterval time.Duration
	MaxPolls     int
	HTTPClient   *http.Client
}

func NewReplicateClient(apiKey, modelVersion string) *ReplicateClient {
	return &ReplicateClient{
		APIKey:       apiKey,
		ModelVersion: modelVersion,
		BaseURL:      "https://api.replicate.com/v1/predictions",
		PollInterval: 2 * time.Second,
		MaxPolls:     120,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Provider wraps the client as a chain entry.
func (c *ReplicateClient) Provider() Provider {
	return Provider{
		Name:      "replicate",
		Available: func() bool { return config.IsConfigured(c.APIKey) },
		Invoke: func(ctx context.Context, humanRef, garmentRef string) (*Result, error) {
			url, err := c.Generate(ctx, humanRef, garmentRef)
			if err != nil {
				return nil, err
			}
			return &Result{ImageRef: url}, nil
		},
	}
}

type prediction struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
	Detail string          `json:"detail"`
}

// Generate creates a prediction and polls it until it succeeds, fails or
// the attempt ceiling is hit. Returns the output image URL.
func (c *ReplicateClient) Generate(ctx context.Context, humanRef, garmentRef string) (string, error) {
	payload := map[string]interface{}{
		"version": c.ModelVersion,
		"input": map[string]interface{}{
			"human":      humanRef,
			"garment":    garmentRef,
			"is_checked": true,
			"category":   "upper_body",
		},
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
	req.Header.Set("Authorization", "Token "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var pred prediction
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error bodies carry a detail field when they are JSON at all.
		_ = json.NewDecoder(resp.Body).Decode(&pred)
		if pred.Detail != "" {
			return "", fmt.Errorf("replicate: %s", pred.Detail)
		}
		return "", fmt.Errorf("replicate: status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return "", fmt.Errorf("replicate: malformed prediction: %v", err)
	}

	if !predictionPending(pred.Status) {
		return c.settle(pred)
	}

	statusURL := fmt.Sprintf("%s/%s", c.BaseURL, pred.ID)
	err = poll(ctx, c.PollInterval, c.MaxPolls, func() (bool, error) {
		latest, err := c.fetchPrediction(ctx, statusURL)
		if err != nil {
			return false, err
		}
		pred = *latest
		return !predictionPending(pred.Status), nil
	})
	if err == ErrPollExhausted {
		return "", fmt.Errorf("replicate: prediction timed out")
	}
	if err != nil {
		return "", err
	}
	return c.settle(pred)
}

func (c *ReplicateClient) fetchPrediction(ctx context.Context, statusURL string) (*prediction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("replicate: status check failed: %d", resp.StatusCode)
	}

	var pred prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("replicate: malformed status body: %v", err)
	}
	return &pred, nil
}

func (c *ReplicateClient) settle(pred prediction) (string, error) {
	switch pred.Status {
	case "succeeded":
		return outputURL(pred.Output)
	case "failed", "canceled":
		if pred.Error != "" {
			return "", fmt.Errorf("replicate: prediction failed: %s", pred.Error)
		}
		return "", fmt.Errorf("replicate: prediction %s", pred.Status)
	default:
		return "", fmt.Errorf("replicate: unexpected terminal status %q", pred.Status)
	}
}

func predictionPending(status string) bool {
	return status == "starting" || status == "processing" || status == "queued"
}

// outputURL normalizes a prediction output, which is either a single URL or
// an array of them.
func outputURL(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("prediction succeeded without output")
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 && many[0] != "" {
		return many[0], nil
	}

	return "", fmt.Errorf("prediction output has unrecognized shape")
}
