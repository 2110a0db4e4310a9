package tryon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ImageHost uploads raw image bytes somewhere network-retrievable and
// returns the public URL. Remote try-on backends want URLs, not payloads.
type ImageHost interface {
	Name() string
	Available() bool
	Upload(ctx context.Context, data []byte) (string, error)
}

var hostClient = &http.Client{Timeout: 30 * time.Second}

// ImgBBHost is the primary, keyed hosting backend.
type ImgBBHost struct {
	APIKey  string
	BaseURL string
}

func NewImgBBHost(apiKey string) *ImgBBHost {
	return &ImgBBHost{
		APIKey:  apiKey,
		BaseURL: "https://api.imgbb.com/1/upload",
	}
}

func (h *ImgBBHost) Name() string { return "imgbb" }

func (h *ImgBBHost) Available() bool { return h.APIKey != "" }

func (h *ImgBBHost) Upload(ctx context.Context, data []byte) (string, error) {
	body, contentType, err := imageForm(data)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", h.BaseURL, h.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := hostClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imgbb upload failed, status: %d", resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("imgbb response malformed: %v", err)
	}
	if parsed.Data.URL == "" {
		return "", fmt.Errorf("imgbb response missing url")
	}
	return parsed.Data.URL, nil
}

// ImgurHost is the anonymous fallback host. Uploads carry a fixed client ID
// rather than a per-user credential.
type ImgurHost struct {
	ClientID string
	BaseURL  string
}

func NewImgurHost(clientID string) *ImgurHost {
	return &ImgurHost{
		ClientID: clientID,
		BaseURL:  "https://api.imgur.com/3/image",
	}
}

func (h *ImgurHost) Name() string { return "imgur" }

func (h *ImgurHost) Available() bool { return h.ClientID != "" }

func (h *ImgurHost) Upload(ctx context.Context, data []byte) (string, error) {
	body, contentType, err := imageForm(data)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Client-ID "+h.ClientID)

	resp, err := hostClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("imgur upload failed, status: %d", resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			Link string `json:"link"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("imgur response malformed: %v", err)
	}
	if parsed.Data.Link == "" {
		return "", fmt.Errorf("imgur response missing link")
	}
	return parsed.Data.Link, nil
}

func imageForm(data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", "image.jpg")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
