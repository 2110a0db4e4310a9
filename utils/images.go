package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var imageClient = &http.Client{Timeout: 30 * time.Second}

// FetchImage retrieves image bytes from an http(s) URL or decodes them from
// an inline data: reference.
func FetchImage(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "data:") {
		return DecodeDataURI(ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}

	resp, err := imageClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image, status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// EncodeDataURI embeds image bytes as an inline data reference.
func EncodeDataURI(data []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI extracts the raw bytes from a data: reference.
func DecodeDataURI(ref string) ([]byte, error) {
	idx := strings.Index(ref, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	return base64.StdEncoding.DecodeString(ref[idx+1:])
}
