package styles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTPImporter fetches library styles from GET {BaseURL}/styles/{key}.
type HTTPImporter struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPImporter creates an importer for the library at baseURL.
func NewHTTPImporter(baseURL string) *HTTPImporter {
	return &HTTPImporter{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  http.DefaultClient,
	}
}

// ImportStyleByKey implements Importer. A 404 yields (nil, nil).
func (h *HTTPImporter) ImportStyleByKey(ctx context.Context, key string) (*Style, error) {
	endpoint := h.BaseURL + "/styles/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("style request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("style library returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var style Style
	if err := json.NewDecoder(resp.Body).Decode(&style); err != nil {
		return nil, fmt.Errorf("failed to decode style %s: %w", key, err)
	}
	if style.Key == "" {
		style.Key = key
	}
	return &style, nil
}
