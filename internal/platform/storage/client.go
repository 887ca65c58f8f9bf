// Package storage uploads receipt images to the platform's object-storage
// bucket and resolves their public URLs.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
}

func NewClient(baseURL, apiKey, bucket string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		bucket:  bucket,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores the object under the given key and returns the stored path.
// Keys are prefixed with the uploader's user ID by the caller so bucket
// policies can scope access per user.
func (c *Client) Upload(ctx context.Context, token, key, contentType string, body io.Reader) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, escapeKey(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		var payload struct {
			Message string `json:"message"`
		}

		_ = json.Unmarshal(raw, &payload)

		if payload.Message != "" {
			return "", fmt.Errorf("görsel yüklenemedi: %s", payload.Message)
		}

		return "", fmt.Errorf("görsel yüklenemedi: storage returned status %d", resp.StatusCode)
	}

	var result struct {
		Key string `json:"Key"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	// The service echoes "<bucket>/<key>"; callers store just the key.
	if path, ok := strings.CutPrefix(result.Key, c.bucket+"/"); ok {
		return path, nil
	}

	return key, nil
}

// PublicURL returns the browser-reachable URL for a stored object.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, escapeKey(key))
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}

	return strings.Join(parts, "/")
}
