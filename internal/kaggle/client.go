// filepath: internal/kaggle/client.go
// Package kaggle implements a minimal client for the Kaggle dataset API.
package kaggle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/noahchrist/myCbbModel/internal/shared"
	"github.com/noahchrist/myCbbModel/internal/storage"
)

// DefaultBaseURL is the public Kaggle API endpoint.
const DefaultBaseURL = "https://www.kaggle.com/api/v1"

// Standard errors returned by the client.
var (
	ErrNotFound     = errors.New("dataset not found")
	ErrUnauthorized = errors.New("kaggle rejected the credentials")
	ErrTooLarge     = errors.New("archive exceeds the configured download size limit")
)

// ClientConfig holds the settings for the Kaggle API client.
type ClientConfig struct {
	BaseURL         string
	Credentials     Credentials
	Timeout         time.Duration
	MaxDownloadSize int64 // 0 means unlimited
}

// Client is a Kaggle dataset API client.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Kaggle API client.
func NewClient(config *ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		// Dataset archives can be large, allow a generous window.
		config.Timeout = 5 * time.Minute
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// NewClientWithHTTPClient creates a new Kaggle API client with a custom HTTP client.
func NewClientWithHTTPClient(config *ClientConfig, httpClient *http.Client) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// DownloadDataset fetches the dataset's archive and streams it to destPath.
// Returns the number of bytes written.
func (c *Client) DownloadDataset(ctx context.Context, ref shared.DatasetRef, destPath string) (int64, error) {
	url := fmt.Sprintf("%s/datasets/download/%s/%s", c.config.BaseURL, ref.Owner, ref.Slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.Credentials.Username, c.config.Credentials.Key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Continue below
	case http.StatusUnauthorized, http.StatusForbidden:
		return 0, ErrUnauthorized
	case http.StatusNotFound:
		return 0, ErrNotFound
	default:
		return 0, fmt.Errorf("unexpected status %d downloading %s", resp.StatusCode, ref)
	}

	limit := c.config.MaxDownloadSize
	if limit > 0 && resp.ContentLength > limit {
		return 0, fmt.Errorf("%w: %d bytes announced, limit %d", ErrTooLarge, resp.ContentLength, limit)
	}

	body := resp.Body
	if limit > 0 {
		// Read one extra byte so an over-limit stream is detectable even
		// when the server does not announce a Content-Length.
		body = io.NopCloser(io.LimitReader(resp.Body, limit+1))
	}

	written, err := storage.SaveFile(body, destPath)
	if err != nil {
		os.Remove(destPath)
		return 0, err
	}
	if limit > 0 && written > limit {
		os.Remove(destPath)
		return 0, fmt.Errorf("%w: limit %d", ErrTooLarge, limit)
	}

	return written, nil
}
