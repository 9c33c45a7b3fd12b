// filepath: internal/kaggle/client_test.go
package kaggle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noahchrist/myCbbModel/internal/shared"
)

const (
	testUsername = "test-user"
	testKey      = "test-key"
)

func testRef() shared.DatasetRef {
	return shared.DatasetRef{Owner: "nateduncan", Slug: "2011current-ncaa-basketball-games"}
}

// mockDownloadServer validates the request the client sends and replies with
// the given status and body.
func mockDownloadServer(t *testing.T, status int, body []byte) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}

		expectedPath := "/datasets/download/nateduncan/2011current-ncaa-basketball-games"
		if r.URL.Path != expectedPath {
			t.Errorf("Expected path %s, got %s", expectedPath, r.URL.Path)
		}

		username, key, ok := r.BasicAuth()
		if !ok {
			t.Error("Expected basic auth credentials on the request")
		}
		if username != testUsername || key != testKey {
			t.Errorf("Unexpected credentials %s:%s", username, key)
		}

		w.WriteHeader(status)
		w.Write(body)
	}))
}

func newTestClient(baseURL string, maxSize int64) *Client {
	return NewClient(&ClientConfig{
		BaseURL:         baseURL,
		Credentials:     Credentials{Username: testUsername, Key: testKey},
		Timeout:         5 * time.Second,
		MaxDownloadSize: maxSize,
	})
}

func TestDownloadDataset_Success(t *testing.T) {
	archive := []byte("PK\x03\x04 fake archive payload")
	server := mockDownloadServer(t, http.StatusOK, archive)
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "games.zip")
	client := newTestClient(server.URL, 0)

	written, err := client.DownloadDataset(context.Background(), testRef(), destPath)

	require.NoError(t, err)
	assert.Equal(t, int64(len(archive)), written)

	saved, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, archive, saved)
}

func TestDownloadDataset_Unauthorized(t *testing.T) {
	server := mockDownloadServer(t, http.StatusUnauthorized, nil)
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "games.zip")
	client := newTestClient(server.URL, 0)

	_, err := client.DownloadDataset(context.Background(), testRef(), destPath)

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDownloadDataset_NotFound(t *testing.T) {
	server := mockDownloadServer(t, http.StatusNotFound, nil)
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "games.zip")
	client := newTestClient(server.URL, 0)

	_, err := client.DownloadDataset(context.Background(), testRef(), destPath)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadDataset_UnexpectedStatus(t *testing.T) {
	server := mockDownloadServer(t, http.StatusBadGateway, nil)
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "games.zip")
	client := newTestClient(server.URL, 0)

	_, err := client.DownloadDataset(context.Background(), testRef(), destPath)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestDownloadDataset_AnnouncedSizeOverLimit(t *testing.T) {
	// Plain writes get an automatic Content-Length, which the client checks
	// before reading the body.
	archive := make([]byte, 100)
	server := mockDownloadServer(t, http.StatusOK, archive)
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "games.zip")
	client := newTestClient(server.URL, 10)

	_, err := client.DownloadDataset(context.Background(), testRef(), destPath)

	assert.ErrorIs(t, err, ErrTooLarge)

	_, statErr := os.Stat(destPath)
	assert.True(t, os.IsNotExist(statErr), "No partial file should remain")
}

func TestDownloadDataset_StreamedSizeOverLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flushing before writing forces chunked encoding so the client
		// cannot reject the download up front.
		w.WriteHeader(http.StatusOK)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		w.Write(make([]byte, 100))
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "games.zip")
	client := newTestClient(server.URL, 10)

	_, err := client.DownloadDataset(context.Background(), testRef(), destPath)

	assert.ErrorIs(t, err, ErrTooLarge)

	_, statErr := os.Stat(destPath)
	assert.True(t, os.IsNotExist(statErr), "No partial file should remain")
}

func TestDownloadDataset_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "games.zip")
	client := newTestClient(server.URL, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := client.DownloadDataset(ctx, testRef(), destPath)

	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(&ClientConfig{})

	assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
	assert.Equal(t, 5*time.Minute, client.config.Timeout)
}

func TestNewClientWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 60 * time.Second}

	client := NewClientWithHTTPClient(&ClientConfig{}, custom)

	assert.Same(t, custom, client.httpClient)
	assert.Equal(t, DefaultBaseURL, client.config.BaseURL)
}
