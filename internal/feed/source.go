package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Source describes where the vendor feed comes from. When URL is empty the
// local fallback file is used instead, so a run can always proceed offline.
type Source struct {
	URL        string
	Fallback   string
	HTTPClient *http.Client
}

// NewSource creates a feed source for a remote URL with a local fallback file.
func NewSource(url, fallback string) *Source {
	return &Source{
		URL:      url,
		Fallback: fallback,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Load returns the raw feed text. A configured remote URL that answers with a
// non-success status is a fatal error; the local fallback only fails when the
// file itself is unreadable.
func (s *Source) Load(ctx context.Context) (string, error) {
	if s.URL == "" {
		slog.Info("No feed URL configured, reading local feed file", "path", s.Fallback)
		data, err := os.ReadFile(s.Fallback)
		if err != nil {
			return "", fmt.Errorf("failed to read fallback feed file: %w", err)
		}
		return string(data), nil
	}

	slog.Info("Fetching feed", "url", s.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create feed request: %w", err)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("feed fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read feed body: %w", err)
	}

	return string(data), nil
}
