// Package source acquires the raw activity CSV from a local file or an
// HTTP endpoint. It only produces bytes; parsing and caching happen
// elsewhere.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/bmoura/tempotrack/internal/util"
)

const fetchTimeout = 30 * time.Second

// Source provides the raw CSV snapshot bytes.
type Source interface {
	// ID identifies the source for cache keying and logging.
	ID() string
	// Load reads the complete raw snapshot.
	Load(ctx context.Context) ([]byte, error)
	// LocalPath returns the file path and true when the source is a
	// watchable local file.
	LocalPath() (string, bool)
}

// New returns a FileSource for plain paths and an HTTPSource for
// http(s) URLs.
func New(spec string) Source {
	if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
		return &HTTPSource{url: spec, client: &http.Client{Timeout: fetchTimeout}}
	}
	return &FileSource{path: spec}
}

// FileSource reads the snapshot from a local CSV file.
type FileSource struct {
	path string
}

func (s *FileSource) ID() string {
	return s.path
}

func (s *FileSource) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading source file %s: %w", s.path, err)
	}
	util.LogDebugf("Loaded %d bytes from %s", len(data), s.path)
	return data, nil
}

func (s *FileSource) LocalPath() (string, bool) {
	return s.path, true
}

// HTTPSource downloads the snapshot from a URL, retrying transient
// failures with exponential backoff and jitter.
type HTTPSource struct {
	url    string
	client *http.Client
}

func (s *HTTPSource) ID() string {
	return s.url
}

func (s *HTTPSource) LocalPath() (string, bool) {
	return "", false
}

func (s *HTTPSource) Load(ctx context.Context) ([]byte, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	var data []byte
	err := retry.Do(
		func() error {
			var fetchErr error
			data, fetchErr = s.fetchOnce(fetchCtx)
			if fetchErr != nil && !isTransient(fetchErr) {
				return retry.Unrecoverable(fetchErr)
			}
			return fetchErr
		},
		retry.Context(fetchCtx),
		retry.Attempts(5),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(300*time.Millisecond),
		retry.OnRetry(func(n uint, err error) {
			util.LogWarnf("Retrying source download (attempt %d): %v", n+1, err)
		}),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", s.url, err)
	}

	util.LogDebugf("Downloaded %d bytes from %s", len(data), s.url)
	return data, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.url)
	}
	return io.ReadAll(resp.Body)
}

// isTransient reports whether a fetch error is worth retrying. Network
// errors and server-side statuses are; client errors are not.
func isTransient(err error) bool {
	msg := err.Error()
	for _, status := range []string{"HTTP 429", "HTTP 500", "HTTP 502", "HTTP 503", "HTTP 504"} {
		if strings.Contains(msg, status) {
			return true
		}
	}
	return !strings.Contains(msg, "HTTP ")
}
