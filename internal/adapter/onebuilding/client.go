// Package onebuilding fetches typical-year weather archives from a
// climate.onebuilding.org directory index.
package onebuilding

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/couchcryptid/degree-hour-etl/internal/observability"
)

const (
	maxAttempts  = 3
	retryBackoff = 2 * time.Second
)

// Client lists and downloads weather archives from an HTML directory index.
type Client struct {
	httpClient *http.Client
	baseURL    string
	suffix     string
	backoff    time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a download client for the given index URL. Only files
// whose names end in suffix are considered.
func NewClient(baseURL, suffix string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		suffix:  suffix,
		backoff: retryBackoff,
		logger:  logger,
		metrics: metrics,
	}
}

// ListFiles fetches the directory index and returns the file names matching
// the configured suffix, in index order.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index error: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	var files []string
	for n := range doc.Descendants() {
		if n.Type != html.ElementNode || n.Data != "a" {
			continue
		}
		for _, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			href, err := url.PathUnescape(attr.Val)
			if err != nil {
				href = attr.Val
			}
			if strings.HasSuffix(href, c.suffix) {
				files = append(files, path.Base(href))
			}
		}
	}
	return files, nil
}

// DownloadAll fetches every listed file into destDir with bounded
// concurrency, skipping files already present. Individual failures are
// counted and logged; the first error is returned after all workers finish.
func (c *Client) DownloadAll(ctx context.Context, destDir string, concurrency int) error {
	files, err := c.ListFiles(ctx)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create weather dir: %w", err)
	}

	c.logger.Info("downloading weather files",
		"count", len(files), "dest", destDir, "concurrency", concurrency)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, name := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(name string) {
			defer wg.Done()
			defer func() { <-sem }()

			dest := filepath.Join(destDir, name)
			if _, err := os.Stat(dest); err == nil {
				c.logger.Debug("already downloaded", "file", name)
				return
			}

			if err := c.download(ctx, name, dest); err != nil {
				c.metrics.DownloadFailures.Inc()
				c.logger.Warn("download failed", "file", name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("download %s: %w", name, err)
				}
				mu.Unlock()
				return
			}
			c.metrics.FilesDownloaded.Inc()
		}(name)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	return firstErr
}

// download fetches one file with retries, writing through a temp file so a
// partial download never masquerades as a complete archive.
func (c *Client) download(ctx context.Context, name, dest string) error {
	fileURL := strings.TrimSuffix(c.baseURL, "/") + "/" + url.PathEscape(name)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(c.backoff * time.Duration(attempt-1)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		start := time.Now()
		lastErr = c.fetchToFile(ctx, fileURL, dest)
		if lastErr == nil {
			c.metrics.DownloadDuration.Observe(time.Since(start).Seconds())
			return nil
		}
		if ctx.Err() != nil {
			return lastErr
		}
		c.logger.Debug("retrying download", "file", name, "attempt", attempt, "error", lastErr)
	}
	return lastErr
}

func (c *Client) fetchToFile(ctx context.Context, fileURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close: %w", err)
	}
	return os.Rename(tmp, dest)
}
