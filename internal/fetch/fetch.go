// Package fetch downloads toolkit modules from the GitHub sources named in
// the configuration.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/go-resty/resty/v2"

	"github.com/tkutils/toolkit/internal/config"
	"github.com/tkutils/toolkit/internal/logger"
)

// ErrExists is returned when a target exists and replacing is off.
var ErrExists = errors.New("file exists")

// HTTPError reports a download answered with a non-success status.
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("downloading %s: status %d", e.URL, e.Status)
}

// Client downloads files over HTTP.
type Client struct {
	http    *resty.Client
	rawBase string
	log     *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.http.SetRetryCount(n)
	}
}

// WithRawBase replaces the raw contents host in module URLs, for mirrors.
func WithRawBase(base string) Option {
	return func(c *Client) {
		c.rawBase = strings.TrimRight(base, "/")
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a download client.
func New(opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(200 * time.Millisecond),
		log: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download fetches url into path, creating parent directories. An existing
// file is an error unless replace is set. The file is written to a
// temporary name first, so a failed download leaves path untouched.
func (c *Client) Download(ctx context.Context, url, path string, replace bool) error {
	if !replace {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if resp.IsError() {
		return &HTTPError{URL: url, Status: resp.StatusCode()}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(resp.Body()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	c.log.Debug().Str("url", url).Str("path", path).Int("bytes", len(resp.Body())).Msg("downloaded")
	return nil
}

// Fetch downloads every module of src below dest and returns the written
// paths. Module names may contain directories but cannot escape dest.
// It stops at the first failure.
func (c *Client) Fetch(ctx context.Context, src config.GithubSource, dest string, replace bool) ([]string, error) {
	written := make([]string, 0, len(src.Modules))
	for _, module := range src.Modules {
		target, err := securejoin.SecureJoin(dest, module)
		if err != nil {
			return written, fmt.Errorf("module %s: %w", module, err)
		}
		if err := c.Download(ctx, c.moduleURL(src, module), target, replace); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}

func (c *Client) moduleURL(src config.GithubSource, module string) string {
	u := src.ModuleURL(module)
	if c.rawBase == "" {
		return u
	}
	return c.rawBase + strings.TrimPrefix(u, config.RawContentsHost)
}
