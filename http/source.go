// Package http fetches JSON documents over HTTP and serves the browser
// upload flow.
package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/jsonextract"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes bounds the size of a fetched document.
const DefaultMaxBytes int64 = 64 << 20

// Ensure Source implements jsonextract.Source at compile time.
var _ jsonextract.Source = (*Source)(nil)

// Source retrieves documents by URL. The declared media type of the
// resulting File is the response Content-Type.
type Source struct {
	client      *http.Client
	timeout     time.Duration
	maxBytes    int64
	retryDelays []time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithMaxBytes sets the largest response body accepted.
func WithMaxBytes(n int64) Option {
	return func(s *Source) {
		s.maxBytes = n
	}
}

// NewSource creates a new HTTP-based Source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		timeout:     DefaultFetchTimeout,
		maxBytes:    DefaultMaxBytes,
		retryDelays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Timeout: s.timeout,
	}

	return s
}

// IsURL reports whether location names an http or https resource.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open downloads the document at rawURL, retrying transient failures. The
// body is buffered so the File can be opened any number of times.
func (s *Source) Open(ctx context.Context, rawURL string) (*jsonextract.File, error) {
	return s.openWithRetry(ctx, rawURL, s.fetch)
}

func (s *Source) fetch(ctx context.Context, rawURL string) (*jsonextract.File, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, jsonextract.Errorf(jsonextract.EINVALID, "invalid URL: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, jsonextract.Errorf(jsonextract.EREAD, "fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, jsonextract.Errorf(jsonextract.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, jsonextract.Errorf(jsonextract.EREAD, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, jsonextract.Errorf(jsonextract.EREAD, "read %s: %v", rawURL, err)
	}
	if int64(len(body)) > s.maxBytes {
		return nil, jsonextract.Errorf(jsonextract.EREAD, "%s exceeds %d bytes", rawURL, s.maxBytes)
	}

	return &jsonextract.File{
		Name: fileName(u),
		Type: resp.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		},
	}, nil
}

// fileName picks a display name for a URL: the last path segment, or the
// host when the path is empty.
func fileName(u *url.URL) string {
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return u.Hostname()
	}
	return base
}
