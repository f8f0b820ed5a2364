// Package text decodes raw file bytes into UTF-8 text using
// golang.org/x/text.
package text

import (
	"context"
	"io"
	"strings"

	"github.com/fwojciec/jsonextract"
	"golang.org/x/text/encoding/unicode"
)

// DefaultMaxBytes bounds how much of a file is decoded.
const DefaultMaxBytes int64 = 64 << 20

// Compile-time interface verification.
var _ jsonextract.Decoder = (*Decoder)(nil)

// Decoder reads a file as UTF-8. A leading byte order mark is dropped and
// ill-formed sequences become U+FFFD.
type Decoder struct {
	maxBytes int64
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxBytes sets the largest file the decoder accepts.
func WithMaxBytes(n int64) Option {
	return func(d *Decoder) {
		d.maxBytes = n
	}
}

// NewDecoder creates a new Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads the whole file and returns its text.
func (d *Decoder) Decode(ctx context.Context, f *jsonextract.File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f == nil || f.Open == nil {
		return "", jsonextract.Errorf(jsonextract.EREAD, "file has no content")
	}

	rc, err := f.Open()
	if err != nil {
		return "", jsonextract.Errorf(jsonextract.EREAD, "open %s: %v", f.Name, err)
	}
	defer rc.Close()

	limited := &io.LimitedReader{R: rc, N: d.maxBytes + 1}
	r := unicode.UTF8BOM.NewDecoder().Reader(&contextReader{ctx: ctx, r: limited})

	var b strings.Builder
	if _, err := io.Copy(&b, r); err != nil {
		return "", jsonextract.Errorf(jsonextract.EREAD, "read %s: %v", f.Name, err)
	}
	if limited.N <= 0 {
		return "", jsonextract.Errorf(jsonextract.EREAD, "%s exceeds %d bytes", f.Name, d.maxBytes)
	}

	return b.String(), nil
}

// contextReader stops reading once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
