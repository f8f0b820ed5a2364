// Package fs reads documents from the local filesystem and writes extracted
// text back to it.
package fs

import (
	"context"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/fwojciec/jsonextract"
)

// Stdin is the location that names standard input.
const Stdin = "-"

// DefaultStdinType is the media type declared for standard input unless
// overridden.
const DefaultStdinType = "application/json"

// Ensure Source implements jsonextract.Source at compile time.
var _ jsonextract.Source = (*Source)(nil)

// Source opens local files, and standard input for the "-" location.
// The declared media type of a file comes from its extension.
type Source struct {
	stdin io.Reader
}

// NewSource creates a new Source reading "-" from stdin.
func NewSource(stdin io.Reader) *Source {
	return &Source{stdin: stdin}
}

// Open stats the path and returns a File that opens it lazily.
func (s *Source) Open(ctx context.Context, location string) (*jsonextract.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if location == Stdin {
		if s.stdin == nil {
			return nil, jsonextract.Errorf(jsonextract.EINVALID, "standard input is not available")
		}
		return &jsonextract.File{
			Name: "stdin",
			Type: DefaultStdinType,
			Open: func() (io.ReadCloser, error) { return io.NopCloser(s.stdin), nil },
		}, nil
	}

	info, err := os.Stat(location)
	if errors.Is(err, os.ErrNotExist) {
		return nil, jsonextract.Errorf(jsonextract.ENOTFOUND, "file not found: %s", location)
	} else if err != nil {
		return nil, jsonextract.Errorf(jsonextract.EREAD, "failed to read file: %s", location)
	}
	if info.IsDir() {
		return nil, jsonextract.Errorf(jsonextract.EINVALID, "%s is a directory", location)
	}

	return &jsonextract.File{
		Name: filepath.Base(location),
		Type: mime.TypeByExtension(filepath.Ext(location)),
		Open: func() (io.ReadCloser, error) { return os.Open(location) },
	}, nil
}
