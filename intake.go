package jsonextract

import (
	"context"
	"io"
	"strings"
)

// File is a document offered for extraction.
type File struct {
	// Name is the display name, usually the base name of the source.
	Name string

	// Type is the declared media type, e.g. "application/json".
	Type string

	// Open returns a fresh reader over the raw bytes.
	Open func() (io.ReadCloser, error)
}

// IsJSONType reports whether a declared media type announces JSON content.
// Any type mentioning "json" qualifies, so vendor types such as
// "application/ld+json" are accepted.
func IsJSONType(mediaType string) bool {
	return strings.Contains(strings.ToLower(mediaType), "json")
}

// Decoder turns the raw bytes of a file into text.
type Decoder interface {
	Decode(ctx context.Context, f *File) (string, error)
}

// Parser parses the text of a single JSON document.
// Failures carry the parser's diagnostic as the error message.
type Parser interface {
	Parse(text string) (Value, error)
}

// Source resolves a location (a path, "-" for stdin, a URL) into a File.
type Source interface {
	Open(ctx context.Context, location string) (*File, error)
}

// Saver persists formatted text under a name derived from the source file
// and returns the path written.
type Saver interface {
	Save(ctx context.Context, sourceName, text string) (string, error)
}

// Clipboard places text on the system clipboard.
type Clipboard interface {
	Copy(ctx context.Context, text string) error
}
