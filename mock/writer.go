package mock

import (
	"context"

	"github.com/fwojciec/jsonextract"
)

// Compile-time interface verification.
var (
	_ jsonextract.Saver     = (*Saver)(nil)
	_ jsonextract.Clipboard = (*Clipboard)(nil)
)

// Saver is a mock implementation of jsonextract.Saver.
type Saver struct {
	SaveFn func(ctx context.Context, sourceName, text string) (string, error)
}

func (s *Saver) Save(ctx context.Context, sourceName, text string) (string, error) {
	return s.SaveFn(ctx, sourceName, text)
}

// Clipboard is a mock implementation of jsonextract.Clipboard.
type Clipboard struct {
	CopyFn func(ctx context.Context, text string) error
}

func (c *Clipboard) Copy(ctx context.Context, text string) error {
	return c.CopyFn(ctx, text)
}
