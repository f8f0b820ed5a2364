package mock

import (
	"context"

	"github.com/fwojciec/jsonextract"
)

var _ jsonextract.Source = (*Source)(nil)

// Source is a mock implementation of jsonextract.Source.
type Source struct {
	OpenFn func(ctx context.Context, location string) (*jsonextract.File, error)
}

func (s *Source) Open(ctx context.Context, location string) (*jsonextract.File, error) {
	return s.OpenFn(ctx, location)
}
