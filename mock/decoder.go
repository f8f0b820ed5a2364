package mock

import (
	"context"

	"github.com/fwojciec/jsonextract"
)

// Compile-time interface verification.
var (
	_ jsonextract.Decoder = (*Decoder)(nil)
	_ jsonextract.Parser  = (*Parser)(nil)
)

// Decoder is a mock implementation of jsonextract.Decoder.
type Decoder struct {
	DecodeFn func(ctx context.Context, f *jsonextract.File) (string, error)
}

func (d *Decoder) Decode(ctx context.Context, f *jsonextract.File) (string, error) {
	return d.DecodeFn(ctx, f)
}

// Parser is a mock implementation of jsonextract.Parser.
type Parser struct {
	ParseFn func(text string) (jsonextract.Value, error)
}

func (p *Parser) Parse(text string) (jsonextract.Value, error) {
	return p.ParseFn(text)
}
