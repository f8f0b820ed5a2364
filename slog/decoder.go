// Package slog decorates jsonextract services with structured logging
// through log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jsonextract"
)

// Ensure LoggingDecoder implements jsonextract.Decoder.
var _ jsonextract.Decoder = (*LoggingDecoder)(nil)

// LoggingDecoder wraps a Decoder with logging.
type LoggingDecoder struct {
	next   jsonextract.Decoder
	logger *slog.Logger
}

// NewLoggingDecoder creates a new LoggingDecoder.
func NewLoggingDecoder(next jsonextract.Decoder, logger *slog.Logger) *LoggingDecoder {
	return &LoggingDecoder{next: next, logger: logger}
}

// Decode delegates to the wrapped decoder and logs the operation.
func (d *LoggingDecoder) Decode(ctx context.Context, f *jsonextract.File) (text string, err error) {
	defer func(begin time.Time) {
		d.logger.Info("decode",
			"file", f.Name,
			"type", f.Type,
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Decode(ctx, f)
}
