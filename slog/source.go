package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/jsonextract"
)

// Ensure LoggingSource implements jsonextract.Source.
var _ jsonextract.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging.
type LoggingSource struct {
	next   jsonextract.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next jsonextract.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Open delegates to the wrapped source and logs the declared type.
func (s *LoggingSource) Open(ctx context.Context, location string) (f *jsonextract.File, err error) {
	defer func(begin time.Time) {
		var mediaType string
		if f != nil {
			mediaType = f.Type
		}
		s.logger.Info("open",
			"location", location,
			"type", mediaType,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Open(ctx, location)
}
