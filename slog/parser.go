package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/jsonextract"
)

// Ensure LoggingParser implements jsonextract.Parser.
var _ jsonextract.Parser = (*LoggingParser)(nil)

// LoggingParser wraps a Parser with logging.
type LoggingParser struct {
	next   jsonextract.Parser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next jsonextract.Parser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the root kind.
func (p *LoggingParser) Parse(text string) (v jsonextract.Value, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse",
			"bytes", len(text),
			"kind", v.Kind(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(text)
}
