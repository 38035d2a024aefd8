package sumprep

import (
	"context"
	"log/slog"
)

// Tagger assigns part-of-speech tags to sentence text. Tags align with the
// tagger's own tokenization, which need not match package tokenizer's; the
// pipeline only inspects tag prefixes, never positions.
type Tagger interface {
	Tag(ctx context.Context, text string) ([]string, error)
}

// Option configures a Pipeline.
type Option func(*config)

type config struct {
	tagger   Tagger
	logger   *slog.Logger
	warnings bool
}

func defaultConfig() config {
	return config{
		logger:   slog.Default(),
		warnings: true,
	}
}

// WithTagger sets the part-of-speech tagger used to annotate sentences
// (default: none; verb checks then report false).
func WithTagger(t Tagger) Option {
	return func(c *config) {
		c.tagger = t
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithWarnings enables or disables tokenization warnings (default: enabled).
func WithWarnings(enabled bool) Option {
	return func(c *config) {
		c.warnings = enabled
	}
}
