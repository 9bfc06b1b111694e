// Package gametext parses legacy game-data text formats: Quake-style
// map source (nested entity/brush/plane blocks) and the generic
// `key = value ;` block definition format with schema-bound fields.
//
// The format-specific packages mapsource and blockdef hold the full
// APIs; this package provides convenience entry points and type
// aliases.
package gametext

import (
	"log/slog"

	"github.com/quaketools/gametext/blockdef"
	"github.com/quaketools/gametext/mapsource"
)

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item iteration logging (tokens, planes, assignments).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = slog.Level(-8)

// ParseOption configures the parse entry points.
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) { c.logger = logger }
}

// ParseMap parses map source text into a document. The error list is
// empty exactly when the parse succeeded; on any error the document
// is nil.
func ParseMap(source []byte, opts ...ParseOption) (*MapDocument, []MapParseError) {
	cfg := applyOptions(opts)
	return mapsource.Parse(source, mapsource.WithLogger(cfg.logger))
}

// ParseDefs parses definition source text into out, a non-nil pointer
// to a schema struct. The result is populated best-effort; treat it
// as unreliable unless the returned error list is empty.
func ParseDefs(source []byte, out any, opts ...ParseOption) []DefParseError {
	cfg := applyOptions(opts)
	return blockdef.Parse(source, out, blockdef.WithLogger(cfg.logger))
}

func applyOptions(opts []ParseOption) parseConfig {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
