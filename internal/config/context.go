package config

import (
	"context"
	"log/slog"
)

type configKey struct{}

// loggerKey is used to store logger in context.
type loggerKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Loaded) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the configuration stored by WithConfig, falling
// back to the built-in defaults.
func FromContext(ctx context.Context) *Loaded {
	if c, ok := ctx.Value(configKey{}).(*Loaded); ok && c != nil {
		return c
	}
	return &Loaded{Config: &Config{
		Count:    DefaultCount,
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
		Progress: true,
	}}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
