package logger

import (
	"context"
	"unicode/utf8"
)

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every log record written with a context that carries them.
type LogFields struct {
	RequestID string
	Provider  string
	Component string // e.g. "generator", "a2a"
}

// WithLogFields merges fields into the context. Non-empty values win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := GetLogFields(ctx)
	if fields.RequestID != "" {
		merged.RequestID = fields.RequestID
	}
	if fields.Provider != "" {
		merged.Provider = fields.Provider
	}
	if fields.Component != "" {
		merged.Component = fields.Component
	}
	return context.WithValue(ctx, logFieldsKey, merged)
}

func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// Truncate shortens s to at most maxLen bytes without splitting a rune,
// appending "..." when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
