package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"

	"github.com/google/uuid"
)

// ContextKey is the key type for values this package stores in a context.
type ContextKey string

const (
	// PrincipalEmailKey is the context key for the authenticated user's email.
	PrincipalEmailKey ContextKey = "principalEmail"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// WithPrincipalEmail stores the authenticated user's email in the context.
func WithPrincipalEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, PrincipalEmailKey, email)
}

// GetPrincipalEmail retrieves the authenticated user's email from the
// context. The second return value is false when no authentication
// middleware ran for this request.
func GetPrincipalEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(PrincipalEmailKey).(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// SetTraceID adds a trace ID to the context for correlating logs and error
// responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID creates a random trace ID for request tracking.
// Returns a 32-character hex string. If crypto/rand fails it falls back to a
// UUID so the ID is never static.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)
	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"fallback", "uuid")
		return uuid.NewString()
	}
	return hex.EncodeToString(b)
}
