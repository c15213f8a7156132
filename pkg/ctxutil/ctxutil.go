// Package ctxutil carries request-scoped caller metadata through context.
package ctxutil

import (
	"context"
)

type ctxKey string

const (
	sourceIPKey  ctxKey = "source_ip"
	requestIDKey ctxKey = "request_id"
)

// WithSourceIP stores the caller's address for the audit trail.
func WithSourceIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, sourceIPKey, ip)
}

// SourceIPFromCtx returns the caller's address, or nil if unknown.
func SourceIPFromCtx(ctx context.Context) *string {
	ip, ok := ctx.Value(sourceIPKey).(string)
	if !ok || ip == "" {
		return nil
	}
	return &ip
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
