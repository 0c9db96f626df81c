package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	crewIDKey    contextKey = "crew_id"
)

// WithRequestID adds an API request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithCrewID adds a crew ID to the context.
func WithCrewID(ctx context.Context, crewID string) context.Context {
	return context.WithValue(ctx, crewIDKey, crewID)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetCrewID retrieves the crew ID from the context.
// Returns empty string if not present.
func GetCrewID(ctx context.Context) string {
	if id, ok := ctx.Value(crewIDKey).(string); ok {
		return id
	}
	return ""
}
