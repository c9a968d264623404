package logger

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader is the header used to propagate request IDs
const RequestIDHeader = "X-Request-ID"

// NewRequestID generates a new request ID
func NewRequestID() string {
	return uuid.New().String()
}

// WithRequestID stores the request ID in the context.
// An empty or malformed incoming ID is replaced with a fresh one.
func WithRequestID(ctx context.Context, requestID string) (context.Context, string) {
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = NewRequestID()
	}
	return context.WithValue(ctx, RequestIDKey, requestID), requestID
}
