package testutil

import (
	"net/http"
	"time"

	"coursecloud/pkg/requestcontext"
)

// WithIdentity attaches a gateway-asserted identity to the request context,
// as the identity middleware would for a proxied request.
func WithIdentity(req *http.Request, userID, username, role string) *http.Request {
	ctx := requestcontext.WithIdentity(req.Context(), requestcontext.Identity{
		UserID:   userID,
		Username: username,
		Role:     role,
	})
	return req.WithContext(ctx)
}

// WithRequestTime pins the request-scoped clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithRequestID sets the request ID normally assigned by middleware.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
