package gateway

import (
	"log/slog"
	"net/http"
	"strings"

	"coursecloud/internal/platform/middleware"
	dErrors "coursecloud/pkg/domain-errors"
	"coursecloud/pkg/platform/httputil"
	"coursecloud/pkg/requestcontext"
)

// PublicPrefixes are reachable without a bearer token.
var PublicPrefixes = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/actuator/health",
	"/health",
}

// TokenValidator validates a bearer token and returns the caller identity.
type TokenValidator interface {
	ValidateIdentity(token string) (requestcontext.Identity, error)
}

// Authenticate enforces bearer tokens outside the public prefixes.
// Identity headers supplied by the client are always discarded; on a valid
// token they are replaced with the token's claims.
func Authenticate(validator TokenValidator, public []string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Header.Del(middleware.HeaderUserID)
			r.Header.Del(middleware.HeaderUsername)
			r.Header.Del(middleware.HeaderUserRole)

			if isPublic(r.URL.Path, public) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.WarnContext(ctx, "missing bearer token",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or malformed authorization header"))
				return
			}

			identity, err := validator.ValidateIdentity(token)
			if err != nil {
				logger.WarnContext(ctx, "token rejected",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"error", err,
				)
				if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					err = dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
				}
				httputil.WriteError(w, err)
				return
			}

			r.Header.Set(middleware.HeaderUserID, identity.UserID)
			r.Header.Set(middleware.HeaderUsername, identity.Username)
			r.Header.Set(middleware.HeaderUserRole, identity.Role)
			next.ServeHTTP(w, r.WithContext(requestcontext.WithIdentity(ctx, identity)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func isPublic(path string, public []string) bool {
	for _, prefix := range public {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches whole path segments, so "/healthz" does not match
// "/health".
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/' || strings.HasSuffix(prefix, "/")
}
