package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

// ErrMissingBearer is passed to the error writer when the request carries no
// bearer token at all.
var ErrMissingBearer = errors.New("httpx: missing bearer token")

// Authenticator turns a raw bearer token into a context carrying the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (context.Context, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (context.Context, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (context.Context, error) {
	return f(ctx, token)
}

// ErrorWriter renders an authentication failure.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// AuthnMiddleware requires a valid bearer token on every request.
func AuthnMiddleware(a Authenticator, onErr ErrorWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				onErr(w, r, ErrMissingBearer)
				return
			}

			ctx, err := a.Authenticate(ctx, raw)
			if err != nil {
				log.Warn("bearer authentication failed", "err", err)
				onErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, raw, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// WriteBearerChallenge sets an RFC 6750 WWW-Authenticate header for an
// invalid or missing token.
func WriteBearerChallenge(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
}
