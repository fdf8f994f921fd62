package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
	"github.com/aussiebroadwan/hdnotes/pkg/slogx"
)

// writeServiceError maps a service failure onto the wire error. Anything
// that is not a typed service error is logged and hidden behind
// server_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *authsdk.Error

	switch service.KindOf(err) {
	case service.KindValidation:
		apiErr = authsdk.ErrValidation
	case service.KindIdentityNotFound:
		apiErr = authsdk.ErrIdentityNotFound
	case service.KindIdentityAlreadyExists:
		apiErr = authsdk.ErrIdentityAlreadyExists
	case service.KindInvalidCredential:
		apiErr = authsdk.ErrInvalidCredential
	case service.KindDeliveryFailed:
		apiErr = authsdk.ErrDeliveryFailed
	case service.KindUnauthenticated:
		httpx.WriteBearerChallenge(w, "the session token is invalid or expired")
		apiErr = authsdk.ErrUnauthenticated
	case service.KindNotFound:
		apiErr = authsdk.ErrNotFound
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	if detail := service.DetailOf(err); detail != "" {
		apiErr = apiErr.WithDescription(detail)
	}
	apiErr.WriteError(w)
}

// writeAuthnError renders failures from the bearer middleware.
func writeAuthnError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, httpx.ErrMissingBearer) {
		httpx.WriteBearerChallenge(w, "missing bearer token")
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}
	writeServiceError(w, r, err)
}

type ctxKey string

const ctxKeyUser ctxKey = "user"

// sessionAuthenticator resolves a bearer token to the current identity and
// stores it, with the claims, on the request context.
func sessionAuthenticator(tokens *service.TokenService) httpx.Authenticator {
	return httpx.AuthenticatorFunc(func(ctx context.Context, token string) (context.Context, error) {
		user, claims, err := tokens.Authenticate(ctx, token)
		if err != nil {
			return ctx, err
		}

		ctx = httpx.ContextWithAuth(ctx, claims)
		ctx = context.WithValue(ctx, ctxKeyUser, user)
		ctx = slogx.WithUserID(ctx, user.ID)
		return ctx, nil
	})
}

// userFromContext returns the identity set by sessionAuthenticator.
func userFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.User)
	return u, ok
}

func writeDecodeError(w http.ResponseWriter, err error) {
	authsdk.ErrValidation.WithDescription(err.Error()).WriteError(w)
}
