package authsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	remote := &authsdk.Error{StatusCode: 404, Code: authsdk.ErrorCodeIdentityNotFound, Description: "whatever"}
	require.ErrorIs(t, remote, authsdk.ErrIdentityNotFound)
	require.NotErrorIs(t, remote, authsdk.ErrIdentityAlreadyExists)

	custom := authsdk.ErrValidation.WithDescription("email is required")
	require.Equal(t, "email is required", custom.Description)
	require.Equal(t, "the request is malformed or missing required fields", authsdk.ErrValidation.Description)
	require.ErrorIs(t, custom, authsdk.ErrValidation)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	authsdk.ErrInvalidCredential.WriteError(rec)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"invalid_or_expired_credential","error_description":"the code is invalid or has expired"}`, rec.Body.String())
}

func TestOTPFlowAgainstFakeServer(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/issue-otp", func(w http.ResponseWriter, r *http.Request) {
		var req authsdk.IssueOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "missing@example.com" {
			authsdk.ErrIdentityNotFound.WriteError(w)
			return
		}
		_ = json.NewEncoder(w).Encode(authsdk.IssueOTPResponse{Email: req.Email})
	})
	mux.HandleFunc("POST /v1/auth/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(authsdk.VerifyOTPResponse{
			Subject:      authsdk.Subject{ID: "u1", Name: "Ada", Email: "ada@example.com"},
			SessionToken: "tok",
			ExpiresAt:    exp,
		})
	})
	mux.HandleFunc("PATCH /v1/me", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var req authsdk.RenameRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(authsdk.UserResponse{ID: "u1", Name: req.Name, Email: "ada@example.com"})
	})
	mux.HandleFunc("DELETE /v1/notes/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "n1" {
			authsdk.ErrNotFound.WriteError(w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := authsdk.NewSDKClient(srv.URL + "/")

	out, err := client.IssueOTP(ctx, authsdk.IssueOTPRequest{Email: "ada@example.com"})
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", out.Email)

	_, err = client.IssueOTP(ctx, authsdk.IssueOTPRequest{Email: "missing@example.com"})
	require.ErrorIs(t, err, authsdk.ErrIdentityNotFound)
	var apiErr *authsdk.Error
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	session, err := client.VerifyOTP(ctx, authsdk.VerifyOTPRequest{Email: "ada@example.com", Code: "123456"})
	require.NoError(t, err)
	require.Equal(t, "tok", session.Token())
	require.Equal(t, exp, session.ExpiresAt())

	u, err := session.Rename(ctx, "Countess")
	require.NoError(t, err)
	require.Equal(t, "Countess", u.Name)
	require.Equal(t, "Countess", session.Subject().Name)

	require.NoError(t, session.DeleteNote(ctx, "n1"))
	require.ErrorIs(t, session.DeleteNote(ctx, "n2"), authsdk.ErrNotFound)
}

func TestExpiredSessionShortCircuits(t *testing.T) {
	client := authsdk.NewSDKClient("http://127.0.0.1:1")
	session := client.NewSessionFromToken("tok", time.Now().Add(-time.Minute), authsdk.Subject{})

	_, err := session.Me(context.Background())
	require.ErrorIs(t, err, authsdk.ErrSessionExpired)
}
