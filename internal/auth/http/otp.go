package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
)

type OTPHandler struct {
	OTPService *service.OTPService
}

// HandleIssue mails a fresh one-time code.
//
//	@Summary		Issue a one-time code
//	@Description	Generates a six digit code valid for ten minutes and mails it. Any earlier code for the email stops working.
//	@Description	Signin requires an existing identity, signup requires that none exists.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.IssueOTPRequest		true	"Email, optional name and purpose"
//	@Success		200		{object}	authsdk.IssueOTPResponse	"Code sent"
//	@Failure		400		{object}	authsdk.Error				"Missing or malformed fields"
//	@Failure		404		{object}	authsdk.Error				"Signin for an unknown email"
//	@Failure		409		{object}	authsdk.Error				"Signup for an existing email"
//	@Failure		500		{object}	authsdk.Error				"Delivery failed"
//	@Router			/v1/auth/issue-otp [post].
func (h *OTPHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var req authsdk.IssueOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	purpose, err := domain.ParsePurpose(req.Purpose)
	if err != nil {
		authsdk.ErrValidation.WithDescription(err.Error()).WriteError(w)
		return
	}

	if err := h.OTPService.Issue(r.Context(), req.Email, req.Name, purpose); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.IssueOTPResponse{Email: strings.TrimSpace(req.Email)})
}

// HandleVerify redeems a code for a session token.
//
//	@Summary		Verify a one-time code
//	@Description	Consumes the code and returns a session token. On signup the identity is created here.
//	@Description	Wrong, expired and already used codes all fail the same way.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyOTPRequest	true	"Email, code, optional name and purpose"
//	@Success		200		{object}	authsdk.VerifyOTPResponse	"Session token"
//	@Failure		400		{object}	authsdk.Error				"Missing fields or invalid_or_expired_credential"
//	@Failure		404		{object}	authsdk.Error				"Identity no longer exists"
//	@Failure		409		{object}	authsdk.Error				"Signup lost a race"
//	@Router			/v1/auth/verify-otp [post].
func (h *OTPHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	purpose, err := domain.ParsePurpose(req.Purpose)
	if err != nil {
		authsdk.ErrValidation.WithDescription(err.Error()).WriteError(w)
		return
	}

	sess, err := h.OTPService.Verify(r.Context(), req.Email, req.Code, req.Name, purpose)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.VerifyOTPResponse{
		Subject:      toSubject(sess.User),
		SessionToken: sess.Token,
		ExpiresAt:    sess.ExpiresAt,
	})
}

func toSubject(u domain.User) authsdk.Subject {
	return authsdk.Subject{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserResponse(u domain.User) *authsdk.UserResponse {
	return &authsdk.UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		AvatarRef:       u.AvatarRef,
		EmailVerifiedAt: u.EmailVerifiedAt,
		CreatedAt:       u.CreatedAt,
	}
}
