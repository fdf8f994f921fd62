package http

import (
	"net/http"

	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
)

type CheckUserHandler struct {
	UserService *service.UserService
}

// ServeHTTP reports whether an identity exists for an email.
//
//	@Summary		Check whether an account exists
//	@Description	Lets the client choose between the signup and signin flows.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.CheckUserRequest	true	"Email to look up"
//	@Success		200		{object}	authsdk.CheckUserResponse	"exists and, when true, the public profile"
//	@Failure		400		{object}	authsdk.Error				"Missing or malformed email"
//	@Router			/v1/auth/check-user [post].
func (h *CheckUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.CheckUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	user, exists, err := h.UserService.CheckUser(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := authsdk.CheckUserResponse{Exists: exists}
	if exists {
		// Only the public fields.
		resp.User = &authsdk.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
