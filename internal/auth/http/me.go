package http

import (
	"net/http"

	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
)

type MeHandler struct {
	UserService *service.UserService
}

// HandleGet returns the caller's current identity.
//
//	@Summary		Get the current identity
//	@Description	Resolved from the session token on every request, so renames show up immediately.
//	@Tags			Me
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"Current identity"
//	@Failure		401	{object}	authsdk.Error			"Missing, invalid or expired session token"
//	@Failure		404	{object}	authsdk.Error			"Identity was deleted"
//	@Router			/v1/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleRename changes the display name.
//
//	@Summary		Rename the current identity
//	@Tags			Me
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RenameRequest	true	"New display name"
//	@Success		200		{object}	authsdk.UserResponse	"Updated identity"
//	@Failure		400		{object}	authsdk.Error			"Missing or too long name"
//	@Failure		401		{object}	authsdk.Error			"Missing, invalid or expired session token"
//	@Router			/v1/me [patch].
func (h *MeHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	var req authsdk.RenameRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := h.UserService.Rename(r.Context(), user.ID, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(updated))
}

// HandleDelete removes the account.
//
//	@Summary		Delete the current identity
//	@Description	Deletes the identity, its notes and any pending code. Existing session tokens stop working.
//	@Tags			Me
//	@Security		BearerAuth
//	@Success		204	"Deleted"
//	@Failure		401	{object}	authsdk.Error	"Missing, invalid or expired session token"
//	@Router			/v1/me [delete].
func (h *MeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	if err := h.UserService.Delete(r.Context(), user); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
