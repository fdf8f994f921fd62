package http

import (
	"net/http"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
	"github.com/aussiebroadwan/hdnotes/pkg/httpx"
)

type NotesHandler struct {
	NoteService *service.NoteService
}

func toNoteResponse(n domain.Note) authsdk.NoteResponse {
	return authsdk.NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// HandleList godoc
//
//	@Summary		List notes
//	@Description	Returns the caller's notes, newest first.
//	@Tags			Notes
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.NotesResponse	"Notes"
//	@Failure		401	{object}	authsdk.Error			"Missing, invalid or expired session token"
//	@Router			/v1/notes [get].
func (h *NotesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	notes, err := h.NoteService.List(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := authsdk.NotesResponse{Notes: make([]authsdk.NoteResponse, 0, len(notes))}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, toNoteResponse(n))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleCreate godoc
//
//	@Summary		Create a note
//	@Tags			Notes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.NoteRequest		true	"Title and content"
//	@Success		201		{object}	authsdk.NoteResponse	"Created note"
//	@Failure		400		{object}	authsdk.Error			"Missing title or content"
//	@Failure		401		{object}	authsdk.Error			"Missing, invalid or expired session token"
//	@Router			/v1/notes [post].
func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	var req authsdk.NoteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	n, err := h.NoteService.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toNoteResponse(n))
}

// HandleUpdate godoc
//
//	@Summary		Replace a note
//	@Tags			Notes
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Note ID"
//	@Param			request	body		authsdk.NoteRequest		true	"Title and content"
//	@Success		200		{object}	authsdk.NoteResponse	"Updated note"
//	@Failure		400		{object}	authsdk.Error			"Missing title or content"
//	@Failure		401		{object}	authsdk.Error			"Missing, invalid or expired session token"
//	@Failure		404		{object}	authsdk.Error			"No such note for this caller"
//	@Router			/v1/notes/{id} [put].
func (h *NotesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	var req authsdk.NoteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	n, err := h.NoteService.Update(r.Context(), user.ID, r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toNoteResponse(n))
}

// HandleDelete godoc
//
//	@Summary		Delete a note
//	@Tags			Notes
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Note ID"
//	@Success		204	"Deleted"
//	@Failure		401	{object}	authsdk.Error	"Missing, invalid or expired session token"
//	@Failure		404	{object}	authsdk.Error	"No such note for this caller"
//	@Router			/v1/notes/{id} [delete].
func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		authsdk.ErrUnauthenticated.WriteError(w)
		return
	}

	if err := h.NoteService.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
