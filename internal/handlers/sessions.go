package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gridsense-backend/internal/models"
	"gridsense-backend/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No data received or not interpreted", r))
		return
	}

	session, err := h.sessions.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":        "Successfully created session",
		"session_number": session.SessionNumber,
	})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	cwid, ok := cwidParam(w, r, "cwid")
	if !ok {
		return
	}
	sessionNumber, err := strconv.Atoi(chi.URLParam(r, "sessionNumber"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid session number", r))
		return
	}

	view, err := h.sessions.Get(r.Context(), cwid, sessionNumber)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ListOwned preserves the historical behavior of answering 404 for a user
// with no sessions, even though an empty shared-sessions list answers 204.
func (h *SessionHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	cwid, ok := cwidParam(w, r, "cwid")
	if !ok {
		return
	}

	sessions, err := h.sessions.ListForOwner(r.Context(), cwid)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if len(sessions) == 0 {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "User has no sessions", r))
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}
