package handlers

import (
	"encoding/json"
	"net/http"

	"gridsense-backend/internal/models"
	"gridsense-backend/internal/services"
)

type SharingHandler struct {
	sharing *services.SharingService
}

func NewSharingHandler(sharing *services.SharingService) *SharingHandler {
	return &SharingHandler{sharing: sharing}
}

func (h *SharingHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req models.ShareSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if _, err := h.sharing.Share(r.Context(), req); err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Successfully shared the session"})
}

// ListShared answers 204 for a valid empty result.
func (h *SharingHandler) ListShared(w http.ResponseWriter, r *http.Request) {
	cwid, ok := cwidParam(w, r, "cwid")
	if !ok {
		return
	}

	sessions, err := h.sharing.ListSharedWith(r.Context(), cwid)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if len(sessions) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}
