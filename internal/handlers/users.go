package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gridsense-backend/internal/models"
	"gridsense-backend/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Successfully created user",
		"cwid":    user.CWID,
	})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	cwid, ok := cwidParam(w, r, "cwid")
	if !ok {
		return
	}

	user, err := h.users.Find(r.Context(), cwid)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cwid": user.CWID,
		"name": user.Name,
	})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	cwid, ok := cwidParam(w, r, "cwid")
	if !ok {
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	correct, err := h.users.VerifyPassword(r.Context(), cwid, req.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if !correct {
		writeJSON(w, http.StatusUnauthorized, errorResp("UNAUTHORIZED", "User's password is incorrect", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User's password is correct"})
}

// Shared helpers

func cwidParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid "+name, r))
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", e.Message, r))
	case *services.SelfShareError:
		writeJSON(w, http.StatusBadRequest, errorResp("SELF_SHARE", e.Error(), r))
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", e.Message, r))
	case *services.DuplicateKeyError:
		writeJSON(w, http.StatusConflict, errorResp("DUPLICATE_KEY", e.Message, r))
	case *services.DuplicateShareError:
		writeJSON(w, http.StatusConflict, errorResp("DUPLICATE_SHARE", e.Message, r))
	case *services.ConstraintError:
		writeJSON(w, http.StatusConflict, errorResp("CONSTRAINT_VIOLATION", e.Message, r))
	default:
		log.Printf("unexpected error handling %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
