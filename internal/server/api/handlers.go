package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/freelancework02/welfare-admin/internal/common"
	"github.com/freelancework02/welfare-admin/internal/server/models"
	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service-layer sentinel errors to HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorUnknownCollection), errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrorLoginAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrorInvalidLoginPassword), errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, common.ErrorInternal):
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Profile *models.Profile `json:"profile"`
	Token   string          `json:"token"`
}

// Login verifies credentials and returns the profile with a bearer token.
// The profile in the response is the same object /auth/profile serves, so
// clients never need a follow-up fetch after login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	profile, token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Profile: profile, Token: token})
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// RegisterUser provisions a new account. Admin-only (see the router); the
// role defaults to editor when the request leaves it blank.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Role == "" {
		req.Role = "editor"
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password, req.DisplayName, req.Role)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user.Profile())
}

// Profile returns the profile of the token's owner.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.GetProfile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]

	result, err := h.content.List(r.Context(), collection)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	collection := mux.Vars(r)["collection"]

	record := &models.Record{}
	if err := json.NewDecoder(r.Body).Decode(record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	record.ID = ""
	record.Collection = collection
	if record.OwnerID == "" {
		record.OwnerID = userIDFromContext(r.Context())
	}

	record, err := h.content.Create(r.Context(), record)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	record := &models.Record{}
	if err := json.NewDecoder(r.Body).Decode(record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	record.Collection = vars["collection"]
	record.ID = vars["id"]

	if err := h.content.Update(r.Context(), record); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.content.Delete(r.Context(), vars["collection"], vars["id"]); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadURL returns a presigned PUT URL on the media store. The client (or
// a browser form) uploads directly; this API never sees the bytes.
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	key, url, err := h.media.GetPresignedPutUrl(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadURLResponse{Key: key, URL: url})
}
