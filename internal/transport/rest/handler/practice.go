package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"studypulse/internal/model"
	"studypulse/internal/service"
	"studypulse/internal/transport/rest/middleware"
)

// PracticeHandler handles practice endpoints
type PracticeHandler struct {
	practiceSvc *service.PracticeService
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceSvc *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceSvc: practiceSvc}
}

// SubmitAttempt handles POST /v1/practice/attempts
func (h *PracticeHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	if studentID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.SubmitAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.practiceSvc.SubmitAttempt(r.Context(), studentID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// NextItem handles GET /v1/practice/{subject}/next
func (h *PracticeHandler) NextItem(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	subject := mux.Vars(r)["subject"]

	item, err := h.practiceSvc.NextItem(r.Context(), studentID, subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "no practice items available")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// GetRating handles GET /v1/practice/{subject}/rating
func (h *PracticeHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	subject := mux.Vars(r)["subject"]

	rating, err := h.practiceSvc.CurrentRating(r.Context(), studentID, subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subject": subject,
		"rating":  rating,
	})
}

// ResetRating handles POST /v1/practice/{subject}/reset
func (h *PracticeHandler) ResetRating(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	subject := mux.Vars(r)["subject"]

	rating, err := h.practiceSvc.ResetRating(r.Context(), studentID, subject)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subject": subject,
		"rating":  rating,
	})
}
