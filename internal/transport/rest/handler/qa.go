package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"studypulse/internal/model"
	"studypulse/internal/service"
	"studypulse/internal/transport/rest/middleware"
)

// QAHandler handles question answering endpoints
type QAHandler struct {
	qaSvc *service.QAService
}

// NewQAHandler creates a new QA handler
func NewQAHandler(qaSvc *service.QAService) *QAHandler {
	return &QAHandler{qaSvc: qaSvc}
}

// Ask handles POST /v1/qa/ask
func (h *QAHandler) Ask(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	if studentID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.qaSvc.Ask(r.Context(), studentID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /v1/qa/history
func (h *QAHandler) History(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())

	interactions, err := h.qaSvc.History(r.Context(), studentID, limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, interactions)
}

// Escalations handles GET /v1/qa/escalations (tutor only)
func (h *QAHandler) Escalations(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")

	escalations, err := h.qaSvc.Escalations(r.Context(), subject, limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, escalations)
}

func limitParam(r *http.Request, fallback int) int {
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
