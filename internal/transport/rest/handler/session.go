package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"studypulse/internal/model"
	"studypulse/internal/service"
	"studypulse/internal/transport/rest/middleware"
)

// SessionHandler handles tutoring session endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	tutorID := middleware.GetTutorID(r.Context())
	if tutorID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.Schedule(r.Context(), tutorID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Get handles GET /v1/sessions/{sessionId}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Get(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Start handles POST /v1/sessions/{sessionId}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionSvc.Start(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// End handles POST /v1/sessions/{sessionId}/end
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	var req model.EndSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.End(r.Context(), mux.Vars(r)["sessionId"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// Upcoming handles GET /v1/sessions/upcoming (tutor only)
func (h *SessionHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	tutorID := middleware.GetTutorID(r.Context())

	sessions, err := h.sessionSvc.Upcoming(r.Context(), tutorID, limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// ForStudent handles GET /v1/sessions/mine (student only)
func (h *SessionHandler) ForStudent(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())

	sessions, err := h.sessionSvc.ForStudent(r.Context(), studentID, limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}
