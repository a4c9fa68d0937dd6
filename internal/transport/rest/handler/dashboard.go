package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"studypulse/internal/service"
	"studypulse/internal/transport/rest/middleware"
)

// DashboardHandler handles progress dashboard endpoints
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
	nudgeSvc     *service.NudgeService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc *service.DashboardService, nudgeSvc *service.NudgeService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc, nudgeSvc: nudgeSvc}
}

// Student handles GET /v1/dashboard (student only)
func (h *DashboardHandler) Student(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())
	if studentID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dashboard, err := h.dashboardSvc.StudentDashboard(r.Context(), studentID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// Tutor handles GET /v1/dashboard/{subject} (tutor only)
func (h *DashboardHandler) Tutor(w http.ResponseWriter, r *http.Request) {
	tutorID := middleware.GetTutorID(r.Context())
	subject := mux.Vars(r)["subject"]

	dashboard, err := h.dashboardSvc.TutorDashboard(r.Context(), tutorID, subject, limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

// Leaderboard handles GET /v1/leaderboard/{subject} (tutor only)
func (h *DashboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	subject := mux.Vars(r)["subject"]

	entries, err := h.dashboardSvc.Leaderboard(r.Context(), subject, limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// Nudges handles GET /v1/nudges (student only)
func (h *DashboardHandler) Nudges(w http.ResponseWriter, r *http.Request) {
	studentID := middleware.GetStudentID(r.Context())

	nudges, err := h.nudgeSvc.History(r.Context(), studentID, limitParam(r, 20))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nudges)
}
