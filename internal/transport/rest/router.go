package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"studypulse/internal/platform/logger"
	"studypulse/internal/service"
	"studypulse/internal/transport/rest/handler"
	"studypulse/internal/transport/rest/middleware"
	"studypulse/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	StudentService   *service.StudentService
	PracticeService  *service.PracticeService
	QAService        *service.QAService
	SessionService   *service.SessionService
	NudgeService     *service.NudgeService
	DashboardService *service.DashboardService
	WSHub            *ws.Hub
	Logger           *logger.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.StudentService)
	practiceHandler := handler.NewPracticeHandler(c.PracticeService)
	qaHandler := handler.NewQAHandler(c.QAService)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	dashboardHandler := handler.NewDashboardHandler(c.DashboardService, c.NudgeService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/students/join", authHandler.Join).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/tutor", wsHandler.TutorWS).Methods("GET")
	v1.HandleFunc("/ws/student", wsHandler.StudentWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Student routes (require student auth)
	studentRoutes := v1.NewRoute().Subrouter()
	studentRoutes.Use(authMW.RequireStudent)

	studentRoutes.HandleFunc("/practice/attempts", practiceHandler.SubmitAttempt).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/practice/{subject}/next", practiceHandler.NextItem).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/practice/{subject}/rating", practiceHandler.GetRating).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/practice/{subject}/reset", practiceHandler.ResetRating).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/qa/ask", qaHandler.Ask).Methods("POST", "OPTIONS")
	studentRoutes.HandleFunc("/qa/history", qaHandler.History).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/sessions/mine", sessionHandler.ForStudent).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/dashboard", dashboardHandler.Student).Methods("GET", "OPTIONS")
	studentRoutes.HandleFunc("/nudges", dashboardHandler.Nudges).Methods("GET", "OPTIONS")

	// Tutor routes (require tutor auth)
	tutorRoutes := v1.NewRoute().Subrouter()
	tutorRoutes.Use(authMW.RequireTutor)

	tutorRoutes.HandleFunc("/qa/escalations", qaHandler.Escalations).Methods("GET", "OPTIONS")
	tutorRoutes.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	tutorRoutes.HandleFunc("/sessions/upcoming", sessionHandler.Upcoming).Methods("GET", "OPTIONS")
	tutorRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods("GET", "OPTIONS")
	tutorRoutes.HandleFunc("/sessions/{sessionId}/start", sessionHandler.Start).Methods("POST", "OPTIONS")
	tutorRoutes.HandleFunc("/sessions/{sessionId}/end", sessionHandler.End).Methods("POST", "OPTIONS")
	tutorRoutes.HandleFunc("/dashboard/{subject}", dashboardHandler.Tutor).Methods("GET", "OPTIONS")
	tutorRoutes.HandleFunc("/leaderboard/{subject}", dashboardHandler.Leaderboard).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
