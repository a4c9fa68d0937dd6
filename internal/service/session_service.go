package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
	"studypulse/internal/repository"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService manages the scheduled -> active -> ended session
// lifecycle, including the AI summary written when a session ends.
type SessionService struct {
	sessionRepo repository.SessionRepo
	studentRepo repository.StudentRepo
	generator   Generator
	broadcaster Broadcaster
	log         *logger.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepo,
	studentRepo repository.StudentRepo,
	generator Generator,
	log *logger.Logger,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		studentRepo: studentRepo,
		generator:   generator,
		log:         log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Schedule creates a scheduled session between a tutor and a student
func (s *SessionService) Schedule(ctx context.Context, tutorID string, req *model.CreateSessionRequest) (*model.Session, error) {
	if req.StudentID == "" || req.Subject == "" {
		return nil, fmt.Errorf("studentId and subject are required: %w", ErrBadRequest)
	}
	if req.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("scheduledAt is required: %w", ErrBadRequest)
	}

	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if student == nil {
		return nil, fmt.Errorf("student %s not found", req.StudentID)
	}

	session := &model.Session{
		StudentID:   req.StudentID,
		TutorID:     tutorID,
		Subject:     req.Subject,
		Status:      model.SessionScheduled,
		ScheduledAt: req.ScheduledAt,
	}
	id, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.ID = id

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStudent(req.StudentID, "session_scheduled", session)
	}

	return session, nil
}

// Start moves a scheduled session to active
func (s *SessionService) Start(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != model.SessionScheduled {
		return nil, fmt.Errorf("session %s is %s, expected scheduled", sessionID, session.Status)
	}

	now := time.Now()
	session.Status = model.SessionActive
	session.StartedAt = &now
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStudent(session.StudentID, "session_started", session)
	}

	return session, nil
}

// End closes an active session, storing the tutor's notes and an AI
// generated summary. Summarization runs on the request path with the
// mock fallback, so a dead AI backend never blocks ending a session.
func (s *SessionService) End(ctx context.Context, sessionID string, req *model.EndSessionRequest) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status == model.SessionEnded {
		return session, nil
	}

	now := time.Now()
	session.Status = model.SessionEnded
	session.EndedAt = &now
	session.Notes = req.Notes

	summary, err := s.generator.SummarizeSession(ctx, session, req.Notes)
	if err != nil {
		s.log.Warn("session summary failed", "sessionId", sessionID, "error", err)
	} else {
		session.Summary = summary
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStudent(session.StudentID, "session_ended", session)
	}

	return session, nil
}

// Get returns a session by id
func (s *SessionService) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// ForStudent returns a student's recent sessions
func (s *SessionService) ForStudent(ctx context.Context, studentID string, limit int) ([]*model.Session, error) {
	return s.sessionRepo.GetByStudent(ctx, studentID, limit)
}

// Upcoming returns a tutor's upcoming scheduled sessions
func (s *SessionService) Upcoming(ctx context.Context, tutorID string, limit int) ([]*model.Session, error) {
	return s.sessionRepo.GetUpcoming(ctx, tutorID, limit)
}
