package service

import (
	"context"
	"time"

	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
	"studypulse/internal/repository"
)

// NudgeService sends re-engagement messages to students who stopped
// practicing. A background sweep runs on a ticker; each sweep nudges
// students past the inactivity cutoff at most once per cutoff window.
type NudgeService struct {
	nudgeRepo     repository.NudgeRepo
	studentRepo   repository.StudentRepo
	generator     Generator
	inactiveAfter time.Duration
	interval      time.Duration
	broadcaster   Broadcaster
	log           *logger.Logger
}

// NewNudgeService creates a new nudge service
func NewNudgeService(
	nudgeRepo repository.NudgeRepo,
	studentRepo repository.StudentRepo,
	generator Generator,
	inactiveAfter time.Duration,
	interval time.Duration,
	log *logger.Logger,
) *NudgeService {
	return &NudgeService{
		nudgeRepo:     nudgeRepo,
		studentRepo:   studentRepo,
		generator:     generator,
		inactiveAfter: inactiveAfter,
		interval:      interval,
		log:           log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *NudgeService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Run sweeps for inactive students until the context is cancelled.
// Meant to be started as a goroutine from main.
func (s *NudgeService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *NudgeService) sweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("nudge sweep panicked", "panic", r)
		}
	}()

	cutoff := time.Now().Add(-s.inactiveAfter)
	students, err := s.studentRepo.GetInactiveSince(ctx, cutoff)
	if err != nil {
		s.log.Error("inactive student query failed", "error", err)
		return
	}

	for _, student := range students {
		if _, err := s.NudgeStudent(ctx, student, model.NudgeInactivity); err != nil {
			s.log.Warn("nudge failed", "studentId", student.ID, "error", err)
		}
	}
}

// NudgeStudent sends one nudge of the given kind, unless an identical
// kind was already sent within the inactivity window.
func (s *NudgeService) NudgeStudent(ctx context.Context, student *model.Student, kind model.NudgeKind) (*model.Nudge, error) {
	last, err := s.nudgeRepo.GetLastForStudent(ctx, student.ID, kind)
	if err != nil {
		return nil, err
	}
	if last != nil && time.Since(last.SentAt) < s.inactiveAfter {
		return nil, nil
	}

	message, err := s.generator.NudgeMessage(ctx, student, kind)
	if err != nil {
		return nil, err
	}

	nudge := &model.Nudge{
		StudentID: student.ID,
		Kind:      kind,
		Message:   message,
	}
	id, err := s.nudgeRepo.Create(ctx, nudge)
	if err != nil {
		return nil, err
	}
	nudge.ID = id

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStudent(student.ID, "nudge", nudge)
	}

	s.log.Info("nudge sent", "studentId", student.ID, "kind", string(kind))
	return nudge, nil
}

// History returns a student's recent nudges
func (s *NudgeService) History(ctx context.Context, studentID string, limit int) ([]*model.Nudge, error) {
	return s.nudgeRepo.GetByStudent(ctx, studentID, limit)
}
