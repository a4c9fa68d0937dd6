package service

import (
	"context"
	"fmt"

	"studypulse/internal/adaptive"
	"studypulse/internal/cache"
	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
	"studypulse/internal/repository"
)

// PracticeService handles practice completions, rating updates and item
// selection. The rating math lives in the adaptive package; this
// service owns the read-compute-write cycle around it.
type PracticeService struct {
	ratingRepo  repository.RatingRepo
	attemptRepo repository.AttemptRepo
	itemRepo    repository.ItemRepo
	studentRepo repository.StudentRepo
	ratingCache cache.RatingCache
	mastery     cache.MasteryCache
	dashboards  cache.DashboardCache
	generator   Generator
	params      adaptive.Params
	broadcaster Broadcaster
	log         *logger.Logger
}

// NewPracticeService creates a new practice service
func NewPracticeService(
	ratingRepo repository.RatingRepo,
	attemptRepo repository.AttemptRepo,
	itemRepo repository.ItemRepo,
	studentRepo repository.StudentRepo,
	ratingCache cache.RatingCache,
	mastery cache.MasteryCache,
	dashboards cache.DashboardCache,
	generator Generator,
	params adaptive.Params,
	log *logger.Logger,
) *PracticeService {
	return &PracticeService{
		ratingRepo:  ratingRepo,
		attemptRepo: attemptRepo,
		itemRepo:    itemRepo,
		studentRepo: studentRepo,
		ratingCache: ratingCache,
		mastery:     mastery,
		dashboards:  dashboards,
		generator:   generator,
		params:      params,
		log:         log,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *PracticeService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CurrentRating returns the stored rating for a (student, subject)
// pair, falling back to the default for first-time practice.
func (s *PracticeService) CurrentRating(ctx context.Context, studentID, subject string) (int, error) {
	if rating, ok, err := s.ratingCache.Get(ctx, studentID, subject); err == nil && ok {
		return rating, nil
	}

	stored, err := s.ratingRepo.Get(ctx, studentID, subject)
	if err != nil {
		return 0, fmt.Errorf("failed to load rating: %w", err)
	}
	if stored == nil {
		return s.params.DefaultRating, nil
	}
	return stored.Rating, nil
}

// SubmitAttempt scores a practice completion, moves the rating and
// returns the next suggested item.
func (s *PracticeService) SubmitAttempt(ctx context.Context, studentID string, req *model.SubmitAttemptRequest) (*model.SubmitAttemptResponse, error) {
	if req.Subject == "" {
		return nil, fmt.Errorf("subject is required: %w", ErrBadRequest)
	}

	before, err := s.CurrentRating(ctx, studentID, req.Subject)
	if err != nil {
		return nil, err
	}

	performance := adaptive.Performance(req.Correct, req.TimeTakenSec, req.OptimalTimeSec, req.HintsUsed)

	after, err := adaptive.Update(before, req.Difficulty, performance, s.params)
	if err != nil {
		return nil, err
	}

	if err := s.ratingRepo.Upsert(ctx, studentID, req.Subject, after); err != nil {
		return nil, fmt.Errorf("failed to persist rating: %w", err)
	}

	// Cache writes are best effort; Mongo already holds the truth.
	if err := s.ratingCache.Set(ctx, studentID, req.Subject, after); err != nil {
		s.log.Warn("rating cache write failed", "studentId", studentID, "error", err)
	}
	if err := s.mastery.UpdateRating(ctx, req.Subject, studentID, after); err != nil {
		s.log.Warn("mastery leaderboard update failed", "subject", req.Subject, "error", err)
	}
	if err := s.dashboards.InvalidateStudent(ctx, studentID); err != nil {
		s.log.Warn("dashboard invalidation failed", "studentId", studentID, "error", err)
	}

	attempt := &model.PracticeAttempt{
		StudentID:      studentID,
		Subject:        req.Subject,
		ItemID:         req.ItemID,
		Difficulty:     req.Difficulty,
		Correct:        req.Correct,
		TimeTakenSec:   req.TimeTakenSec,
		OptimalTimeSec: req.OptimalTimeSec,
		HintsUsed:      req.HintsUsed,
		Performance:    performance,
		RatingBefore:   before,
		RatingAfter:    after,
	}
	if _, err := s.attemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	if err := s.studentRepo.TouchActivity(ctx, studentID); err != nil {
		s.log.Warn("activity touch failed", "studentId", studentID, "error", err)
	}

	low, high := adaptive.SelectRange(after)

	nextItem, err := s.nextItemInRange(ctx, studentID, req.Subject, low, high, req.ItemID)
	if err != nil {
		s.log.Warn("next item selection failed", "subject", req.Subject, "error", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTutors("progress_update", map[string]interface{}{
			"studentId":   studentID,
			"subject":     req.Subject,
			"performance": performance,
			"rating":      after,
		})
		s.broadcaster.BroadcastToStudent(studentID, "rating_update", map[string]interface{}{
			"subject": req.Subject,
			"rating":  after,
		})
	}

	return &model.SubmitAttemptResponse{
		Performance: performance,
		Rating: model.RatingUpdate{
			Before:       before,
			After:        after,
			NextLowDiff:  low,
			NextHighDiff: high,
		},
		NextItem: nextItem,
	}, nil
}

// NextItem serves the next practice item for a subject based on the
// student's current rating band.
func (s *PracticeService) NextItem(ctx context.Context, studentID, subject string) (*model.PracticeItem, error) {
	if subject == "" {
		return nil, fmt.Errorf("subject is required: %w", ErrBadRequest)
	}

	rating, err := s.CurrentRating(ctx, studentID, subject)
	if err != nil {
		return nil, err
	}
	low, high := adaptive.SelectRange(rating)
	return s.nextItemInRange(ctx, studentID, subject, low, high, "")
}

// ResetRating puts a (student, subject) rating back to the default.
// Idempotent: repeated resets read back the same value.
func (s *PracticeService) ResetRating(ctx context.Context, studentID, subject string) (int, error) {
	if err := s.ratingRepo.Reset(ctx, studentID, subject, s.params.DefaultRating); err != nil {
		return 0, fmt.Errorf("failed to reset rating: %w", err)
	}
	if err := s.ratingCache.Set(ctx, studentID, subject, s.params.DefaultRating); err != nil {
		s.log.Warn("rating cache write failed", "studentId", studentID, "error", err)
	}
	if err := s.mastery.UpdateRating(ctx, subject, studentID, s.params.DefaultRating); err != nil {
		s.log.Warn("mastery leaderboard update failed", "subject", subject, "error", err)
	}
	if err := s.dashboards.InvalidateStudent(ctx, studentID); err != nil {
		s.log.Warn("dashboard invalidation failed", "studentId", studentID, "error", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToTutors("dashboard_update", map[string]interface{}{
			"studentId": studentID,
			"subject":   subject,
			"rating":    s.params.DefaultRating,
		})
	}
	return s.params.DefaultRating, nil
}

// nextItemInRange picks a stored item in the band, topping the pool up
// from the generator when it runs dry.
func (s *PracticeService) nextItemInRange(ctx context.Context, studentID, subject string, low, high int, excludeID string) (*model.PracticeItem, error) {
	var exclude []string
	if excludeID != "" {
		exclude = append(exclude, excludeID)
	}

	item, err := s.itemRepo.FindInRange(ctx, subject, low, high, exclude)
	if err != nil {
		return nil, err
	}
	if item == nil {
		generated, err := s.generator.GenerateItems(ctx, subject, high, 3)
		if err != nil || len(generated) == 0 {
			return nil, err
		}
		for _, g := range generated {
			if _, err := s.itemRepo.Create(ctx, g); err != nil {
				s.log.Warn("generated item persist failed", "subject", subject, "error", err)
			}
		}
		item = generated[0]
	}

	// Students get the prompt and hints, never the stored answer.
	served := *item
	served.Answer = ""
	return &served, nil
}
