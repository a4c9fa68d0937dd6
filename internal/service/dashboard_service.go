package service

import (
	"context"
	"fmt"
	"time"

	"studypulse/internal/adaptive"
	"studypulse/internal/cache"
	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
	"studypulse/internal/repository"
)

const recentAttemptWindow = 20

// DashboardService assembles the student and tutor progress snapshots.
// Snapshots are expensive multi-collection reads, so they are served
// from Redis and rebuilt only on a cache miss.
type DashboardService struct {
	ratingRepo      repository.RatingRepo
	attemptRepo     repository.AttemptRepo
	interactionRepo repository.InteractionRepo
	sessionRepo     repository.SessionRepo
	studentRepo     repository.StudentRepo
	mastery         cache.MasteryCache
	dashboards      cache.DashboardCache
	log             *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	ratingRepo repository.RatingRepo,
	attemptRepo repository.AttemptRepo,
	interactionRepo repository.InteractionRepo,
	sessionRepo repository.SessionRepo,
	studentRepo repository.StudentRepo,
	mastery cache.MasteryCache,
	dashboards cache.DashboardCache,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{
		ratingRepo:      ratingRepo,
		attemptRepo:     attemptRepo,
		interactionRepo: interactionRepo,
		sessionRepo:     sessionRepo,
		studentRepo:     studentRepo,
		mastery:         mastery,
		dashboards:      dashboards,
		log:             log,
	}
}

// StudentDashboard returns the per-subject progress snapshot for a student
func (s *DashboardService) StudentDashboard(ctx context.Context, studentID string) (*model.StudentDashboard, error) {
	if cached, err := s.dashboards.GetStudent(ctx, studentID); err == nil && cached != nil {
		return cached, nil
	}

	ratings, err := s.ratingRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}

	subjects := make([]model.SubjectProgress, 0, len(ratings))
	for _, rating := range ratings {
		low, high := adaptive.SelectRange(rating.Rating)
		progress := model.SubjectProgress{
			Subject:      rating.Subject,
			Rating:       rating.Rating,
			NextLowDiff:  low,
			NextHighDiff: high,
		}

		attempts, err := s.attemptRepo.GetRecent(ctx, studentID, rating.Subject, recentAttemptWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to load attempts: %w", err)
		}
		progress.Attempts = len(attempts)
		if len(attempts) > 0 {
			correct := 0
			perfSum := 0.0
			for _, a := range attempts {
				if a.Correct {
					correct++
				}
				perfSum += a.Performance
			}
			progress.Accuracy = float64(correct) / float64(len(attempts))
			progress.AvgPerformance = perfSum / float64(len(attempts))
		}

		subjects = append(subjects, progress)
	}

	escalations, err := s.interactionRepo.CountEscalationsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count escalations: %w", err)
	}

	streak, err := s.practiceStreak(ctx, studentID)
	if err != nil {
		s.log.Warn("streak computation failed", "studentId", studentID, "error", err)
	}

	dashboard := &model.StudentDashboard{
		StudentID:   studentID,
		Subjects:    subjects,
		Streak:      streak,
		Escalations: int(escalations),
		GeneratedAt: time.Now(),
	}

	if err := s.dashboards.SetStudent(ctx, dashboard); err != nil {
		s.log.Warn("dashboard cache write failed", "studentId", studentID, "error", err)
	}

	return dashboard, nil
}

// TutorDashboard returns the tutor-facing overview for one subject
func (s *DashboardService) TutorDashboard(ctx context.Context, tutorID, subject string, limit int) (*model.TutorDashboard, error) {
	if cached, err := s.dashboards.GetTutor(ctx, subject); err == nil && cached != nil {
		return cached, nil
	}

	leaderboard, err := s.mastery.GetTop(ctx, subject, limit)
	if err != nil {
		// Fall back to Mongo when Redis is cold or unavailable.
		s.log.Warn("mastery leaderboard read failed", "subject", subject, "error", err)
		leaderboard, err = s.leaderboardFromRepo(ctx, subject, limit)
		if err != nil {
			return nil, err
		}
	}
	for i := range leaderboard {
		student, err := s.studentRepo.GetByID(ctx, leaderboard[i].StudentID)
		if err == nil && student != nil {
			leaderboard[i].Name = student.Name
		}
	}

	escalations, err := s.interactionRepo.GetEscalations(ctx, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load escalations: %w", err)
	}

	upcoming, err := s.sessionRepo.GetUpcoming(ctx, tutorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	dashboard := &model.TutorDashboard{
		Subject:           subject,
		Leaderboard:       leaderboard,
		RecentEscalations: make([]model.Interaction, 0, len(escalations)),
		UpcomingSessions:  make([]model.Session, 0, len(upcoming)),
		GeneratedAt:       time.Now(),
	}
	for _, e := range escalations {
		dashboard.RecentEscalations = append(dashboard.RecentEscalations, *e)
	}
	for _, u := range upcoming {
		dashboard.UpcomingSessions = append(dashboard.UpcomingSessions, *u)
	}

	if err := s.dashboards.SetTutor(ctx, dashboard); err != nil {
		s.log.Warn("dashboard cache write failed", "subject", subject, "error", err)
	}

	return dashboard, nil
}

// Leaderboard returns the top rated students for a subject
func (s *DashboardService) Leaderboard(ctx context.Context, subject string, limit int) ([]model.MasteryEntry, error) {
	entries, err := s.mastery.GetTop(ctx, subject, limit)
	if err != nil {
		return s.leaderboardFromRepo(ctx, subject, limit)
	}
	return entries, nil
}

func (s *DashboardService) leaderboardFromRepo(ctx context.Context, subject string, limit int) ([]model.MasteryEntry, error) {
	ratings, err := s.ratingRepo.TopBySubject(ctx, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	entries := make([]model.MasteryEntry, 0, len(ratings))
	for i, r := range ratings {
		entries = append(entries, model.MasteryEntry{
			StudentID: r.StudentID,
			Rating:    r.Rating,
			Rank:      i + 1,
		})
	}
	return entries, nil
}

// practiceStreak counts consecutive days with at least one attempt,
// ending today or yesterday.
func (s *DashboardService) practiceStreak(ctx context.Context, studentID string) (int, error) {
	attempts, err := s.attemptRepo.GetByStudent(ctx, studentID, 200)
	if err != nil {
		return 0, err
	}
	if len(attempts) == 0 {
		return 0, nil
	}

	days := make(map[string]bool, len(attempts))
	for _, a := range attempts {
		days[a.CompletedAt.Format("2006-01-02")] = true
	}

	streak := 0
	day := time.Now()
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}
