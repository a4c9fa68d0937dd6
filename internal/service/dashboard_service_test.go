package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studypulse/internal/adaptive"
	"studypulse/internal/confidence"
	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
)

type dashboardFixture struct {
	svc      *DashboardService
	practice *PracticeService
	qa       *QAService
	sessions *fakeSessionRepo
	students *fakeStudentRepo
}

// newDashboardFixture wires the dashboard service to the same fakes the
// practice and QA services write to, so tests exercise the real flow.
func newDashboardFixture() *dashboardFixture {
	ratingRepo := newFakeRatingRepo()
	attemptRepo := &fakeAttemptRepo{}
	interactionRepo := &fakeInteractionRepo{}
	sessionRepo := newFakeSessionRepo()
	studentRepo := newFakeStudentRepo()
	mastery := newFakeMasteryCache()
	dashboards := newFakeDashboardCache()

	practice := NewPracticeService(
		ratingRepo, attemptRepo, &fakeItemRepo{}, studentRepo,
		newFakeRatingCache(), mastery, dashboards,
		&fakeGenerator{}, adaptive.DefaultParams(), logger.NewNop(),
	)
	qa := NewQAService(interactionRepo, studentRepo, &fakeGenerator{draft: &model.DraftAnswer{
		Answer:         "unsure",
		SelfAssessment: 0.1, ContextRelevance: 0.1, QueryClarity: 0.1, AnswerCompleteness: 0.1,
	}}, confidence.DefaultThresholds(), logger.NewNop())

	svc := NewDashboardService(
		ratingRepo, attemptRepo, interactionRepo, sessionRepo, studentRepo,
		mastery, dashboards, logger.NewNop(),
	)
	return &dashboardFixture{svc: svc, practice: practice, qa: qa, sessions: sessionRepo, students: studentRepo}
}

func TestStudentDashboardReflectsPractice(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.practice.SubmitAttempt(ctx, "s1", &model.SubmitAttemptRequest{
			Subject:        "algebra",
			Difficulty:     5,
			Correct:        i < 2, // two of three correct
			TimeTakenSec:   60,
			OptimalTimeSec: 60,
		})
		require.NoError(t, err)
	}
	_, err := f.qa.Ask(ctx, "s1", &model.AskRequest{Subject: "algebra", Question: "why?"})
	require.NoError(t, err)

	dashboard, err := f.svc.StudentDashboard(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, dashboard.Subjects, 1)
	subject := dashboard.Subjects[0]
	assert.Equal(t, "algebra", subject.Subject)
	assert.Equal(t, 3, subject.Attempts)
	assert.InDelta(t, 2.0/3.0, subject.Accuracy, 1e-9)
	assert.Greater(t, subject.Rating, 0)
	assert.GreaterOrEqual(t, subject.NextLowDiff, 1)
	assert.LessOrEqual(t, subject.NextHighDiff, 10)
	assert.Equal(t, 1, dashboard.Escalations)
	assert.GreaterOrEqual(t, dashboard.Streak, 1, "today's practice starts a streak")
}

func TestStudentDashboardServedFromCacheUntilInvalidated(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()

	_, err := f.practice.SubmitAttempt(ctx, "s1", &model.SubmitAttemptRequest{
		Subject: "algebra", Difficulty: 5, Correct: true, TimeTakenSec: 30, OptimalTimeSec: 60,
	})
	require.NoError(t, err)

	first, err := f.svc.StudentDashboard(ctx, "s1")
	require.NoError(t, err)

	cached, err := f.svc.StudentDashboard(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, first.GeneratedAt, cached.GeneratedAt, "second read hits the snapshot")

	// A new completion invalidates the snapshot.
	_, err = f.practice.SubmitAttempt(ctx, "s1", &model.SubmitAttemptRequest{
		Subject: "algebra", Difficulty: 5, Correct: true, TimeTakenSec: 30, OptimalTimeSec: 60,
	})
	require.NoError(t, err)

	rebuilt, err := f.svc.StudentDashboard(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, rebuilt.Subjects[0].Attempts)
}

func TestTutorDashboardLeaderboardOrder(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()

	strongID, _ := f.students.Create(ctx, &model.Student{Name: "Strong", Email: "strong@example.com"})
	weakID, _ := f.students.Create(ctx, &model.Student{Name: "Weak", Email: "weak@example.com"})

	_, err := f.practice.SubmitAttempt(ctx, strongID, &model.SubmitAttemptRequest{
		Subject: "algebra", Difficulty: 10, Correct: true, TimeTakenSec: 30, OptimalTimeSec: 60,
	})
	require.NoError(t, err)
	_, err = f.practice.SubmitAttempt(ctx, weakID, &model.SubmitAttemptRequest{
		Subject: "algebra", Difficulty: 1, Correct: false, TimeTakenSec: 300, OptimalTimeSec: 60, HintsUsed: 5,
	})
	require.NoError(t, err)

	dashboard, err := f.svc.TutorDashboard(ctx, "t_1", "algebra", 10)
	require.NoError(t, err)

	require.Len(t, dashboard.Leaderboard, 2)
	assert.Equal(t, strongID, dashboard.Leaderboard[0].StudentID)
	assert.Equal(t, "Strong", dashboard.Leaderboard[0].Name)
	assert.Equal(t, 1, dashboard.Leaderboard[0].Rank)
	assert.Greater(t, dashboard.Leaderboard[0].Rating, dashboard.Leaderboard[1].Rating)
}

func TestLeaderboardFallsBackToMongo(t *testing.T) {
	f := newDashboardFixture()
	ctx := context.Background()

	// Rating rows exist but the ZSET is empty, as after a Redis flush.
	require.NoError(t, f.svc.ratingRepo.Upsert(ctx, "s1", "algebra", 1200))
	require.NoError(t, f.svc.ratingRepo.Upsert(ctx, "s2", "algebra", 1100))

	entries, err := f.svc.leaderboardFromRepo(ctx, "algebra", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "s1", entries[0].StudentID)
	assert.Equal(t, 1, entries[0].Rank)
}
