package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studypulse/internal/model"
	"studypulse/internal/platform/logger"
)

func newNudgeFixture() (*NudgeService, *fakeNudgeRepo, *fakeStudentRepo, *fakeBroadcaster) {
	nudgeRepo := &fakeNudgeRepo{}
	studentRepo := newFakeStudentRepo()
	broadcaster := &fakeBroadcaster{}
	svc := NewNudgeService(nudgeRepo, studentRepo, &fakeGenerator{}, 72*time.Hour, time.Hour, logger.NewNop())
	svc.SetBroadcaster(broadcaster)
	return svc, nudgeRepo, studentRepo, broadcaster
}

func TestNudgeStudentSendsAndBroadcasts(t *testing.T) {
	svc, repo, studentRepo, broadcaster := newNudgeFixture()
	student := &model.Student{Name: "Ada", Email: "ada@example.com"}
	_, err := studentRepo.Create(context.Background(), student)
	require.NoError(t, err)

	nudge, err := svc.NudgeStudent(context.Background(), student, model.NudgeInactivity)
	require.NoError(t, err)
	require.NotNil(t, nudge)
	assert.Equal(t, model.NudgeInactivity, nudge.Kind)
	assert.NotEmpty(t, nudge.Message)

	require.Len(t, repo.nudges, 1)
	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, "nudge", broadcaster.events[0].msgType)
	assert.Equal(t, "student:"+student.ID, broadcaster.events[0].target)
}

func TestNudgeStudentDeduplicatesWithinWindow(t *testing.T) {
	svc, repo, studentRepo, _ := newNudgeFixture()
	student := &model.Student{Name: "Ada", Email: "ada@example.com"}
	_, err := studentRepo.Create(context.Background(), student)
	require.NoError(t, err)

	first, err := svc.NudgeStudent(context.Background(), student, model.NudgeInactivity)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.NudgeStudent(context.Background(), student, model.NudgeInactivity)
	require.NoError(t, err)
	assert.Nil(t, second, "repeat nudge inside the window is suppressed")
	assert.Len(t, repo.nudges, 1)
}

func TestNudgeStudentDifferentKindNotSuppressed(t *testing.T) {
	svc, repo, studentRepo, _ := newNudgeFixture()
	student := &model.Student{Name: "Ada", Email: "ada@example.com"}
	_, err := studentRepo.Create(context.Background(), student)
	require.NoError(t, err)

	_, err = svc.NudgeStudent(context.Background(), student, model.NudgeInactivity)
	require.NoError(t, err)

	streak, err := svc.NudgeStudent(context.Background(), student, model.NudgeStreak)
	require.NoError(t, err)
	require.NotNil(t, streak)
	assert.Len(t, repo.nudges, 2)
}

func TestSweepNudgesOnlyInactiveStudents(t *testing.T) {
	svc, repo, studentRepo, _ := newNudgeFixture()

	idle := &model.Student{Name: "Idle", Email: "idle@example.com"}
	_, err := studentRepo.Create(context.Background(), idle)
	require.NoError(t, err)
	idle.LastActiveAt = time.Now().Add(-100 * time.Hour)

	active := &model.Student{Name: "Active", Email: "active@example.com"}
	_, err = studentRepo.Create(context.Background(), active)
	require.NoError(t, err)

	svc.sweep(context.Background())

	require.Len(t, repo.nudges, 1)
	assert.Equal(t, idle.ID, repo.nudges[0].StudentID)
}
