package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"studypulse/internal/model"
)

// DashboardCache stores short-lived dashboard snapshots so repeated
// polls do not re-run the Mongo aggregations.
type DashboardCache interface {
	GetStudent(ctx context.Context, studentID string) (*model.StudentDashboard, error)
	SetStudent(ctx context.Context, dashboard *model.StudentDashboard) error
	InvalidateStudent(ctx context.Context, studentID string) error

	GetTutor(ctx context.Context, subject string) (*model.TutorDashboard, error)
	SetTutor(ctx context.Context, dashboard *model.TutorDashboard) error
}

type dashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache creates a new dashboard cache
func NewDashboardCache(client *redis.Client, ttl time.Duration) DashboardCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &dashboardCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *dashboardCache) studentKey(studentID string) string {
	return fmt.Sprintf("dashboard:student:%s", studentID)
}

func (c *dashboardCache) tutorKey(subject string) string {
	return fmt.Sprintf("dashboard:tutor:%s", subject)
}

func (c *dashboardCache) GetStudent(ctx context.Context, studentID string) (*model.StudentDashboard, error) {
	data, err := c.client.Get(ctx, c.studentKey(studentID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var dashboard model.StudentDashboard
	if err := json.Unmarshal([]byte(data), &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *dashboardCache) SetStudent(ctx context.Context, dashboard *model.StudentDashboard) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.studentKey(dashboard.StudentID), data, c.ttl).Err()
}

func (c *dashboardCache) InvalidateStudent(ctx context.Context, studentID string) error {
	return c.client.Del(ctx, c.studentKey(studentID)).Err()
}

func (c *dashboardCache) GetTutor(ctx context.Context, subject string) (*model.TutorDashboard, error) {
	data, err := c.client.Get(ctx, c.tutorKey(subject)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var dashboard model.TutorDashboard
	if err := json.Unmarshal([]byte(data), &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *dashboardCache) SetTutor(ctx context.Context, dashboard *model.TutorDashboard) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.tutorKey(dashboard.Subject), data, c.ttl).Err()
}
