package model

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionActive    SessionStatus = "active"
	SessionEnded     SessionStatus = "ended"
)

// Session is a tutoring session between a student and a tutor
type Session struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	StudentID   string        `json:"studentId" bson:"studentId"`
	TutorID     string        `json:"tutorId" bson:"tutorId"`
	Subject     string        `json:"subject" bson:"subject"`
	Status      SessionStatus `json:"status" bson:"status"`
	Notes       string        `json:"notes,omitempty" bson:"notes,omitempty"`
	Summary     string        `json:"summary,omitempty" bson:"summary,omitempty"`
	ScheduledAt time.Time     `json:"scheduledAt" bson:"scheduledAt"`
	StartedAt   *time.Time    `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	EndedAt     *time.Time    `json:"endedAt,omitempty" bson:"endedAt,omitempty"`
}

// CreateSessionRequest is the request body for scheduling a session
type CreateSessionRequest struct {
	StudentID   string    `json:"studentId"`
	Subject     string    `json:"subject"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// EndSessionRequest carries the tutor's raw notes for summarization
type EndSessionRequest struct {
	Notes string `json:"notes"`
}
