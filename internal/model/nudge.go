package model

import "time"

// NudgeKind describes why a nudge was sent
type NudgeKind string

const (
	NudgeInactivity NudgeKind = "inactivity"
	NudgeStreak     NudgeKind = "streak"
	NudgeEscalation NudgeKind = "escalation"
)

// Nudge is a motivational or follow-up message pushed to a student
type Nudge struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	StudentID string    `json:"studentId" bson:"studentId"`
	Kind      NudgeKind `json:"kind" bson:"kind"`
	Message   string    `json:"message" bson:"message"`
	SentAt    time.Time `json:"sentAt" bson:"sentAt"`
}
