package model

import "time"

// Student represents a learner profile
type Student struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Subjects     []string  `json:"subjects" bson:"subjects"`
	LastActiveAt time.Time `json:"lastActiveAt" bson:"lastActiveAt"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// StudentJoinResponse is returned when a student registers or signs in
type StudentJoinResponse struct {
	StudentID string   `json:"studentId"`
	Token     string   `json:"token"`
	Student   *Student `json:"student"`
}
