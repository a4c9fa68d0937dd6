package model

import "time"

// Rating is the per-(student, subject) skill estimate. Created lazily
// at the default rating on a student's first practice completion and
// mutated on every completion after that; never deleted, only reset.
type Rating struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	StudentID   string    `json:"studentId" bson:"studentId"`
	Subject     string    `json:"subject" bson:"subject"`
	Rating      int       `json:"rating" bson:"rating"`
	LastUpdated time.Time `json:"lastUpdated" bson:"lastUpdated"`
}

// RatingUpdate captures a single rating transition for audit/dashboards
type RatingUpdate struct {
	Before       int `json:"before"`
	After        int `json:"after"`
	NextLowDiff  int `json:"nextLowDifficulty"`
	NextHighDiff int `json:"nextHighDifficulty"`
}
