package model

import "time"

// PracticeItem is a generated practice question at a fixed difficulty
type PracticeItem struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Subject        string    `json:"subject" bson:"subject"`
	Difficulty     int       `json:"difficulty" bson:"difficulty"` // 1-10
	Prompt         string    `json:"prompt" bson:"prompt"`
	Answer         string    `json:"answer" bson:"answer"`
	Hints          []string  `json:"hints,omitempty" bson:"hints,omitempty"`
	OptimalTimeSec float64   `json:"optimalTimeSec" bson:"optimalTimeSec"`
	AIGenerated    bool      `json:"aiGenerated" bson:"aiGenerated"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// PracticeAttempt is the persisted record of one completion event
type PracticeAttempt struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	StudentID      string    `json:"studentId" bson:"studentId"`
	Subject        string    `json:"subject" bson:"subject"`
	ItemID         string    `json:"itemId" bson:"itemId"`
	Difficulty     int       `json:"difficulty" bson:"difficulty"`
	Correct        bool      `json:"correct" bson:"correct"`
	TimeTakenSec   float64   `json:"timeTakenSec" bson:"timeTakenSec"`
	OptimalTimeSec float64   `json:"optimalTimeSec" bson:"optimalTimeSec"`
	HintsUsed      int       `json:"hintsUsed" bson:"hintsUsed"`
	Performance    float64   `json:"performance" bson:"performance"`
	RatingBefore   int       `json:"ratingBefore" bson:"ratingBefore"`
	RatingAfter    int       `json:"ratingAfter" bson:"ratingAfter"`
	CompletedAt    time.Time `json:"completedAt" bson:"completedAt"`
}

// SubmitAttemptRequest is the request body for a practice completion
type SubmitAttemptRequest struct {
	Subject        string  `json:"subject"`
	ItemID         string  `json:"itemId"`
	Difficulty     int     `json:"difficulty"`
	Correct        bool    `json:"correct"`
	TimeTakenSec   float64 `json:"timeTakenSec"`
	OptimalTimeSec float64 `json:"optimalTimeSec"`
	HintsUsed      int     `json:"hintsUsed"`
}

// SubmitAttemptResponse returns the scored attempt and what to serve next
type SubmitAttemptResponse struct {
	Performance float64       `json:"performance"`
	Rating      RatingUpdate  `json:"rating"`
	NextItem    *PracticeItem `json:"nextItem,omitempty"`
}
