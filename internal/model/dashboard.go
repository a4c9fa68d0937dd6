package model

import "time"

// SubjectProgress is one subject's slice of a student dashboard
type SubjectProgress struct {
	Subject        string  `json:"subject"`
	Rating         int     `json:"rating"`
	NextLowDiff    int     `json:"nextLowDifficulty"`
	NextHighDiff   int     `json:"nextHighDifficulty"`
	Attempts       int     `json:"attempts"`
	Accuracy       float64 `json:"accuracy"` // 0-1 over recent attempts
	AvgPerformance float64 `json:"avgPerformance"`
}

// StudentDashboard is the per-student progress snapshot
type StudentDashboard struct {
	StudentID   string            `json:"studentId"`
	Subjects    []SubjectProgress `json:"subjects"`
	Streak      int               `json:"streak"` // consecutive practice days
	Escalations int               `json:"escalations"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// MasteryEntry is one row of a subject mastery leaderboard
type MasteryEntry struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name,omitempty"`
	Rating    int    `json:"rating"`
	Rank      int    `json:"rank"`
}

// TutorDashboard is the tutor-facing overview snapshot
type TutorDashboard struct {
	Subject           string         `json:"subject"`
	Leaderboard       []MasteryEntry `json:"leaderboard"`
	RecentEscalations []Interaction  `json:"recentEscalations"`
	UpcomingSessions  []Session      `json:"upcomingSessions"`
	GeneratedAt       time.Time      `json:"generatedAt"`
}
