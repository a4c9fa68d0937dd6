package model

import "time"

// Interaction is a stored Q&A exchange with its confidence verdict
type Interaction struct {
	ID                  string    `json:"id" bson:"_id,omitempty"`
	StudentID           string    `json:"studentId" bson:"studentId"`
	Subject             string    `json:"subject" bson:"subject"`
	Question            string    `json:"question" bson:"question"`
	Answer              string    `json:"answer" bson:"answer"`
	ConfidenceScore     float64   `json:"confidenceScore" bson:"confidenceScore"`
	ConfidenceLabel     string    `json:"confidenceLabel" bson:"confidenceLabel"`
	EscalationRequired  bool      `json:"escalationRequired" bson:"escalationRequired"`
	DisclaimerRequired  bool      `json:"disclaimerRequired" bson:"disclaimerRequired"`
	EscalationSuggested bool      `json:"escalationSuggested" bson:"escalationSuggested"`
	AskedAt             time.Time `json:"askedAt" bson:"askedAt"`
}

// AskRequest is the request body for a Q&A question
type AskRequest struct {
	Subject  string `json:"subject"`
	Question string `json:"question"`
}

// AskResponse is the answer plus its trust presentation
type AskResponse struct {
	InteractionID       string  `json:"interactionId"`
	Answer              string  `json:"answer"`
	ConfidenceScore     float64 `json:"confidenceScore"`
	ConfidenceLabel     string  `json:"confidenceLabel"`
	EscalationRequired  bool    `json:"escalationRequired"`
	DisclaimerRequired  bool    `json:"disclaimerRequired"`
	EscalationSuggested bool    `json:"escalationSuggested"`
}

// DraftAnswer is the LLM output for a question before confidence scoring
type DraftAnswer struct {
	Answer             string  `json:"answer"`
	SelfAssessment     float64 `json:"selfAssessment"`     // 0-1
	ContextRelevance   float64 `json:"contextRelevance"`   // 0-1
	QueryClarity       float64 `json:"queryClarity"`       // 0-1
	AnswerCompleteness float64 `json:"answerCompleteness"` // 0-1
}
