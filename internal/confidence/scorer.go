package confidence

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a signal is outside [0,1].
var ErrInvalidInput = errors.New("invalid input")

// Label is the discrete trust level of an AI-generated answer.
type Label string

const (
	LabelHigh   Label = "high"
	LabelMedium Label = "medium"
	LabelLow    Label = "low"
)

// Signal weights. Model self-assessment dominates, completeness matters
// least.
const (
	selfAssessmentWeight     = 0.4
	contextRelevanceWeight   = 0.3
	queryClarityWeight       = 0.2
	answerCompletenessWeight = 0.1
)

// Thresholds are the band boundaries for labelling. Both are inclusive
// lower bounds: a score of exactly High is labelled high, exactly
// Medium is labelled medium.
type Thresholds struct {
	High   float64 `json:"high"`
	Medium float64 `json:"medium"`
}

// DefaultThresholds returns the standard label boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.75, Medium: 0.50}
}

// Signals are the four sub-scores feeding the confidence calculation.
// Each must be in [0,1].
type Signals struct {
	SelfAssessment     float64 `json:"selfAssessment"`
	ContextRelevance   float64 `json:"contextRelevance"`
	QueryClarity       float64 `json:"queryClarity"`
	AnswerCompleteness float64 `json:"answerCompleteness"`
}

// Result is the scored confidence for a single Q&A answer.
type Result struct {
	Score              float64 `json:"score"`
	Label              Label   `json:"label"`
	EscalationRequired bool    `json:"escalationRequired"`
}

// Score combines the four weighted signals into a confidence score and
// label. Any signal outside [0,1] fails with ErrInvalidInput; there is
// no other failure mode.
func Score(sig Signals, t Thresholds) (*Result, error) {
	for name, v := range map[string]float64{
		"selfAssessment":     sig.SelfAssessment,
		"contextRelevance":   sig.ContextRelevance,
		"queryClarity":       sig.QueryClarity,
		"answerCompleteness": sig.AnswerCompleteness,
	} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, fmt.Errorf("signal %s=%v outside [0,1]: %w", name, v, ErrInvalidInput)
		}
	}

	score := selfAssessmentWeight*sig.SelfAssessment +
		contextRelevanceWeight*sig.ContextRelevance +
		queryClarityWeight*sig.QueryClarity +
		answerCompletenessWeight*sig.AnswerCompleteness

	// The band boundaries are inclusive, so a score that lands exactly
	// on one must not fall short by a float ulp.
	score = math.Round(score*1e6) / 1e6

	var label Label
	switch {
	case score >= t.High:
		label = LabelHigh
	case score >= t.Medium:
		label = LabelMedium
	default:
		label = LabelLow
	}

	return &Result{
		Score:              score,
		Label:              label,
		EscalationRequired: label == LabelLow,
	}, nil
}
