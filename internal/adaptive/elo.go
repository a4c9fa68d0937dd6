package adaptive

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a numeric argument is outside its
// documented domain. Handlers map it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// Params are the tunable constants for the rating system.
type Params struct {
	KFactor       int `json:"kFactor"`
	MinRating     int `json:"minRating"`
	MaxRating     int `json:"maxRating"`
	DefaultRating int `json:"defaultRating"`
}

// DefaultParams returns the standard rating parameters.
func DefaultParams() Params {
	return Params{
		KFactor:       32,
		MinRating:     400,
		MaxRating:     2000,
		DefaultRating: 1000,
	}
}

// ItemRating maps a 1-10 item difficulty onto the rating scale.
func ItemRating(difficulty int) int {
	return difficulty * 100
}

// ExpectedScore is the logistic Elo expectation for a student facing an
// item. Monotonically decreasing in (questionRating - currentRating).
func ExpectedScore(currentRating, questionRating int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(questionRating-currentRating)/400.0))
}

// Update computes the new rating after a practice attempt.
//
// The performance score must be in [0,1]; anything else fails with
// ErrInvalidInput. An out-of-range current rating is accepted and only
// clamped on output, so legacy rows migrate cleanly. Identical inputs
// always produce identical output.
func Update(currentRating, itemDifficulty int, performance float64, p Params) (int, error) {
	if itemDifficulty < 1 || itemDifficulty > 10 {
		return 0, fmt.Errorf("item difficulty %d outside 1-10: %w", itemDifficulty, ErrInvalidInput)
	}
	if performance < 0 || performance > 1 || math.IsNaN(performance) {
		return 0, fmt.Errorf("performance %v outside [0,1]: %w", performance, ErrInvalidInput)
	}

	expected := ExpectedScore(currentRating, ItemRating(itemDifficulty))
	newRating := int(math.Round(float64(currentRating) + float64(p.KFactor)*(performance-expected)))

	if newRating < p.MinRating {
		newRating = p.MinRating
	}
	if newRating > p.MaxRating {
		newRating = p.MaxRating
	}
	return newRating, nil
}
