package adaptive

import "math"

// Component weights for the performance score. They sum to 1.0 so the
// result stays in [0,1] without a final clamp.
const (
	accuracyWeight = 0.7
	timeWeight     = 0.2
	hintWeight     = 0.1

	hintPenalty = 0.1

	// Guards the division when a client reports zero elapsed time.
	timeEpsilon = 1e-9
)

// Performance combines correctness, speed and hint usage into a single
// score in [0,1]. Negative time or hint counts are treated as zero, so
// the function never fails on odd client input.
func Performance(correct bool, timeTakenSec, optimalTimeSec float64, hintsUsed int) float64 {
	if timeTakenSec < 0 {
		timeTakenSec = 0
	}
	if optimalTimeSec < 0 {
		optimalTimeSec = 0
	}
	if hintsUsed < 0 {
		hintsUsed = 0
	}

	accuracy := 0.0
	if correct {
		accuracy = 1.0
	}

	denom := timeTakenSec
	if denom < timeEpsilon {
		denom = timeEpsilon
	}
	timeScore := optimalTimeSec / denom
	if timeScore > 1.0 {
		timeScore = 1.0
	}

	hintScore := 1.0 - float64(hintsUsed)*hintPenalty
	if hintScore < 0 {
		hintScore = 0
	}

	score := accuracyWeight*accuracy + timeWeight*timeScore + hintWeight*hintScore

	// 0.7+0.2+0.1 falls a float ulp short of 1.0, so a perfect attempt
	// would score 0.999999... without the rounding.
	return math.Round(score*1e6) / 1e6
}
