package adaptive

import "math"

// SelectRange maps a rating back to a 1-10 difficulty band for the next
// practice item: one step either side of the rating's nearest
// difficulty, clipped to the valid scale.
func SelectRange(rating int) (low, high int) {
	target := int(math.Round(float64(rating) / 100.0))

	low = target - 1
	if low < 1 {
		low = 1
	}
	high = target + 1
	if high > 10 {
		high = 10
	}
	// Ratings near the ceiling would otherwise invert the band.
	if low > high {
		low = high
	}
	return low, high
}
