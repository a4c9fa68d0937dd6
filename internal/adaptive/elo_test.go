package adaptive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_PerfectAttemptAtMidRating(t *testing.T) {
	// rating 1000 vs difficulty 5 (item rating 500):
	// expected = 1/(1+10^((500-1000)/400)) = 0.9468
	// new = round(1000 + 32*(1-0.9468)) = 1002
	got, err := Update(1000, 5, 1.0, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 1002, got)
}

func TestUpdate_RejectsPerformanceOutsideUnitInterval(t *testing.T) {
	for _, perf := range []float64{-0.01, 1.01, 2, -5, math.NaN()} {
		_, err := Update(1000, 5, perf, DefaultParams())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestUpdate_RejectsDifficultyOutsideScale(t *testing.T) {
	for _, d := range []int{0, -1, 11, 100} {
		_, err := Update(1000, d, 0.5, DefaultParams())
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestUpdate_ClampsToRatingRange(t *testing.T) {
	p := DefaultParams()
	for rating := 400; rating <= 2000; rating += 100 {
		for difficulty := 1; difficulty <= 10; difficulty++ {
			for _, perf := range []float64{0, 0.25, 0.5, 0.75, 1} {
				got, err := Update(rating, difficulty, perf, p)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, got, p.MinRating)
				assert.LessOrEqual(t, got, p.MaxRating)
			}
		}
	}
}

func TestUpdate_FloorLoss(t *testing.T) {
	// A miss at the floor cannot push the rating below MinRating.
	got, err := Update(400, 10, 0, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 400, got)
}

func TestUpdate_MatchingExpectationIsDriftFree(t *testing.T) {
	for _, rating := range []int{400, 700, 1000, 1300, 2000} {
		for difficulty := 1; difficulty <= 10; difficulty++ {
			expected := ExpectedScore(rating, ItemRating(difficulty))
			got, err := Update(rating, difficulty, expected, DefaultParams())
			require.NoError(t, err)
			assert.Equal(t, rating, got, "rating %d difficulty %d", rating, difficulty)
		}
	}
}

func TestUpdate_MonotonicInPerformance(t *testing.T) {
	prev := math.MinInt
	for i := 0; i <= 20; i++ {
		perf := float64(i) / 20
		got, err := Update(1000, 5, perf, DefaultParams())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "performance %v", perf)
		prev = got
	}
}

func TestUpdate_LegacyRatingClampedNotRejected(t *testing.T) {
	// Ratings persisted before the clamp was introduced may sit outside
	// the range; they are accepted and pulled back on output.
	got, err := Update(3000, 5, 0.5, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 2000, got)

	got, err = Update(100, 5, 0.5, DefaultParams())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 400)
}

func TestUpdate_Deterministic(t *testing.T) {
	a, err := Update(1234, 7, 0.62, DefaultParams())
	require.NoError(t, err)
	b, err := Update(1234, 7, 0.62, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExpectedScore_DecreasesWithHarderItems(t *testing.T) {
	prev := 1.1
	for difficulty := 1; difficulty <= 10; difficulty++ {
		e := ExpectedScore(1000, ItemRating(difficulty))
		assert.Less(t, e, prev)
		assert.Greater(t, e, 0.0)
		assert.Less(t, e, 1.0)
		prev = e
	}
}
