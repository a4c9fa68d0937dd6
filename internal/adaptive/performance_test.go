package adaptive

import "testing"

func TestPerformance_PerfectAttempt(t *testing.T) {
	// Exactly 1.0, not 1.0 minus a float ulp from summing the weights.
	for _, taken := range []float64{30, 15, 0.5} {
		got := Performance(true, taken, 30, 0)
		if got != 1.0 {
			t.Errorf("Performance(true, %v, 30, 0) = %v, want exactly 1.0", taken, got)
		}
	}
}

func TestPerformance_Components(t *testing.T) {
	tests := []struct {
		name       string
		correct    bool
		taken      float64
		optimal    float64
		hints      int
		want       float64
	}{
		{"wrong fast no hints", false, 30, 30, 0, 0.3},
		{"correct double time", true, 60, 30, 0, 0.9},
		{"correct under optimal", true, 15, 30, 0, 1.0},
		{"one hint", true, 30, 30, 1, 0.99},
		{"ten hints floors hint score", true, 30, 30, 10, 0.9},
		{"twenty hints same floor", true, 30, 30, 20, 0.9},
		{"wrong slow all hints", false, 300, 30, 10, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Performance(tt.correct, tt.taken, tt.optimal, tt.hints)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerformance_AlwaysInUnitInterval(t *testing.T) {
	for _, taken := range []float64{0.001, 1, 30, 600, 1e6} {
		for _, optimal := range []float64{1, 30, 120} {
			for hints := 0; hints <= 15; hints++ {
				for _, correct := range []bool{true, false} {
					got := Performance(correct, taken, optimal, hints)
					if got < 0 || got > 1 {
						t.Fatalf("Performance(%v, %v, %v, %d) = %v outside [0,1]",
							correct, taken, optimal, hints, got)
					}
				}
			}
		}
	}
}

func TestPerformance_ClampsNegativeInputs(t *testing.T) {
	// Negative time or hints behave like zero rather than failing.
	got := Performance(true, -5, 30, -3)
	if got != 1.0 {
		t.Errorf("got %v, want 1.0", got)
	}
}

func TestPerformance_TimeScoreDecaysWithSlowness(t *testing.T) {
	fast := Performance(true, 30, 30, 0)
	slow := Performance(true, 120, 30, 0)
	slower := Performance(true, 1200, 30, 0)
	if !(fast > slow && slow > slower) {
		t.Errorf("expected strictly decaying scores, got %v, %v, %v", fast, slow, slower)
	}
}
