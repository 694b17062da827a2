package scene

import "math"

// StatsWindow is the stretch of simulated time step timings are averaged over.
const StatsWindow = 0.2

// StepStats averages the wall time of consecutive steps over fixed windows.
type StepStats struct {
	window int
	count  int
	total  float64

	// Average is the mean milliseconds per step of the last full window.
	Average float64
}

func NewStepStats(dt float64) *StepStats {
	window := int(math.Ceil(StatsWindow/dt - 1e-9))
	if window < 1 {
		window = 1
	}
	return &StepStats{window: window}
}

func (s *StepStats) Window() int {
	return s.window
}

// Add records one step and reports whether it completed a window.
func (s *StepStats) Add(milliseconds float64) bool {
	s.total += milliseconds
	s.count++
	if s.count < s.window {
		return false
	}

	s.Average = s.total / float64(s.count)
	s.total = 0
	s.count = 0
	return true
}
