package impulse2d

import "time"

/// Timer for profiling. Uses the monotonic clock reading of time.Time.
type Timer struct {
	M_start time.Time
}

func MakeTimer() Timer {
	return Timer{
		M_start: time.Now(),
	}
}

/// Reset the timer.
func (timer *Timer) Reset() {
	timer.M_start = time.Now()
}

/// Get the time since construction or the last reset.
func (timer Timer) GetMilliseconds() float64 {
	return float64(time.Since(timer.M_start)) / float64(time.Millisecond)
}
