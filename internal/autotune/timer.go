package autotune

import "time"

// stopwatch measures one trial window against a Clock.
type stopwatch struct {
	clock   Clock
	start   time.Time
	elapsed time.Duration
	running bool
}

func startStopwatch(c Clock) *stopwatch {
	return &stopwatch{clock: c, start: c.Now(), running: true}
}

// Elapsed returns the time since start, or the stopped duration.
func (s *stopwatch) Elapsed() time.Duration {
	if s.running {
		return s.clock.Now().Sub(s.start)
	}
	return s.elapsed
}

// Stop freezes the stopwatch and returns the elapsed time.
func (s *stopwatch) Stop() time.Duration {
	if s.running {
		s.elapsed = s.clock.Now().Sub(s.start)
		s.running = false
	}
	return s.elapsed
}
