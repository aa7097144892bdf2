package common

// Timer is a one-shot stopwatch advanced by tick deltas. Elapsed only grows
// and is clamped to Duration.
type Timer struct {
	Duration float64
	Elapsed  float64

	paused       bool
	finished     bool
	justFinished bool
}

func NewTimer(seconds float64) Timer {
	return Timer{Duration: seconds}
}

// Tick advances the timer by dt seconds unless it is paused.
func (t *Timer) Tick(dt float64) *Timer {
	t.justFinished = false
	if t.paused || t.finished || dt <= 0 {
		return t
	}
	t.Elapsed += dt
	if t.Elapsed >= t.Duration {
		t.Elapsed = t.Duration
		t.finished = true
		t.justFinished = true
	}
	return t
}

// Finished reports whether the timer has run its full duration.
func (t *Timer) Finished() bool {
	return t.finished
}

// JustFinished reports whether the last Tick completed the timer.
func (t *Timer) JustFinished() bool {
	return t.justFinished
}

func (t *Timer) Pause() {
	t.paused = true
}

func (t *Timer) Paused() bool {
	return t.paused
}

// Remaining returns the seconds left before the timer finishes.
func (t *Timer) Remaining() float64 {
	r := t.Duration - t.Elapsed
	if r < 0 {
		return 0
	}
	return r
}
