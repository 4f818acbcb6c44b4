package service

import "time"

// ExerciseTimer is a drift-free countdown for a guided activity. Remaining
// time is always derived from an absolute deadline, so late ticks from the
// caller never accumulate error. Callers pass in the current time, which
// keeps the timer trivially testable.
type ExerciseTimer struct {
	total   time.Duration
	left    time.Duration // remaining while paused
	endAt   time.Time     // zero when not running
	started bool
}

// NewExerciseTimer creates a stopped timer for the given minutes, floored at
// one second.
func NewExerciseTimer(minutes float64) *ExerciseTimer {
	total := time.Duration(minutes * float64(time.Minute)).Round(time.Second)
	if total < time.Second {
		total = time.Second
	}
	return &ExerciseTimer{total: total, left: total}
}

func (t *ExerciseTimer) Total() time.Duration { return t.total }

func (t *ExerciseTimer) Running() bool { return !t.endAt.IsZero() }

// Start begins or resumes the countdown from whatever time is left. Starting
// a running or finished timer is a no-op.
func (t *ExerciseTimer) Start(now time.Time) {
	if t.Running() || t.Remaining(now) <= 0 {
		return
	}
	t.endAt = now.Add(t.left)
	t.started = true
}

// Pause freezes the remaining time. Pausing a stopped timer is a no-op.
func (t *ExerciseTimer) Pause(now time.Time) {
	if !t.Running() {
		return
	}
	t.left = t.remainingRunning(now)
	t.endAt = time.Time{}
}

// Reset returns the timer to its full duration, stopped.
func (t *ExerciseTimer) Reset() {
	t.endAt = time.Time{}
	t.left = t.total
	t.started = false
}

// Remaining reports time left, rounded up to whole seconds while running.
func (t *ExerciseTimer) Remaining(now time.Time) time.Duration {
	if t.Running() {
		return t.remainingRunning(now)
	}
	return t.left
}

func (t *ExerciseTimer) remainingRunning(now time.Time) time.Duration {
	d := t.endAt.Sub(now)
	if d <= 0 {
		return 0
	}
	// round up so a 0.3s remainder still shows one second on a dial
	return ((d + time.Second - 1) / time.Second) * time.Second
}

// Progress is completion in [0, 1].
func (t *ExerciseTimer) Progress(now time.Time) float64 {
	rem := t.Remaining(now)
	p := 1 - float64(rem)/float64(t.total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Done reports whether a started countdown has run out.
func (t *ExerciseTimer) Done(now time.Time) bool {
	return t.started && t.Remaining(now) <= 0
}
