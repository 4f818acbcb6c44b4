package service

import (
	"math"
	"testing"
	"time"
)

var timerBase = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func TestTimer_FullCycle(t *testing.T) {
	tm := NewExerciseTimer(5)
	if tm.Total() != 5*time.Minute {
		t.Fatalf("expected 5m total, got %s", tm.Total())
	}
	if tm.Running() {
		t.Error("a new timer must be stopped")
	}
	if tm.Remaining(timerBase) != 5*time.Minute {
		t.Errorf("expected full time before start, got %s", tm.Remaining(timerBase))
	}

	tm.Start(timerBase)
	if !tm.Running() {
		t.Fatal("expected running after Start")
	}

	at := timerBase.Add(90 * time.Second)
	if got := tm.Remaining(at); got != 3*time.Minute+30*time.Second {
		t.Errorf("expected 3m30s remaining, got %s", got)
	}
	if got := tm.Progress(at); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected progress 0.3, got %v", got)
	}

	done := timerBase.Add(6 * time.Minute)
	if !tm.Done(done) {
		t.Error("expected done after the deadline")
	}
	if got := tm.Progress(done); got != 1 {
		t.Errorf("expected progress 1 when done, got %v", got)
	}
}

func TestTimer_PauseResume(t *testing.T) {
	tm := NewExerciseTimer(2)
	tm.Start(timerBase)
	tm.Pause(timerBase.Add(30 * time.Second))

	if tm.Running() {
		t.Fatal("expected stopped after Pause")
	}
	later := timerBase.Add(time.Hour)
	if got := tm.Remaining(later); got != 90*time.Second {
		t.Errorf("paused time must not drain, got %s", got)
	}

	tm.Start(later)
	if got := tm.Remaining(later.Add(10 * time.Second)); got != 80*time.Second {
		t.Errorf("expected 80s after resume, got %s", got)
	}
}

func TestTimer_RemainingRoundsUp(t *testing.T) {
	tm := NewExerciseTimer(1)
	tm.Start(timerBase)

	at := timerBase.Add(59*time.Second + 700*time.Millisecond)
	if got := tm.Remaining(at); got != time.Second {
		t.Errorf("a 0.3s remainder must read as one second, got %s", got)
	}
	if tm.Done(at) {
		t.Error("not done while a remainder is left")
	}
}

func TestTimer_Reset(t *testing.T) {
	tm := NewExerciseTimer(3)
	tm.Start(timerBase)
	tm.Reset()

	if tm.Running() {
		t.Error("expected stopped after Reset")
	}
	if tm.Remaining(timerBase) != 3*time.Minute {
		t.Errorf("expected full time after Reset, got %s", tm.Remaining(timerBase))
	}
	if tm.Done(timerBase.Add(time.Hour)) {
		t.Error("a reset timer is not done")
	}
}

func TestTimer_NoOps(t *testing.T) {
	tm := NewExerciseTimer(1)
	tm.Pause(timerBase) // pause before start

	tm.Start(timerBase)
	end := tm.Remaining(timerBase.Add(10 * time.Second))
	tm.Start(timerBase.Add(20 * time.Second)) // start while running
	if got := tm.Remaining(timerBase.Add(10 * time.Second)); got != end {
		t.Errorf("Start while running must not move the deadline: %s vs %s", got, end)
	}

	expired := timerBase.Add(2 * time.Minute)
	tm.Pause(expired)
	tm.Start(expired) // restart after finish is a no-op
	if tm.Running() {
		t.Error("a finished timer must not restart without Reset")
	}
}

func TestTimer_FlooredAtOneSecond(t *testing.T) {
	tm := NewExerciseTimer(0)
	if tm.Total() != time.Second {
		t.Errorf("expected 1s floor, got %s", tm.Total())
	}
}
