// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Radia Labs

package timeutil

import (
	"testing"
	"time"
)

func TestMockClockSleepRecords(t *testing.T) {
	start := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	clock.Sleep(100 * time.Millisecond)
	clock.Sleep(2 * time.Second)

	sleeps := clock.Sleeps()
	if len(sleeps) != 2 {
		t.Fatalf("recorded %d sleeps, want 2", len(sleeps))
	}
	if sleeps[0] != 100*time.Millisecond || sleeps[1] != 2*time.Second {
		t.Errorf("sleeps = %v", sleeps)
	}

	want := start.Add(100*time.Millisecond + 2*time.Second)
	if !clock.Now().Equal(want) {
		t.Errorf("Now() = %v, want %v", clock.Now(), want)
	}
}

func TestMockClockAdvance(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := NewMockClock(start)

	clock.Advance(5 * time.Minute)
	if got := clock.Since(start); got != 5*time.Minute {
		t.Errorf("Since(start) = %v, want 5m", got)
	}
	if len(clock.Sleeps()) != 0 {
		t.Error("Advance recorded a sleep")
	}
}

func TestMockClockAfterNeverBlocks(t *testing.T) {
	clock := NewMockClock(time.Unix(0, 0))

	select {
	case <-clock.After(time.Hour):
	default:
		t.Fatal("After channel was not pre-filled")
	}

	if sleeps := clock.Sleeps(); len(sleeps) != 1 || sleeps[0] != time.Hour {
		t.Errorf("sleeps = %v, want [1h]", sleeps)
	}
}

func TestRealClockBasics(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	if clock.Now().Before(before) {
		t.Error("RealClock.Now went backwards")
	}
	if clock.Since(before) < 0 {
		t.Error("RealClock.Since returned a negative duration")
	}
}
