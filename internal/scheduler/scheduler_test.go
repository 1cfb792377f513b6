package scheduler

import (
	"testing"
	"time"
)

func at(sec int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func TestAdvance_FiresDueTasksInOrder(t *testing.T) {
	s := New()
	var order []string

	s.Schedule(at(2), func(time.Time) { order = append(order, "second") })
	s.Schedule(at(1), func(time.Time) { order = append(order, "first") })
	s.Schedule(at(10), func(time.Time) { order = append(order, "late") })

	fired := s.Advance(at(5))
	if fired != 2 {
		t.Fatalf("Advance() fired = %d, want 2", fired)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("fire order = %v, want [first second]", order)
	}
	if s.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", s.Pending())
	}
}

func TestCancel_PreventsFiring(t *testing.T) {
	s := New()
	fired := false
	token := s.Schedule(at(1), func(time.Time) { fired = true })

	if !s.Cancel(token) {
		t.Fatal("Cancel() = false, want true for pending task")
	}
	if s.Cancel(token) {
		t.Fatal("Cancel() = true for already-cancelled token")
	}
	s.Advance(at(10))
	if fired {
		t.Fatal("cancelled task fired")
	}
}

func TestScheduleRepeating_CatchesUpMissedIntervals(t *testing.T) {
	s := New()
	count := 0
	s.ScheduleRepeating(at(1), time.Second, func(time.Time) { count++ })

	s.Advance(at(3))
	if count != 3 {
		t.Fatalf("ticks after 3s = %d, want 3", count)
	}

	s.Advance(at(3))
	if count != 3 {
		t.Fatalf("re-advancing to the same instant fired extra ticks: %d", count)
	}
}

func TestCancel_RepeatingTaskFromItsOwnCallback(t *testing.T) {
	s := New()
	count := 0
	var token Token
	token = s.ScheduleRepeating(at(1), time.Second, func(time.Time) {
		count++
		if count == 2 {
			s.Cancel(token)
		}
	})

	s.Advance(at(10))
	if count != 2 {
		t.Fatalf("ticks = %d, want 2 after self-cancel", count)
	}
	if s.Pending() != 0 {
		t.Fatalf("Pending() = %d, want 0", s.Pending())
	}
}

func TestAdvance_CallbackSchedulingDueWorkFiresSameCall(t *testing.T) {
	s := New()
	chained := false
	s.Schedule(at(1), func(now time.Time) {
		s.Schedule(now, func(time.Time) { chained = true })
	})

	s.Advance(at(1))
	if !chained {
		t.Fatal("task scheduled for the current instant did not fire in the same Advance")
	}
}
