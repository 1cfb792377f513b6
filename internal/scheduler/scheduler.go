// Package scheduler provides a polled task queue for time-driven
// progression transitions (income ticks, fever expiry, auto-save).
//
// Tasks are a sorted set of (fire time, token) pairs. The host loop calls
// Advance once per iteration with the current time; due tasks fire in
// fire-time order. Cancel removes a token before it fires, and a cancelled
// task never fires afterwards.
package scheduler

import (
	"sort"
	"time"
)

// Token identifies a scheduled task for cancellation.
type Token uint64

// NoToken is the zero Token; it never identifies a live task.
const NoToken Token = 0

type task struct {
	token    Token
	fireAt   time.Time
	interval time.Duration // zero for one-shot tasks
	fn       func(now time.Time)
}

// Scheduler holds pending tasks. It is not safe for concurrent use; the
// host guarantees a single mutating context.
type Scheduler struct {
	nextToken Token
	tasks     []task
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Schedule registers fn to fire once at fireAt.
func (s *Scheduler) Schedule(fireAt time.Time, fn func(now time.Time)) Token {
	return s.add(fireAt, 0, fn)
}

// ScheduleRepeating registers fn to fire at fireAt and then every interval
// after, keeping the same token across repetitions.
func (s *Scheduler) ScheduleRepeating(fireAt time.Time, interval time.Duration, fn func(now time.Time)) Token {
	return s.add(fireAt, interval, fn)
}

func (s *Scheduler) add(fireAt time.Time, interval time.Duration, fn func(now time.Time)) Token {
	if fn == nil {
		return NoToken
	}
	s.nextToken++
	t := task{token: s.nextToken, fireAt: fireAt, interval: interval, fn: fn}
	s.insert(t)
	return t.token
}

func (s *Scheduler) insert(t task) {
	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].fireAt.After(t.fireAt)
	})
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

// Cancel removes the task identified by token. It reports whether a
// pending task was removed.
func (s *Scheduler) Cancel(token Token) bool {
	if token == NoToken {
		return false
	}
	for i, t := range s.tasks {
		if t.token == token {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Advance fires every task due at or before now, in fire-time order, and
// returns the number of invocations. Callbacks may schedule or cancel
// tasks; newly due work scheduled by a callback fires within the same
// Advance call.
func (s *Scheduler) Advance(now time.Time) int {
	fired := 0
	for {
		if len(s.tasks) == 0 || s.tasks[0].fireAt.After(now) {
			return fired
		}
		t := s.tasks[0]
		s.tasks = s.tasks[1:]
		if t.interval > 0 {
			next := t
			next.fireAt = t.fireAt.Add(t.interval)
			s.insert(next)
		}
		t.fn(now)
		fired++
	}
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}
