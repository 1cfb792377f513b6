package income

import (
	"testing"
	"time"

	"github.com/louisbranch/clickforge/internal/clock"
	"github.com/louisbranch/clickforge/internal/scheduler"
)

func newTestEngine(t *testing.T) (*Engine, *clock.Manual, *scheduler.Scheduler) {
	t.Helper()
	clk := clock.NewManual(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	sched := scheduler.New()
	return NewEngine(clk, sched, time.Second), clk, sched
}

func TestRecalculate_FormulaComposition(t *testing.T) {
	e, _, _ := newTestEngine(t)

	e.SetParameters(100, 0, 0, 1)
	if got := e.FinalIncomePerTick(); got != 100 {
		t.Fatalf("FinalIncomePerTick() = %v, want 100", got)
	}

	e.AddPercentBonus(0.5)
	if got := e.FinalIncomePerTick(); got != 150 {
		t.Fatalf("FinalIncomePerTick() = %v, want 150 after +50%%", got)
	}

	e.SetGlobalMultiplier(2)
	if got := e.FinalIncomePerTick(); got != 300 {
		t.Fatalf("FinalIncomePerTick() = %v, want 300 after x2 global", got)
	}

	e.AddFlatBonus(50)
	// (100+50) * 1.5 * 2
	if got := e.FinalIncomePerTick(); got != 450 {
		t.Fatalf("FinalIncomePerTick() = %v, want 450 after +50 flat", got)
	}
}

func TestTicking_PublishesPerTickAmount(t *testing.T) {
	e, clk, sched := newTestEngine(t)
	e.SetParameters(10, 0, 0, 1)

	var credits []float64
	e.Generated.Subscribe(func(amount float64) { credits = append(credits, amount) })

	e.StartIncome()
	e.StartIncome() // re-entrant start is a no-op

	sched.Advance(clk.Advance(3 * time.Second))
	if len(credits) != 3 {
		t.Fatalf("ticks = %d, want 3", len(credits))
	}
	for _, c := range credits {
		if c != 10 {
			t.Fatalf("tick amount = %v, want 10", c)
		}
	}
}

func TestTicking_ZeroIncomeEmitsNothing(t *testing.T) {
	e, clk, sched := newTestEngine(t)

	fired := false
	e.Generated.Subscribe(func(float64) { fired = true })

	e.StartIncome()
	sched.Advance(clk.Advance(5 * time.Second))
	if fired {
		t.Fatal("income notification fired with zero per-tick amount")
	}
}

func TestStopIncome_CancelsPendingTick(t *testing.T) {
	e, clk, sched := newTestEngine(t)
	e.SetParameters(10, 0, 0, 1)

	ticks := 0
	e.Generated.Subscribe(func(float64) { ticks++ })

	e.StartIncome()
	e.StopIncome()
	e.StopIncome() // double stop is a no-op

	sched.Advance(clk.Advance(10 * time.Second))
	if ticks != 0 {
		t.Fatalf("ticks = %d after stop, want 0", ticks)
	}
	if e.Running() {
		t.Fatal("Running() = true after StopIncome")
	}
}

func TestPauseResume_Aliases(t *testing.T) {
	e, clk, sched := newTestEngine(t)
	e.SetParameters(5, 0, 0, 1)

	ticks := 0
	e.Generated.Subscribe(func(float64) { ticks++ })

	e.Resume()
	sched.Advance(clk.Advance(2 * time.Second))
	e.Pause()
	sched.Advance(clk.Advance(2 * time.Second))
	e.Resume()
	sched.Advance(clk.Advance(1 * time.Second))

	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3 (2 before pause, 1 after resume)", ticks)
	}
}

func TestCalculateOfflineEarnings(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.SetParameters(10, 0, 0, 1)

	tests := []struct {
		name       string
		seconds    float64
		efficiency float64
		want       float64
	}{
		{"one minute at half efficiency", 60, 0.5, 300},
		{"full efficiency", 10, 1.0, 100},
		{"zero gap", 0, 0.5, 0},
		{"negative gap absorbed", -5, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CalculateOfflineEarnings(tt.seconds, tt.efficiency); got != tt.want {
				t.Errorf("CalculateOfflineEarnings(%v, %v) = %v, want %v", tt.seconds, tt.efficiency, got, tt.want)
			}
		})
	}
}

func TestCalculateOfflineEarnings_IndependentOfRunningState(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.SetParameters(10, 0, 0, 1)

	stopped := e.CalculateOfflineEarnings(60, 0.5)
	e.StartIncome()
	running := e.CalculateOfflineEarnings(60, 0.5)
	if stopped != running {
		t.Fatalf("projection differs by state: stopped %v, running %v", stopped, running)
	}
}
