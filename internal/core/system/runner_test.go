package system_test

import (
	"testing"
	"time"

	coresys "github.com/doomenstein/doomenstein/internal/core/system"
)

type recorder struct {
	name  string
	phase coresys.Phase
	log   *[]string
}

func (r recorder) Phase() coresys.Phase { return r.phase }

func (r recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var log []string
	r := coresys.NewRunner()
	r.Register(recorder{"respawn", coresys.PhaseRespawn, &log})
	r.Register(recorder{"world", coresys.PhaseCollideWorld, &log})
	r.Register(recorder{"update-a", coresys.PhaseUpdate, &log})
	r.Register(recorder{"input", coresys.PhaseInput, &log})
	r.Register(recorder{"update-b", coresys.PhaseUpdate, &log})
	r.Register(recorder{"actors", coresys.PhaseCollideActors, &log})
	r.Register(recorder{"cleanup", coresys.PhaseCleanup, &log})

	r.Tick(50 * time.Millisecond)

	want := []string{"input", "update-a", "update-b", "actors", "world", "cleanup", "respawn"}
	if len(log) != len(want) {
		t.Fatalf("ran %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("ran %v, want %v", log, want)
		}
	}
}

func TestRunnerTickPhase(t *testing.T) {
	var log []string
	r := coresys.NewRunner()
	r.Register(recorder{"input", coresys.PhaseInput, &log})
	r.Register(recorder{"update", coresys.PhaseUpdate, &log})

	r.TickPhase(coresys.PhaseInput, time.Millisecond)
	if len(log) != 1 || log[0] != "input" {
		t.Fatalf("ran %v, want [input]", log)
	}
}

func TestPhaseString(t *testing.T) {
	if got := coresys.PhaseCollideWorld.String(); got != "collide_world" {
		t.Fatalf("got %q", got)
	}
	if got := coresys.Phase(99).String(); got != "unknown" {
		t.Fatalf("got %q", got)
	}
}

// stepClock advances by step on every read.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func TestRunnerStats(t *testing.T) {
	var log []string
	r := coresys.NewRunner()
	clock := &stepClock{step: time.Millisecond}
	r.SetClock(clock.now)
	r.Register(recorder{"update-a", coresys.PhaseUpdate, &log})
	r.Register(recorder{"update-b", coresys.PhaseUpdate, &log})
	r.Register(recorder{"input", coresys.PhaseInput, &log})

	if got := r.Tick(10 * time.Millisecond); got != 3*time.Millisecond {
		t.Fatalf("tick took %v, want 3ms", got)
	}
	r.Tick(2 * time.Millisecond)

	if r.Ticks() != 2 || r.Overruns() != 1 {
		t.Fatalf("ticks = %d overruns = %d, want 2 and 1", r.Ticks(), r.Overruns())
	}
	stats := r.Stats()
	want := []coresys.PhaseStat{
		{Phase: coresys.PhaseInput, Total: 2 * time.Millisecond, Mean: time.Millisecond},
		{Phase: coresys.PhaseUpdate, Total: 4 * time.Millisecond, Mean: 2 * time.Millisecond},
	}
	if len(stats) != len(want) {
		t.Fatalf("stats = %+v", stats)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Fatalf("stats[%d] = %+v, want %+v", i, stats[i], want[i])
		}
	}
}
