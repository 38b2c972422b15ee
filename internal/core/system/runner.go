package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order. It also keeps wall-clock totals per phase.
type Runner struct {
	systems []System
	sorted  bool

	now      func() time.Time
	ticks    uint64
	overruns uint64
	spent    [phaseCount]time.Duration
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		now:     time.Now,
	}
}

// SetClock replaces the wall clock used for phase timings.
func (r *Runner) SetClock(now func() time.Time) { r.now = now }

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once and returns the wall time it took. A tick
// slower than dt counts as an overrun.
func (r *Runner) Tick(dt time.Duration) time.Duration {
	r.ensureSorted()
	start := r.now()
	last := start
	for _, s := range r.systems {
		s.Update(dt)
		t := r.now()
		if p := s.Phase(); p >= 0 && p < phaseCount {
			r.spent[p] += t.Sub(last)
		}
		last = t
	}
	r.ticks++
	elapsed := last.Sub(start)
	if elapsed > dt {
		r.overruns++
	}
	return elapsed
}

// TickPhase runs only the systems registered for phase. It is not counted
// as a tick.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Len is the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

// Ticks is the number of completed Tick calls.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Overruns is the number of ticks that took longer than their dt.
func (r *Runner) Overruns() uint64 { return r.overruns }

// PhaseStat is the accumulated wall time of one phase.
type PhaseStat struct {
	Phase Phase
	Total time.Duration
	Mean  time.Duration // per tick
}

// Stats lists every phase that has at least one system, in phase order.
func (r *Runner) Stats() []PhaseStat {
	var used [phaseCount]bool
	for _, s := range r.systems {
		if p := s.Phase(); p >= 0 && p < phaseCount {
			used[p] = true
		}
	}
	var out []PhaseStat
	for p := Phase(0); p < phaseCount; p++ {
		if !used[p] {
			continue
		}
		st := PhaseStat{Phase: p, Total: r.spent[p]}
		if r.ticks > 0 {
			st.Mean = st.Total / time.Duration(r.ticks)
		}
		out = append(out, st)
	}
	return out
}

func (r *Runner) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].Phase() < r.systems[j].Phase()
	})
	r.sorted = true
}
