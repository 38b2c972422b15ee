package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput         Phase = iota // 0: apply queued player input
	PhasePreUpdate                  // 1: dispatch last tick's events
	PhaseUpdate                     // 2: death timers, physics, AI think
	PhaseCollideActors              // 3: actor vs actor
	PhaseCollideWorld               // 4: actor vs tiles
	PhaseCleanup                    // 5: reap garbage actors
	PhaseRespawn                    // 6: give every player controller a body
	PhasePersist                    // 7: hand kill batches to the writer

	phaseCount
)

var phaseNames = [...]string{
	PhaseInput:         "input",
	PhasePreUpdate:     "pre_update",
	PhaseUpdate:        "update",
	PhaseCollideActors: "collide_actors",
	PhaseCollideWorld:  "collide_world",
	PhaseCleanup:       "cleanup",
	PhaseRespawn:       "respawn",
	PhasePersist:       "persist",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
