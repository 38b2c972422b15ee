package system

import (
	"time"

	"github.com/doomenstein/doomenstein/internal/core/event"
	coresys "github.com/doomenstein/doomenstein/internal/core/system"
)

// EventDispatchSystem delivers the previous tick's events at the start of
// the update. Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
