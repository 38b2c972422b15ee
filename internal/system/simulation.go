package system

import (
	"time"

	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/world"
)

// ActorUpdateSystem advances death timers, physics and AI. Phase 2 (Update).
type ActorUpdateSystem struct {
	m *world.Map
}

func NewActorUpdateSystem(m *world.Map) *ActorUpdateSystem {
	return &ActorUpdateSystem{m: m}
}

func (s *ActorUpdateSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ActorUpdateSystem) Update(dt time.Duration) {
	s.m.UpdateActors(dt.Seconds())
}

// ActorCollisionSystem resolves actor pairs. Phase 3 (CollideActors).
type ActorCollisionSystem struct {
	m *world.Map
}

func NewActorCollisionSystem(m *world.Map) *ActorCollisionSystem {
	return &ActorCollisionSystem{m: m}
}

func (s *ActorCollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollideActors }

func (s *ActorCollisionSystem) Update(_ time.Duration) {
	s.m.CollideActors()
}

// WorldCollisionSystem pushes actors out of walls, floor and ceiling.
// Phase 4 (CollideWorld).
type WorldCollisionSystem struct {
	m *world.Map
}

func NewWorldCollisionSystem(m *world.Map) *WorldCollisionSystem {
	return &WorldCollisionSystem{m: m}
}

func (s *WorldCollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollideWorld }

func (s *WorldCollisionSystem) Update(_ time.Duration) {
	s.m.CollideActorsWithMap()
}
