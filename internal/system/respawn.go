package system

import (
	"time"

	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/world"
)

// RespawnSystem gives players without a live actor a new one, then moves
// the player cameras. Phase 6 (Respawn).
type RespawnSystem struct {
	m *world.Map
}

func NewRespawnSystem(m *world.Map) *RespawnSystem {
	return &RespawnSystem{m: m}
}

func (s *RespawnSystem) Phase() coresys.Phase { return coresys.PhaseRespawn }

func (s *RespawnSystem) Update(_ time.Duration) {
	s.m.RespawnPlayers()
	s.m.UpdateCameras()
}
