package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/world"
)

// CleanupSystem frees actors flagged garbage at tick end. Phase 5 (Cleanup).
type CleanupSystem struct {
	m     *world.Map
	log   *zap.Logger
	swept int
}

func NewCleanupSystem(m *world.Map, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{m: m, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	n := s.m.SweepGarbage()
	if n == 0 {
		return
	}
	s.swept += n
	s.log.Debug("garbage swept", zap.Int("actors", n), zap.Int("live", s.m.ActorCount()))
}

// Swept is the number of actors freed so far.
func (s *CleanupSystem) Swept() int { return s.swept }
