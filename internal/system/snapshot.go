package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/world"
)

// SnapshotSystem takes the render snapshot every few ticks. A headless run
// has no renderer to hand it to, so it logs a summary instead.
// Phase 7 (Persist).
type SnapshotSystem struct {
	m     *world.Map
	log   *zap.Logger
	every int64 // ticks
	tick  int64
	last  world.Snapshot
}

func NewSnapshotSystem(m *world.Map, every int64, log *zap.Logger) *SnapshotSystem {
	if every <= 0 {
		every = 1
	}
	return &SnapshotSystem{m: m, log: log, every: every}
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *SnapshotSystem) Update(_ time.Duration) {
	s.tick++
	if s.tick%s.every != 0 {
		return
	}
	s.last = s.m.Snapshot()
	dead := 0
	for _, a := range s.last.Actors {
		if a.Dead {
			dead++
		}
	}
	fields := []zap.Field{
		zap.String("map", s.last.Map),
		zap.Int64("tick", s.tick),
		zap.Int("actors", len(s.last.Actors)),
		zap.Int("dead", dead),
	}
	if len(s.last.Cameras) > 0 {
		cam := s.last.Cameras[0]
		fields = append(fields,
			zap.Float64("cam_x", cam.Position.X),
			zap.Float64("cam_y", cam.Position.Y),
			zap.Float64("cam_yaw", cam.Orientation.Yaw),
		)
	}
	s.log.Debug("snapshot", fields...)
}

// Last is the most recent snapshot taken.
func (s *SnapshotSystem) Last() world.Snapshot { return s.last }
