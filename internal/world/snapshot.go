package world

import (
	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// ActorView is the render state of one actor.
type ActorView struct {
	Handle      ecs.Handle
	Name        string
	Faction     data.Faction
	Position    geom.Vec3
	Orientation geom.EulerAngles
	Cylinder    geom.Cylinder
	Animation   data.Animation
	AnimTime    float64
	Health      float64
	Dead        bool
	Visible     bool
}

// CameraView is a player's viewpoint.
type CameraView struct {
	Player      int
	Actor       ecs.Handle
	FreeFly     bool
	Position    geom.Vec3
	Orientation geom.EulerAngles
	FOV         float64
}

// Snapshot is what a renderer needs for one frame. It shares nothing with the
// map.
type Snapshot struct {
	Map      string
	Actors   []ActorView
	Cameras  []CameraView
	Lighting Lighting
}

func (m *Map) Snapshot() Snapshot {
	s := Snapshot{
		Map:      m.def.Name,
		Actors:   make([]ActorView, 0, m.actors.Live()),
		Lighting: m.Lighting(),
	}
	m.actors.Each(func(h ecs.Handle, a *Actor) bool {
		s.Actors = append(s.Actors, ActorView{
			Handle:      h,
			Name:        a.def.Name,
			Faction:     a.faction,
			Position:    a.Position,
			Orientation: a.Orientation,
			Cylinder:    a.cylinder,
			Animation:   a.anim,
			AnimTime:    a.animTime,
			Health:      a.health,
			Dead:        a.dead,
			Visible:     a.def.Visible,
		})
		return true
	})
	for _, c := range m.Players() {
		s.Cameras = append(s.Cameras, CameraView{
			Player:      c.index,
			Actor:       c.actor,
			FreeFly:     c.cameraMode,
			Position:    c.Position,
			Orientation: c.Orientation,
			FOV:         c.FOV,
		})
	}
	return s
}
