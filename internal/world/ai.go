package world

import (
	"math"

	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// contactEpsilon is the slack added to radii for reach and sight checks.
const contactEpsilon = 0.1

// ClosestVisibleEnemy returns the hostile actor nearest to a on the plane
// that is inside a's sight radius and cone and that a line of sight from a's
// eye actually reaches. Owned actors are never candidates.
func (m *Map) ClosestVisibleEnemy(a *Actor) *Actor {
	sight := a.def.AI
	r2 := sight.SightRadius * sight.SightRadius
	halfCone := sight.SightAngle * 0.5
	fwd := a.Forward().XY()
	eye := a.EyePosition()

	var best *Actor
	bestD2 := math.MaxFloat64
	m.EachActor(func(o *Actor) bool {
		if o == a || o.dead || o.Owned() || !a.faction.Hostile(o.faction) {
			return true
		}
		to := o.Position.XY().Sub(a.Position.XY())
		d2 := to.LengthSquared()
		if d2 > r2 || d2 >= bestD2 {
			return true
		}
		if geom.AngleBetweenDegrees2D(fwd, to) > halfCone {
			return true
		}
		if !m.canSee(a, eye, o, sight.SightRadius) {
			return true
		}
		best, bestD2 = o, d2
		return true
	})
	return best
}

// canSee casts from eye toward o's eye and accepts the impact only if it lands
// within o's disc.
func (m *Map) canSee(a *Actor, eye geom.Vec3, o *Actor, maxLength float64) bool {
	dir := o.EyePosition().Sub(eye).Normalized()
	if dir == (geom.Vec3{}) {
		return true
	}
	res, _ := m.RaycastAll(eye, dir, maxLength, a.handle)
	if !res.Hit {
		return false
	}
	reach := o.Radius() + contactEpsilon
	return res.Position.XY().DistanceSquared(o.Position.XY()) <= reach*reach
}

// think runs one AI decision for the possessed actor: keep or acquire a
// target, turn toward it, close in, and swing when in melee reach.
func (c *Controller) think(dt float64) {
	a := c.Actor()
	if a == nil || a.dead {
		return
	}
	m := c.m

	t := m.Resolve(c.target)
	if t == nil || t.dead {
		c.target = ecs.InvalidHandle
		t = m.ClosestVisibleEnemy(a)
		if t == nil {
			return
		}
		c.target = t.handle
	}

	to := t.Position.Sub(a.Position)
	to.Z = 0
	a.TurnInDirection(geom.Atan2Degrees(to.Y, to.X), a.def.Physics.TurnSpeed*dt)

	dist := to.Length()
	if dist > a.Radius()+t.Radius()+contactEpsilon {
		a.MoveInDirection(a.Forward(), a.def.Physics.RunSpeed)
		a.PlayAnimation(data.AnimWalk, false)
	}

	w := a.CurrentWeapon()
	if w == nil || w.def.Melee.Count <= 0 {
		return
	}
	if dist < w.def.Melee.Range+t.Radius() {
		w.Fire()
		a.PlayAnimation(data.AnimAttack, true)
	}
}
