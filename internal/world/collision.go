package world

import (
	"github.com/doomenstein/doomenstein/internal/geom"
)

// neighbourOffsets lists the eight surrounding tiles, cardinal first.
var neighbourOffsets = [8][2]int{
	{1, 0}, {0, 1}, {-1, 0}, {0, -1},
	{1, 1}, {-1, 1}, {-1, -1}, {1, -1},
}

// CollideActors resolves every unordered pair of actors once, lower slot
// first.
func (m *Map) CollideActors() {
	n := m.actors.Len()
	for i := 0; i < n; i++ {
		a, _ := m.actors.At(i)
		if a == nil {
			continue
		}
		for j := i + 1; j < n; j++ {
			b, _ := m.actors.At(j)
			if b == nil {
				continue
			}
			m.collidePair(a, b)
		}
	}
}

// collidePair applies projectile damage when exactly one side is owned and
// the other is not its owner, and pushes the discs apart otherwise.
func (m *Map) collidePair(a, b *Actor) {
	if a.dead || b.dead {
		return
	}
	if !a.def.Collision.CollidesWithActors || !b.def.Collision.CollidesWithActors {
		return
	}
	if !a.cylinder.OverlapsZ(b.cylinder) {
		return
	}
	pa, pb := a.Position.XY(), b.Position.XY()
	ra, rb := a.Radius(), b.Radius()
	if !geom.DiscsOverlap(pa, ra, pb, rb) {
		return
	}

	if a.Owned() != b.Owned() {
		proj, victim := a, b
		if b.Owned() {
			proj, victim = b, a
		}
		if proj.owner == victim.handle {
			return
		}
		m.projectileHit(proj, victim)
		return
	}

	geom.PushDiscsApart(&pa, ra, &pb, rb)
	a.Position = a.Position.WithXY(pa)
	b.Position = b.Position.WithXY(pb)
	a.refreshCylinder()
	b.refreshCylinder()
}

// projectileHit damages victim on behalf of the projectile's owner and
// spends the projectile.
func (m *Map) projectileHit(proj, victim *Actor) {
	c := proj.def.Collision
	amount := m.roll(c.DamageOnCollide, SourceProjectile, proj.faction, victim.faction)
	victim.Damage(amount, proj.owner)
	victim.AddImpulse(proj.Forward().Scale(c.ImpulseOnCollide))
	proj.die()
}

// CollideActorsWithMap pushes every world-colliding actor out of the solid
// tiles around it, then clamps it between floor and ceiling.
func (m *Map) CollideActorsWithMap() {
	m.EachActor(func(a *Actor) bool {
		if a.def.Collision.CollidesWithWorld {
			m.collideWithMap(a)
		}
		return true
	})
}

func (m *Map) collideWithMap(a *Actor) {
	x, y := TileCoords(a.Position)
	pos := a.Position.XY()
	r := a.Radius()
	pushed := false
	for _, off := range neighbourOffsets {
		t := m.TileAt(x+off[0], y+off[1])
		if t == nil || !t.Solid() {
			continue
		}
		if geom.PushDiscOutOfAABB2(&pos, r, t.Bounds.XY()) {
			pushed = true
		}
	}
	a.Position = a.Position.WithXY(pos)

	h := a.def.Collision.Height
	if a.Position.Z+h > 1 {
		a.Position.Z = 1 - h
		pushed = true
	}
	if a.Position.Z < 0 {
		a.Position.Z = 0
		pushed = true
	}
	if pushed && a.def.Collision.DieOnCollide {
		a.die()
	}
	a.refreshCylinder()
}
