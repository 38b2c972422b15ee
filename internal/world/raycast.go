package world

import (
	"math"

	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// raycastStep is the marching distance of the tile XY cast.
const raycastStep = 0.01

// RaycastAll casts against tile walls, the floor and ceiling planes, and
// actor cylinders, and returns the nearest hit. Equal lengths resolve in that
// order. attacker, its projectiles and dead actors are never struck. The
// handle is that of the struck actor, or InvalidHandle when something else
// was nearer. dir must be unit length.
//
// A start inside a solid tile reports no impact, positioned at start with
// normal -dir.
func (m *Map) RaycastAll(start, dir geom.Vec3, maxLength float64, attacker ecs.Handle) (geom.RaycastResult, ecs.Handle) {
	if t := m.TileAt(TileCoords(start)); t != nil && t.Solid() && t.Bounds.Contains(start) {
		return geom.RaycastResult{Position: start, Normal: dir.Neg()}, ecs.InvalidHandle
	}

	best := geom.Miss(start, dir, maxLength)
	struck := ecs.InvalidHandle
	if r := m.RaycastTilesXY(start, dir, maxLength); r.Hit && r.Length < best.Length {
		best = r
	}
	if r := m.RaycastTilesZ(start, dir, maxLength); r.Hit && r.Length < best.Length {
		best = r
	}
	if r, h := m.RaycastActors(start, dir, maxLength, attacker); r.Hit && r.Length < best.Length {
		best, struck = r, h
	}
	return best, struck
}

// RaycastTilesXY marches the ray in fixed steps and stops on entry into a
// solid tile while inside the tile slab's height. The normal points back
// across the face that was crossed.
func (m *Map) RaycastTilesXY(start, dir geom.Vec3, maxLength float64) geom.RaycastResult {
	steps := int(math.Ceil(maxLength / raycastStep))
	prev := start
	for k := 1; k <= steps; k++ {
		length := float64(k) * raycastStep
		p := start.Add(dir.Scale(length))
		x, y := TileCoords(p)
		t := m.TileAt(x, y)
		if t != nil && t.Solid() && p.Z >= 0 && p.Z <= 1 && !t.Bounds.XY().Contains(prev.XY()) {
			px, py := TileCoords(prev)
			return geom.RaycastResult{
				Hit:      true,
				Position: p,
				Normal:   geom.Vec3{X: float64(px - x), Y: float64(py - y)},
				Length:   length,
			}
		}
		prev = p
	}
	return geom.Miss(start, dir, maxLength)
}

// RaycastTilesZ intersects the floor (z=0) or ceiling (z=1) plane, whichever
// the ray heads toward. Crossings outside the map are misses, as is any ray
// with no vertical component.
func (m *Map) RaycastTilesZ(start, dir geom.Vec3, maxLength float64) geom.RaycastResult {
	if dir.Z == 0 || maxLength <= 0 {
		return geom.Miss(start, dir, maxLength)
	}
	var t float64
	normal := geom.Vec3{Z: 1}
	if dir.Z > 0 {
		t = (1 - start.Z) / (dir.Z * maxLength)
		normal = geom.Vec3{Z: -1}
	} else {
		t = -start.Z / (dir.Z * maxLength)
	}
	if t < 0 || t > 1 {
		return geom.Miss(start, dir, maxLength)
	}
	length := t * maxLength
	p := start.Add(dir.Scale(length))
	if !m.IsPositionInBounds(p, 0) {
		return geom.Miss(start, dir, maxLength)
	}
	return geom.RaycastResult{Hit: true, Position: p, Normal: normal, Length: length}
}

// RaycastActors returns the nearest actor cylinder hit and the actor's
// handle. Only actors that collide with actors can be struck.
func (m *Map) RaycastActors(start, dir geom.Vec3, maxLength float64, attacker ecs.Handle) (geom.RaycastResult, ecs.Handle) {
	best := geom.Miss(start, dir, maxLength)
	struck := ecs.InvalidHandle
	m.actors.Each(func(h ecs.Handle, a *Actor) bool {
		if h == attacker || a.dead || !a.def.Collision.CollidesWithActors {
			return true
		}
		if attacker.IsValid() && a.owner == attacker {
			return true
		}
		r := geom.RaycastCylinder(start, dir, maxLength, a.cylinder)
		if r.Hit && r.Length < best.Length {
			best, struck = r, h
		}
		return true
	})
	return best, struck
}
