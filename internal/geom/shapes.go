package geom

import "math"

type AABB2 struct{ Min, Max Vec2 }

func (b AABB2) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Nearest returns the point of b closest to p (p itself when inside).
func (b AABB2) Nearest(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, b.Min.X, b.Max.X), Clamp(p.Y, b.Min.Y, b.Max.Y)}
}

type AABB3 struct{ Min, Max Vec3 }

func (b AABB3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b AABB3) XY() AABB2 { return AABB2{b.Min.XY(), b.Max.XY()} }

// Cylinder is an upright cylinder: a disc of Radius around Center, extruded
// from MinZ to MaxZ.
type Cylinder struct {
	Center Vec2
	MinZ   float64
	MaxZ   float64
	Radius float64
}

func (c Cylinder) Contains(p Vec3) bool {
	return p.Z >= c.MinZ && p.Z <= c.MaxZ &&
		p.XY().DistanceSquared(c.Center) <= c.Radius*c.Radius
}

// OverlapsZ reports whether the vertical extents strictly overlap.
func (c Cylinder) OverlapsZ(o Cylinder) bool {
	return c.MinZ < o.MaxZ && o.MinZ < c.MaxZ
}

// DiscsOverlap reports whether two discs strictly overlap.
func DiscsOverlap(a Vec2, ra float64, b Vec2, rb float64) bool {
	r := ra + rb
	return a.DistanceSquared(b) < r*r
}

// PushDiscsApart moves both discs away from each other by half the overlap
// each. Coincident centers separate along +X. Returns false when the discs do
// not overlap.
func PushDiscsApart(a *Vec2, ra float64, b *Vec2, rb float64) bool {
	delta := b.Sub(*a)
	dist := delta.Length()
	overlap := ra + rb - dist
	if overlap <= 0 {
		return false
	}
	dir := Vec2{1, 0}
	if dist > 0 {
		dir = delta.Scale(1 / dist)
	}
	half := dir.Scale(overlap * 0.5)
	*a = a.Sub(half)
	*b = b.Add(half)
	return true
}

// PushDiscOutOfAABB2 moves the disc so it no longer overlaps box. A center
// inside the box leaves through the nearest face. Returns whether it moved.
func PushDiscOutOfAABB2(center *Vec2, radius float64, box AABB2) bool {
	p := *center
	if box.Contains(p) {
		exits := [4]struct {
			depth float64
			to    Vec2
		}{
			{p.X - box.Min.X, Vec2{box.Min.X - radius, p.Y}},
			{box.Max.X - p.X, Vec2{box.Max.X + radius, p.Y}},
			{p.Y - box.Min.Y, Vec2{p.X, box.Min.Y - radius}},
			{box.Max.Y - p.Y, Vec2{p.X, box.Max.Y + radius}},
		}
		best := 0
		for i := 1; i < len(exits); i++ {
			if exits[i].depth < exits[best].depth {
				best = i
			}
		}
		*center = exits[best].to
		return true
	}
	nearest := box.Nearest(p)
	delta := p.Sub(nearest)
	dist := delta.Length()
	if dist >= radius {
		return false
	}
	*center = nearest.Add(delta.Scale(radius / dist))
	return true
}

// RaycastResult describes the outcome of a ray query. On a miss Position is
// the ray end and Length the maximum length.
type RaycastResult struct {
	Hit      bool
	Position Vec3
	Normal   Vec3
	Length   float64
}

// Miss builds the non-impact result for a ray of the given length.
func Miss(start, dir Vec3, maxLength float64) RaycastResult {
	return RaycastResult{Position: start.Add(dir.Scale(maxLength)), Length: maxLength}
}

// RaycastCylinder intersects a ray with an upright cylinder. dir must be unit
// length. A start inside the cylinder hits at length 0 with normal -dir.
func RaycastCylinder(start, dir Vec3, maxLength float64, c Cylinder) RaycastResult {
	if c.Contains(start) {
		return RaycastResult{Hit: true, Position: start, Normal: dir.Neg()}
	}

	best := Miss(start, dir, maxLength)
	consider := func(t float64, normal Vec3) {
		if t < 0 || t > maxLength {
			return
		}
		if best.Hit && t >= best.Length {
			return
		}
		best = RaycastResult{Hit: true, Position: start.Add(dir.Scale(t)), Normal: normal, Length: t}
	}

	// caps
	if dir.Z < 0 && start.Z > c.MaxZ {
		t := (c.MaxZ - start.Z) / dir.Z
		p := start.Add(dir.Scale(t))
		if p.XY().DistanceSquared(c.Center) <= c.Radius*c.Radius {
			consider(t, Vec3{0, 0, 1})
		}
	}
	if dir.Z > 0 && start.Z < c.MinZ {
		t := (c.MinZ - start.Z) / dir.Z
		p := start.Add(dir.Scale(t))
		if p.XY().DistanceSquared(c.Center) <= c.Radius*c.Radius {
			consider(t, Vec3{0, 0, -1})
		}
	}

	// side
	d := dir.XY()
	a := d.LengthSquared()
	if a > 0 {
		f := start.XY().Sub(c.Center)
		b := 2 * f.Dot(d)
		cc := f.LengthSquared() - c.Radius*c.Radius
		disc := b*b - 4*a*cc
		if cc > 0 && disc >= 0 {
			t := (-b - math.Sqrt(disc)) / (2 * a)
			p := start.Add(dir.Scale(t))
			if p.Z >= c.MinZ && p.Z <= c.MaxZ {
				n := p.XY().Sub(c.Center).Normalized()
				consider(t, n.ToVec3(0))
			}
		}
	}
	return best
}
