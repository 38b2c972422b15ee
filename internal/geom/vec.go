package geom

import "math"

// Vec2 is a point or direction in the horizontal plane.
type Vec2 struct{ X, Y float64 }

// Vec3 is a world-space point or direction. Z is up.
type Vec3 struct{ X, Y, Z float64 }

func (a Vec2) Add(b Vec2) Vec2                { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2                { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2           { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Dot(b Vec2) float64             { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LengthSquared() float64         { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Length() float64                { return math.Sqrt(a.LengthSquared()) }
func (a Vec2) ToVec3(z float64) Vec3          { return Vec3{a.X, a.Y, z} }
func (a Vec2) DistanceSquared(b Vec2) float64 { return a.Sub(b).LengthSquared() }

// Normalized returns the unit vector, or the zero vector for zero length.
func (a Vec2) Normalized() Vec2 {
	l := a.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// OrientationDegrees is the angle of a measured counter-clockwise from +X.
func (a Vec2) OrientationDegrees() float64 {
	return Atan2Degrees(a.Y, a.X)
}

func (a Vec3) Add(b Vec3) Vec3        { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3        { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3   { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func (a Vec3) Neg() Vec3              { return Vec3{-a.X, -a.Y, -a.Z} }
func (a Vec3) Dot(b Vec3) float64     { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Vec3) LengthSquared() float64 { return a.Dot(a) }
func (a Vec3) Length() float64        { return math.Sqrt(a.LengthSquared()) }
func (a Vec3) XY() Vec2               { return Vec2{a.X, a.Y} }

// Normalized returns the unit vector, or the zero vector for zero length.
func (a Vec3) Normalized() Vec3 {
	l := a.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// WithXY replaces the horizontal components, keeping Z.
func (a Vec3) WithXY(xy Vec2) Vec3 { return Vec3{xy.X, xy.Y, a.Z} }

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b; t is not clamped.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }
