package geom

import "math"

const degToRad = math.Pi / 180

func CosDegrees(deg float64) float64 { return math.Cos(deg * degToRad) }
func SinDegrees(deg float64) float64 { return math.Sin(deg * degToRad) }

func Atan2Degrees(y, x float64) float64 { return math.Atan2(y, x) / degToRad }

// EulerAngles is an orientation in degrees. Yaw turns about +Z, pitch about
// the left axis (positive looks down), roll about forward.
type EulerAngles struct {
	Yaw   float64
	Pitch float64
	Roll  float64
}

// Vectors returns the forward, left and up basis for the orientation.
func (e EulerAngles) Vectors() (fwd, left, up Vec3) {
	cy, sy := CosDegrees(e.Yaw), SinDegrees(e.Yaw)
	cp, sp := CosDegrees(e.Pitch), SinDegrees(e.Pitch)
	cr, sr := CosDegrees(e.Roll), SinDegrees(e.Roll)

	fwd = Vec3{cy * cp, sy * cp, -sp}
	left = Vec3{-sy*cr + cy*sp*sr, cy*cr + sy*sp*sr, cp * sr}
	up = Vec3{sy*sr + cy*sp*cr, -cy*sr + sy*sp*cr, cp * cr}
	return fwd, left, up
}

// Forward is the first basis vector of Vectors.
func (e EulerAngles) Forward() Vec3 {
	cp := CosDegrees(e.Pitch)
	return Vec3{CosDegrees(e.Yaw) * cp, SinDegrees(e.Yaw) * cp, -SinDegrees(e.Pitch)}
}

// ShortestAngularDisplacement returns to-from wrapped into (-180, 180].
func ShortestAngularDisplacement(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}
	return d
}

// TurnTowardDegrees rotates current toward goal by at most maxDelta degrees.
func TurnTowardDegrees(current, goal, maxDelta float64) float64 {
	d := ShortestAngularDisplacement(current, goal)
	if math.Abs(d) <= maxDelta {
		return current + d
	}
	if d > 0 {
		return current + maxDelta
	}
	return current - maxDelta
}

// AngleBetweenDegrees2D is the unsigned angle between a and b. Zero-length
// inputs yield 0.
func AngleBetweenDegrees2D(a, b Vec2) float64 {
	na, nb := a.Normalized(), b.Normalized()
	if na == (Vec2{}) || nb == (Vec2{}) {
		return 0
	}
	return math.Acos(Clamp(na.Dot(nb), -1, 1)) / degToRad
}
