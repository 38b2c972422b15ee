package geom_test

import (
	"math"
	"testing"

	"github.com/doomenstein/doomenstein/internal/geom"
	"pgregory.net/rapid"
)

const eps = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func nearVec3(a, b geom.Vec3, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

func TestEulerVectors(t *testing.T) {
	tests := []struct {
		name string
		e    geom.EulerAngles
		fwd  geom.Vec3
		left geom.Vec3
		up   geom.Vec3
	}{
		{"identity", geom.EulerAngles{}, geom.Vec3{X: 1}, geom.Vec3{Y: 1}, geom.Vec3{Z: 1}},
		{"yaw 90", geom.EulerAngles{Yaw: 90}, geom.Vec3{Y: 1}, geom.Vec3{X: -1}, geom.Vec3{Z: 1}},
		{"pitch down", geom.EulerAngles{Pitch: 90}, geom.Vec3{Z: -1}, geom.Vec3{Y: 1}, geom.Vec3{X: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fwd, left, up := tc.e.Vectors()
			if !nearVec3(fwd, tc.fwd, 1e-12) || !nearVec3(left, tc.left, 1e-12) || !nearVec3(up, tc.up, 1e-12) {
				t.Fatalf("got %v %v %v", fwd, left, up)
			}
			if !nearVec3(tc.e.Forward(), fwd, 1e-12) {
				t.Fatalf("Forward %v differs from Vectors %v", tc.e.Forward(), fwd)
			}
		})
	}
}

func TestTurnTowardDegrees(t *testing.T) {
	tests := []struct {
		cur, goal, max, want float64
	}{
		{0, 90, 30, 30},
		{0, 90, 180, 90},
		{10, -10, 5, 5},
		{170, -170, 50, 190},
		{0, 0, 10, 0},
	}
	for _, tc := range tests {
		if got := geom.TurnTowardDegrees(tc.cur, tc.goal, tc.max); !near(got, tc.want, eps) {
			t.Fatalf("TurnTowardDegrees(%v,%v,%v) = %v, want %v", tc.cur, tc.goal, tc.max, got, tc.want)
		}
	}
}

func TestAngleBetweenDegrees2D(t *testing.T) {
	if got := geom.AngleBetweenDegrees2D(geom.Vec2{X: 1}, geom.Vec2{Y: 2}); !near(got, 90, 1e-9) {
		t.Fatalf("got %v", got)
	}
	if got := geom.AngleBetweenDegrees2D(geom.Vec2{}, geom.Vec2{Y: 2}); got != 0 {
		t.Fatalf("zero vector angle = %v", got)
	}
}

func TestPushDiscsApartScenario(t *testing.T) {
	a, b := geom.Vec2{}, geom.Vec2{X: 0.5}
	if !geom.PushDiscsApart(&a, 1, &b, 1) {
		t.Fatal("expected push")
	}
	if d := b.Sub(a).Length(); d < 2-eps {
		t.Fatalf("distance after push = %v, want >= 2", d)
	}
	if !near(a.X, -0.75, eps) || !near(b.X, 1.25, eps) {
		t.Fatalf("push not split evenly: a=%v b=%v", a, b)
	}
}

func TestPushDiscsApartSymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := geom.Vec2{X: rapid.Float64Range(-10, 10).Draw(t, "ax"), Y: rapid.Float64Range(-10, 10).Draw(t, "ay")}
		b := geom.Vec2{X: rapid.Float64Range(-10, 10).Draw(t, "bx"), Y: rapid.Float64Range(-10, 10).Draw(t, "by")}
		ra := rapid.Float64Range(0.05, 3).Draw(t, "ra")
		rb := rapid.Float64Range(0.05, 3).Draw(t, "rb")

		a1, b1 := a, b
		geom.PushDiscsApart(&a1, ra, &b1, rb)
		b2, a2 := b, a
		geom.PushDiscsApart(&b2, rb, &a2, ra)

		if d := b1.Sub(a1).Length(); d < ra+rb-1e-9 && geom.DiscsOverlap(a, ra, b, rb) {
			t.Fatalf("still overlapping: d=%v r=%v", d, ra+rb)
		}
		if d := b2.Sub(a2).Length(); d < ra+rb-1e-9 && geom.DiscsOverlap(a, ra, b, rb) {
			t.Fatalf("still overlapping with roles swapped: d=%v r=%v", d, ra+rb)
		}
	})
}

func TestPushDiscOutOfAABB2(t *testing.T) {
	box := geom.AABB2{Min: geom.Vec2{X: 1, Y: 0}, Max: geom.Vec2{X: 2, Y: 1}}

	c := geom.Vec2{X: 0.9, Y: 0.5}
	if !geom.PushDiscOutOfAABB2(&c, 0.25, box) {
		t.Fatal("expected push")
	}
	if !near(c.X, 0.75, eps) || !near(c.Y, 0.5, eps) {
		t.Fatalf("pushed to %v, want (0.75,0.5)", c)
	}

	far := geom.Vec2{X: 0.5, Y: 0.5}
	if geom.PushDiscOutOfAABB2(&far, 0.25, box) {
		t.Fatal("non-overlapping disc pushed")
	}

	inside := geom.Vec2{X: 1.9, Y: 0.5}
	if !geom.PushDiscOutOfAABB2(&inside, 0.25, box) {
		t.Fatal("embedded disc not pushed")
	}
	if !near(inside.X, 2.25, eps) {
		t.Fatalf("embedded disc exit = %v, want x=2.25", inside)
	}
}

func TestRaycastCylinder(t *testing.T) {
	cyl := geom.Cylinder{Center: geom.Vec2{X: 5}, MinZ: 0, MaxZ: 1, Radius: 0.5}

	r := geom.RaycastCylinder(geom.Vec3{Z: 0.5}, geom.Vec3{X: 1}, 10, cyl)
	if !r.Hit || !near(r.Length, 4.5, eps) {
		t.Fatalf("side hit = %+v", r)
	}
	if !nearVec3(r.Normal, geom.Vec3{X: -1}, eps) {
		t.Fatalf("side normal = %v", r.Normal)
	}

	r = geom.RaycastCylinder(geom.Vec3{X: 5, Z: 3}, geom.Vec3{Z: -1}, 10, cyl)
	if !r.Hit || !near(r.Length, 2, eps) || !nearVec3(r.Normal, geom.Vec3{Z: 1}, eps) {
		t.Fatalf("cap hit = %+v", r)
	}

	r = geom.RaycastCylinder(geom.Vec3{Z: 1.5}, geom.Vec3{X: 1}, 10, cyl)
	if r.Hit {
		t.Fatalf("ray above cylinder hit: %+v", r)
	}

	r = geom.RaycastCylinder(geom.Vec3{Z: 0.5}, geom.Vec3{X: 1}, 4, cyl)
	if r.Hit || r.Length != 4 {
		t.Fatalf("short ray = %+v", r)
	}

	r = geom.RaycastCylinder(geom.Vec3{X: 5, Z: 0.5}, geom.Vec3{X: 1}, 10, cyl)
	if !r.Hit || r.Length != 0 || !nearVec3(r.Normal, geom.Vec3{X: -1}, eps) {
		t.Fatalf("start inside = %+v", r)
	}
}
