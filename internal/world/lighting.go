package world

import "github.com/doomenstein/doomenstein/internal/geom"

// LightingStep is the increment used by the lighting adjustments.
const LightingStep = 0.05

// Lighting is the map's directional sun plus ambient term.
type Lighting struct {
	SunDirection geom.Vec3 // unit length
	SunIntensity float64
	Ambient      float64
}

func (m *Map) Lighting() Lighting {
	return Lighting{
		SunDirection: m.sunDirection.Normalized(),
		SunIntensity: m.sunIntensity,
		Ambient:      m.ambient,
	}
}

// NudgeSun moves the unnormalized sun direction by whole units on X and Y.
func (m *Map) NudgeSun(dx, dy float64) {
	m.sunDirection.X += dx
	m.sunDirection.Y += dy
}

// AdjustSunIntensity adds steps*LightingStep, clamped to [0,1].
func (m *Map) AdjustSunIntensity(steps int) {
	m.sunIntensity = geom.Clamp(m.sunIntensity+float64(steps)*LightingStep, 0, 1)
}

// AdjustAmbient adds steps*LightingStep, clamped to [0,1].
func (m *Map) AdjustAmbient(steps int) {
	m.ambient = geom.Clamp(m.ambient+float64(steps)*LightingStep, 0, 1)
}

func (m *Map) applyLighting(in PlayerInput) {
	if in.SunNudge != (geom.Vec2{}) {
		m.NudgeSun(in.SunNudge.X, in.SunNudge.Y)
	}
	if in.SunSteps != 0 {
		m.AdjustSunIntensity(in.SunSteps)
	}
	if in.AmbientSteps != 0 {
		m.AdjustAmbient(in.AmbientSteps)
	}
}
