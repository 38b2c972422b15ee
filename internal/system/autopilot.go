package system

import (
	"math/rand"

	"github.com/doomenstein/doomenstein/internal/geom"
	"github.com/doomenstein/doomenstein/internal/world"
)

// Autopilot drives player controllers headlessly: it sweeps the view, walks
// forward, and holds fire whenever a hostile actor is in its sights.
type Autopilot struct {
	m    *world.Map
	rng  *rand.Rand
	turn map[int]float64 // mouse pixels per tick, per player
}

func NewAutopilot(m *world.Map, rng *rand.Rand) *Autopilot {
	return &Autopilot{m: m, rng: rng, turn: make(map[int]float64)}
}

const autopilotSightRange = 10.0

func (p *Autopilot) Next(c *world.Controller) (world.PlayerInput, bool) {
	a := c.Actor()
	if a == nil || a.IsDead() {
		return world.PlayerInput{}, false
	}
	in := world.PlayerInput{Device: c.Device()}

	res, h := p.m.RaycastAll(a.EyePosition(), a.Forward(), autopilotSightRange, a.Handle())
	if t := p.m.Resolve(h); t != nil && a.Faction().Hostile(t.Faction()) {
		in.Fire = true
		return in, true
	}

	turn, ok := p.turn[c.Index()]
	if !ok || p.rng.Intn(60) == 0 {
		turn = float64(p.rng.Intn(17) - 8)
		p.turn[c.Index()] = turn
	}
	if res.Hit && res.Length < 1 {
		turn = 40 // wall ahead
	}
	in.Look = geom.Vec2{X: turn}
	if c.Device() == world.DeviceGamepad {
		in.Look.X = geom.Clamp(turn/8, -1, 1)
	}
	in.Move = geom.Vec2{Y: 1}
	return in, true
}
