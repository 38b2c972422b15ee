package world

import (
	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// Device is the input stream a player controller reads.
type Device uint8

const (
	DeviceNone Device = iota
	DeviceKeyboardMouse
	DeviceGamepad
)

func (d Device) String() string {
	switch d {
	case DeviceKeyboardMouse:
		return "keyboard"
	case DeviceGamepad:
		return "gamepad"
	}
	return "none"
}

// ParseDevice maps a config value onto a Device. Unknown values fall back to
// keyboard and mouse.
func ParseDevice(s string) Device {
	switch s {
	case "gamepad", "controller":
		return DeviceGamepad
	}
	return DeviceKeyboardMouse
}

// Controller drives at most one actor, referenced by handle. Player and AI
// controllers share this type; IsPlayer tells them apart.
type Controller struct {
	m      *Map
	handle ecs.Handle
	player bool
	device Device
	index  int

	actor ecs.Handle

	// AI state
	target       ecs.Handle
	lastAttacker ecs.Handle

	// player camera
	cameraMode  bool
	Position    geom.Vec3
	Orientation geom.EulerAngles
	FOV         float64
}

func (c *Controller) Handle() ecs.Handle       { return c.handle }
func (c *Controller) IsPlayer() bool           { return c.player }
func (c *Controller) Device() Device           { return c.device }
func (c *Controller) Index() int               { return c.index }
func (c *Controller) ActorHandle() ecs.Handle  { return c.actor }
func (c *Controller) Target() ecs.Handle       { return c.target }
func (c *Controller) LastAttacker() ecs.Handle { return c.lastAttacker }
func (c *Controller) CameraMode() bool         { return c.cameraMode }

// Actor returns the possessed actor, or nil when it no longer resolves.
func (c *Controller) Actor() *Actor { return c.m.Resolve(c.actor) }

// Possess releases the current actor, if it still resolves, then takes h.
// h is stored even when it does not resolve.
func (c *Controller) Possess(h ecs.Handle) {
	if cur := c.m.Resolve(c.actor); cur != nil {
		cur.onUnpossessed(c)
	}
	if next := c.m.Resolve(h); next != nil {
		next.onPossessed(c)
	}
	c.actor = h
}

// SetCameraMode switches between driving the actor and flying the camera.
func (c *Controller) SetCameraMode(on bool) { c.cameraMode = on }

func (c *Controller) damagedBy(attacker ecs.Handle) {
	c.lastAttacker = attacker
	if attacker.IsValid() && attacker != c.actor {
		c.target = attacker
	}
}

// UpdateCamera places a player camera at the possessed actor's eye. A dead
// actor's eye sinks to the floor over its corpse lifetime. Free-fly cameras
// are left alone.
func (c *Controller) UpdateCamera() {
	if !c.player || c.cameraMode {
		return
	}
	a := c.Actor()
	if a == nil {
		return
	}
	eye := a.def.Camera.EyeHeight
	c.FOV = a.def.Camera.FOV
	if a.dead {
		frac := 1.0
		if a.def.CorpseLifetime > 0 {
			frac = geom.Clamp(a.deadTime/a.def.CorpseLifetime, 0, 1)
		}
		c.Position = geom.Vec3{X: a.Position.X, Y: a.Position.Y, Z: geom.Lerp(a.Position.Z+eye, a.Position.Z, frac)}
		return
	}
	c.Position = a.Position.Add(geom.Vec3{Z: eye})
	c.Orientation = a.Orientation
}
