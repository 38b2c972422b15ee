package world

import (
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

const (
	mouseDegreesPerPixel = 0.125
	maxPitch             = 85.0
	maxRoll              = 45.0
	freeFlySpeed         = 2.0
	freeFlyRunScale      = 10.0
	freeFlyTurnSpeed     = 90.0 // gamepad look, degrees per second
)

// PlayerInput is one tick of intent from a device. Move is strafe-right on X
// and forward on Y, each in [-1,1]. Look is a mouse delta in pixels for
// keyboard and mouse, a stick deflection for gamepads.
type PlayerInput struct {
	Device       Device
	Move         geom.Vec2
	Look         geom.Vec2
	Fly          float64 // free camera: +1 up, -1 down
	Roll         float64 // free camera roll, degrees per second
	Run          bool
	Fire         bool
	SelectWeapon int // 1-based inventory slot, 0 keeps the current one
	CycleWeapon  int // +1 next, -1 previous
	ToggleCamera bool
	PossessNext  bool

	// Lighting controls. SunNudge moves the sun direction in whole units,
	// the steps are multiples of LightingStep.
	SunNudge     geom.Vec2
	SunSteps     int
	AmbientSteps int
}

// ApplyInput feeds one tick of input to a player controller. Input from a
// device other than the controller's own is ignored.
func (c *Controller) ApplyInput(in PlayerInput, dt float64) {
	if !c.player || in.Device != c.device {
		return
	}
	c.m.applyLighting(in)
	if in.PossessNext {
		c.m.DebugPossessNext(c)
		c.cameraMode = false
	}
	if in.ToggleCamera {
		c.cameraMode = !c.cameraMode
	}
	if c.cameraMode {
		c.flyCamera(in, dt)
		return
	}

	a := c.Actor()
	if a == nil || a.dead {
		return
	}
	a.Orientation = c.look(a.Orientation, in, a.def.Physics.TurnSpeed, dt)

	if in.SelectWeapon > 0 {
		a.EquipWeapon(in.SelectWeapon - 1)
	}
	switch {
	case in.CycleWeapon > 0:
		a.NextWeapon()
	case in.CycleWeapon < 0:
		a.PrevWeapon()
	}

	if in.Move != (geom.Vec2{}) {
		speed := a.def.Physics.WalkSpeed
		if in.Run {
			speed = a.def.Physics.RunSpeed
		}
		fwd, left, _ := a.Orientation.Vectors()
		dir := fwd.Scale(in.Move.Y).Sub(left.Scale(in.Move.X))
		dir.Z = 0
		a.MoveInDirection(dir, speed)
		a.PlayAnimation(data.AnimWalk, false)
	}
	if in.Fire && a.Attack() {
		a.PlayAnimation(data.AnimAttack, false)
	}
}

func (c *Controller) look(o geom.EulerAngles, in PlayerInput, turnSpeed, dt float64) geom.EulerAngles {
	switch c.device {
	case DeviceGamepad:
		o.Yaw -= in.Look.X * turnSpeed * dt
		o.Pitch -= in.Look.Y * turnSpeed * dt
	default:
		o.Yaw -= in.Look.X * mouseDegreesPerPixel
		o.Pitch += in.Look.Y * mouseDegreesPerPixel
	}
	o.Pitch = geom.Clamp(o.Pitch, -maxPitch, maxPitch)
	return o
}

func (c *Controller) flyCamera(in PlayerInput, dt float64) {
	fwd, left, _ := c.Orientation.Vectors()
	v := fwd.Scale(in.Move.Y).Sub(left.Scale(in.Move.X)).Add(geom.Vec3{Z: in.Fly}).Scale(freeFlySpeed)
	if in.Run {
		v = v.Scale(freeFlyRunScale)
	}
	c.Position = c.Position.Add(v.Scale(dt))
	c.Orientation = c.look(c.Orientation, in, freeFlyTurnSpeed, dt)
	c.Orientation.Roll = geom.Clamp(c.Orientation.Roll+in.Roll*dt, -maxRoll, maxRoll)
}
