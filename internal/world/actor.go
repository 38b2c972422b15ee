package world

import (
	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/core/event"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// SpawnInfo describes an actor to create. Faction overrides the
// definition's faction only when HasFaction is set. A zero Owner means none.
type SpawnInfo struct {
	Name        string
	Position    geom.Vec3
	Orientation geom.EulerAngles
	Velocity    geom.Vec3
	Faction     data.Faction
	HasFaction  bool
	Owner       ecs.Handle
}

// SpawnInfoFromData converts a map placement.
func SpawnInfoFromData(s data.SpawnInfo) SpawnInfo {
	info := SpawnInfo{
		Name:        s.Name,
		Position:    geom.Vec3{X: s.Position[0], Y: s.Position[1], Z: s.Position[2]},
		Orientation: geom.EulerAngles{Yaw: s.Orientation[0], Pitch: s.Orientation[1], Roll: s.Orientation[2]},
		Velocity:    geom.Vec3{X: s.Velocity[0], Y: s.Velocity[1], Z: s.Velocity[2]},
		Owner:       ecs.InvalidHandle,
	}
	if s.Faction != nil {
		info.Faction = *s.Faction
		info.HasFaction = true
	}
	return info
}

// Actor is a simulated entity. It lives in a Map slot and must only be
// reached through Map.Resolve across ticks.
type Actor struct {
	m      *Map
	handle ecs.Handle
	def    *data.ActorDefinition

	Position     geom.Vec3
	Velocity     geom.Vec3
	Acceleration geom.Vec3
	Orientation  geom.EulerAngles

	cylinder geom.Cylinder
	health   float64
	dead     bool
	deadTime float64
	garbage  bool
	faction  data.Faction
	owner    ecs.Handle

	weapons []*Weapon
	current int // -1 when unarmed

	controller   ecs.Handle // active controller
	aiController ecs.Handle // own AI controller, if the definition enables AI

	anim     data.Animation
	animTime float64
}

func (a *Actor) Handle() ecs.Handle                   { return a.handle }
func (a *Actor) Def() *data.ActorDefinition           { return a.def }
func (a *Actor) Name() string                         { return a.def.Name }
func (a *Actor) Health() float64                      { return a.health }
func (a *Actor) IsDead() bool                         { return a.dead }
func (a *Actor) IsGarbage() bool                      { return a.garbage }
func (a *Actor) DeadTime() float64                    { return a.deadTime }
func (a *Actor) Faction() data.Faction                { return a.faction }
func (a *Actor) Owner() ecs.Handle                    { return a.owner }
func (a *Actor) Cylinder() geom.Cylinder              { return a.cylinder }
func (a *Actor) Radius() float64                      { return a.def.Collision.Radius }
func (a *Actor) Animation() (data.Animation, float64) { return a.anim, a.animTime }

// Owned reports whether the actor was spawned on behalf of another one.
func (a *Actor) Owned() bool { return a.owner.IsValid() }

// Controller returns the active controller, or nil.
func (a *Actor) Controller() *Controller { return a.m.controllers.Resolve(a.controller) }

// AIController returns the actor's own AI controller, or nil.
func (a *Actor) AIController() *Controller { return a.m.controllers.Resolve(a.aiController) }

// IsAIDriven reports whether the actor's own AI controller is the active one.
func (a *Actor) IsAIDriven() bool {
	return a.aiController.IsValid() && a.controller == a.aiController
}

func (a *Actor) EyePosition() geom.Vec3 {
	return a.Position.Add(geom.Vec3{Z: a.def.Camera.EyeHeight})
}

func (a *Actor) Forward() geom.Vec3 { return a.Orientation.Forward() }

func (a *Actor) refreshCylinder() {
	a.cylinder = geom.Cylinder{
		Center: a.Position.XY(),
		MinZ:   a.Position.Z,
		MaxZ:   a.Position.Z + a.def.Collision.Height,
		Radius: a.def.Collision.Radius,
	}
}

func (a *Actor) update(dt float64) {
	for _, w := range a.weapons {
		w.tick(dt)
	}
	a.updateAnimation(dt)

	if a.dead {
		a.deadTime += dt
		if !a.garbage && a.deadTime > a.def.CorpseLifetime && a.def.Name != a.m.spawnPointActor {
			a.garbage = true
			a.playSound("Death")
		}
	} else {
		if a.def.Physics.Simulated {
			a.updatePhysics(dt)
		}
		if a.IsAIDriven() {
			if ai := a.AIController(); ai != nil {
				ai.think(dt)
			}
		}
	}
	a.refreshCylinder()
}

func (a *Actor) updatePhysics(dt float64) {
	a.AddForce(a.Velocity.Scale(-a.def.Physics.Drag))
	a.Velocity = a.Velocity.Add(a.Acceleration.Scale(dt))
	a.Position = a.Position.Add(a.Velocity.Scale(dt))
	if !a.def.Physics.Flying {
		a.Position.Z = 0
	}
	a.Acceleration = geom.Vec3{}
}

func (a *Actor) AddForce(f geom.Vec3)   { a.Acceleration = a.Acceleration.Add(f) }
func (a *Actor) AddImpulse(v geom.Vec3) { a.Velocity = a.Velocity.Add(v) }

// MoveInDirection applies the force that, against drag, settles at speed
// along dir.
func (a *Actor) MoveInDirection(dir geom.Vec3, speed float64) {
	a.AddForce(dir.Normalized().Scale(speed * a.def.Physics.Drag))
}

// TurnInDirection turns yaw toward goalYaw by at most maxDelta degrees,
// the short way round.
func (a *Actor) TurnInDirection(goalYaw, maxDelta float64) {
	a.Orientation.Yaw = geom.TurnTowardDegrees(a.Orientation.Yaw, goalYaw, maxDelta)
}

// Damage subtracts amount from health and notifies the AI controller of the
// attacker. Dead actors ignore damage.
func (a *Actor) Damage(amount float64, attacker ecs.Handle) {
	if a.dead {
		return
	}
	a.health -= amount
	if ai := a.AIController(); ai != nil {
		ai.damagedBy(attacker)
	}
	a.playSound("Hurt")
	event.Emit(a.m.bus, event.ActorDamaged{
		Victim:   a.handle,
		Attacker: attacker,
		Amount:   amount,
		Health:   a.health,
	})
	if a.health >= 0 {
		return
	}
	a.die()
	ev := event.ActorKilled{
		Victim:        a.handle,
		VictimName:    a.def.Name,
		VictimFaction: a.faction,
		Killer:        attacker,
		Position:      a.Position,
	}
	if k := a.m.Resolve(attacker); k != nil {
		ev.KillerName = k.def.Name
		ev.KillerFaction = k.faction
	}
	event.Emit(a.m.bus, ev)
}

func (a *Actor) die() {
	if a.dead {
		return
	}
	a.dead = true
	a.PlayAnimation(data.AnimDeath, true)
}

// Kill marks the actor dead without damage.
func (a *Actor) Kill() { a.die() }

// PlayAnimation requests anim. Re-requesting the current animation does
// nothing; otherwise a forced request always replaces it and a normal one
// only once the current animation has finished. Animations the definition
// has no clip for are ignored.
func (a *Actor) PlayAnimation(anim data.Animation, forced bool) bool {
	if a.def.AnimationLength(anim) <= 0 || anim == a.anim {
		return false
	}
	if !forced && a.anim != data.AnimNone && a.animTime < a.def.AnimationLength(a.anim) {
		return false
	}
	a.anim = anim
	a.animTime = 0
	a.m.hooks.PlayAnimation(a.handle, anim, forced)
	return true
}

func (a *Actor) updateAnimation(dt float64) {
	if a.anim == data.AnimNone {
		return
	}
	a.animTime += dt
	if a.anim != data.AnimDeath && a.animTime > a.def.AnimationLength(a.anim) {
		a.anim = data.AnimNone
		a.animTime = 0
	}
}

func (a *Actor) playSound(key string) {
	name := a.def.Sound(key)
	if name == "" {
		return
	}
	a.m.hooks.PlaySound(name, a.Position)
}

func (a *Actor) onPossessed(c *Controller) { a.controller = c.handle }

// onUnpossessed hands control back to the actor's AI controller, if any.
func (a *Actor) onUnpossessed(c *Controller) {
	if a.controller != c.handle {
		return
	}
	a.controller = a.aiController
}

// Weapons returns the inventory in definition order.
func (a *Actor) Weapons() []*Weapon { return a.weapons }

func (a *Actor) CurrentWeapon() *Weapon {
	if a.current < 0 || a.current >= len(a.weapons) {
		return nil
	}
	return a.weapons[a.current]
}

// EquipWeapon selects inventory slot i. Out-of-range slots are ignored.
func (a *Actor) EquipWeapon(i int) bool {
	if i < 0 || i >= len(a.weapons) {
		return false
	}
	a.current = i
	return true
}

func (a *Actor) NextWeapon() { a.cycleWeapon(1) }
func (a *Actor) PrevWeapon() { a.cycleWeapon(-1) }

func (a *Actor) cycleWeapon(step int) {
	n := len(a.weapons)
	if n == 0 {
		return
	}
	a.current = ((a.current+step)%n + n) % n
}

// Attack fires the current weapon. It reports whether a shot went off.
func (a *Actor) Attack() bool {
	w := a.CurrentWeapon()
	if w == nil || a.dead {
		return false
	}
	return w.Fire()
}
