package world

import (
	"math"

	"go.uber.org/zap"

	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/core/event"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// Weapon is one inventory entry. The refire gate is a cooldown counted down
// by the owner's update; a shot is allowed once it reaches zero.
type Weapon struct {
	m        *Map
	def      *data.WeaponDefinition
	owner    ecs.Handle
	cooldown float64
}

func (w *Weapon) Def() *data.WeaponDefinition { return w.def }
func (w *Weapon) Name() string                { return w.def.Name }
func (w *Weapon) Ready() bool                 { return w.cooldown <= 0 }
func (w *Weapon) Cooldown() float64           { return math.Max(w.cooldown, 0) }

func (w *Weapon) tick(dt float64) {
	if w.cooldown > 0 {
		w.cooldown -= dt
	}
}

// Fire shoots every ray, projectile and melee swing the definition lists.
// It reports false while cooling down or when the owner is gone or dead. A
// shot whose spawns fail still spends the cooldown.
func (w *Weapon) Fire() bool {
	if w.cooldown > 0 {
		return false
	}
	owner := w.m.Resolve(w.owner)
	if owner == nil || owner.dead {
		return false
	}
	w.cooldown = w.def.RefireTime

	if s := w.def.Sound("Fire"); s != "" {
		w.m.hooks.PlaySound(s, owner.Position)
	}
	for i := 0; i < w.def.Ray.Count; i++ {
		w.fireRay(owner)
	}
	for i := 0; i < w.def.Projectile.Count; i++ {
		w.fireProjectile(owner)
	}
	for i := 0; i < w.def.Melee.Count; i++ {
		w.swing(owner)
	}
	event.Emit(w.m.bus, event.WeaponFired{Shooter: owner.handle, Weapon: w.def.Name})
	return true
}

// spread returns o turned by a random yaw and pitch within cone degrees.
func (w *Weapon) spread(o geom.EulerAngles, cone float64) geom.EulerAngles {
	if cone <= 0 {
		return o
	}
	o.Yaw += (w.m.rng.Float64()*2 - 1) * cone
	o.Pitch += (w.m.rng.Float64()*2 - 1) * cone
	return o
}

func (w *Weapon) fireRay(owner *Actor) {
	p := w.def.Ray
	dir := w.spread(owner.Orientation, p.Cone).Forward()
	res, struck := w.m.RaycastAll(owner.EyePosition(), dir, p.Range, owner.handle)
	if !res.Hit {
		return
	}
	w.m.spawnEffect(w.def.ImpactActor, res.Position)
	victim := w.m.Resolve(struck)
	if victim == nil {
		return
	}
	victim.Damage(w.m.roll(p.Damage, SourceRay, owner.faction, victim.faction), owner.handle)
	victim.AddImpulse(dir.Scale(p.Impulse))
	w.m.spawnEffect(w.def.BloodActor, res.Position)
}

func (w *Weapon) fireProjectile(owner *Actor) {
	p := w.def.Projectile
	o := w.spread(owner.Orientation, p.Cone)
	_, err := w.m.SpawnActor(SpawnInfo{
		Name:        p.Actor,
		Position:    owner.EyePosition(),
		Orientation: o,
		Velocity:    o.Forward().Scale(p.Speed),
		Faction:     owner.faction,
		HasFaction:  true,
		Owner:       owner.handle,
	})
	if err != nil {
		w.m.log.Debug("projectile spawn skipped", zap.String("actor", p.Actor), zap.Error(err))
	}
}

// swing hits the nearest hostile actor whose disc reaches into the melee
// range, inside the arc.
func (w *Weapon) swing(owner *Actor) {
	p := w.def.Melee
	fwd := owner.Forward()
	fwd2 := fwd.XY()
	at := owner.Position.XY()

	var best *Actor
	bestD2 := math.MaxFloat64
	w.m.EachActor(func(o *Actor) bool {
		if o == owner || o.dead || o.Owned() || !owner.faction.Hostile(o.faction) {
			return true
		}
		to := o.Position.XY().Sub(at)
		d2 := to.LengthSquared()
		reach := p.Range + o.Radius()
		if d2 > reach*reach || d2 >= bestD2 {
			return true
		}
		if geom.AngleBetweenDegrees2D(fwd2, to) > p.Arc*0.5 {
			return true
		}
		best, bestD2 = o, d2
		return true
	})
	if best == nil {
		return
	}
	best.Damage(w.m.roll(p.Damage, SourceMelee, owner.faction, best.faction), owner.handle)
	best.AddImpulse(fwd.Scale(p.Impulse))
}
