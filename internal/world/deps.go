package world

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/core/event"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

var (
	// ErrSpawnExhausted is returned once the map's uid counter has reached its
	// limit. Callers treat it as "nothing spawned".
	ErrSpawnExhausted = errors.New("actor uid space exhausted")
	ErrUnknownActor   = errors.New("unknown actor definition")
	ErrUnknownWeapon  = errors.New("unknown weapon definition")
)

//go:generate mockgen -destination=mocks/mock_hooks.go -package=mocks github.com/doomenstein/doomenstein/internal/world Hooks

// Hooks are the fire-and-forget calls the simulation makes into audio and
// rendering. Nothing the map does depends on their outcome.
type Hooks interface {
	PlaySound(name string, pos geom.Vec3)
	PlayAnimation(h ecs.Handle, anim data.Animation, forced bool)
}

type nopHooks struct{}

func (nopHooks) PlaySound(string, geom.Vec3)                    {}
func (nopHooks) PlayAnimation(ecs.Handle, data.Animation, bool) {}

// DamageSource tells a DamageModel how the hit was delivered.
type DamageSource uint8

const (
	SourceRay DamageSource = iota
	SourceProjectile
	SourceMelee
)

func (s DamageSource) String() string {
	switch s {
	case SourceRay:
		return "ray"
	case SourceProjectile:
		return "projectile"
	case SourceMelee:
		return "melee"
	}
	return "unknown"
}

// DamageRoll is one damage request. Roll is uniform in [0,1).
type DamageRoll struct {
	Range           data.FloatRange
	Roll            float64
	Source          DamageSource
	AttackerFaction data.Faction
	VictimFaction   data.Faction
}

type DamageModel interface {
	Damage(r DamageRoll) float64
}

// UniformDamage interpolates the range by the roll.
type UniformDamage struct{}

func (UniformDamage) Damage(r DamageRoll) float64 { return r.Range.Lerp(r.Roll) }

// Deps carries every service a Map needs. Nil fields get defaults in NewMap,
// except Defs which is required.
type Deps struct {
	Defs            *data.Definitions
	Log             *zap.Logger
	Bus             *event.Bus
	Hooks           Hooks
	Damage          DamageModel
	Rand            *rand.Rand
	MaxActorUID     uint32
	PlayerActor     string
	SpawnPointActor string
}

func (d *Deps) fill() {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Bus == nil {
		d.Bus = event.NewBus()
	}
	if d.Hooks == nil {
		d.Hooks = nopHooks{}
	}
	if d.Damage == nil {
		d.Damage = UniformDamage{}
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if d.PlayerActor == "" {
		d.PlayerActor = "Marine"
	}
	if d.SpawnPointActor == "" {
		d.SpawnPointActor = "SpawnPoint"
	}
}
