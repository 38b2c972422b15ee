package event

import (
	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// ActorSpawned fires after an actor has been placed in its slot.
type ActorSpawned struct {
	Handle  ecs.Handle
	Name    string
	Faction data.Faction
	Owner   ecs.Handle
}

type ActorDamaged struct {
	Victim   ecs.Handle
	Attacker ecs.Handle // InvalidHandle for environmental damage
	Amount   float64
	Health   float64 // after the hit
}

// ActorKilled fires once, on the hit that takes an actor's health below zero.
type ActorKilled struct {
	Victim        ecs.Handle
	VictimName    string
	VictimFaction data.Faction
	Killer        ecs.Handle
	KillerName    string // empty when the killer no longer resolves
	KillerFaction data.Faction
	Position      geom.Vec3
}

type WeaponFired struct {
	Shooter ecs.Handle
	Weapon  string
}
