package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FloatRange is an inclusive [Min, Max] interval, used for damage rolls.
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps t in [0,1] onto the range.
func (r FloatRange) Lerp(t float64) float64 { return r.Min + (r.Max-r.Min)*t }

// ActorDefinition holds static data for an actor type loaded from YAML.
type ActorDefinition struct {
	Name           string            `yaml:"name"`
	Faction        Faction           `yaml:"faction"`
	Health         float64           `yaml:"health"`
	CanBePossessed bool              `yaml:"can_be_possessed"`
	CorpseLifetime float64           `yaml:"corpse_lifetime"` // seconds a corpse stays before reaping
	Visible        bool              `yaml:"visible"`
	DieOnSpawn     bool              `yaml:"die_on_spawn"` // one-shot effects
	Collision      Collision         `yaml:"collision"`
	Physics        Physics           `yaml:"physics"`
	Camera         Camera            `yaml:"camera"`
	AI             AIParams          `yaml:"ai"`
	Inventory      []string          `yaml:"inventory"` // weapon names, first is equipped
	Sounds         map[string]string `yaml:"sounds"`
	Animations     []AnimationClip   `yaml:"animations"`

	animLengths [animCount]float64
}

type Collision struct {
	Radius             float64    `yaml:"radius"`
	Height             float64    `yaml:"height"`
	CollidesWithWorld  bool       `yaml:"collides_with_world"`
	CollidesWithActors bool       `yaml:"collides_with_actors"`
	DieOnCollide       bool       `yaml:"die_on_collide"`
	DamageOnCollide    FloatRange `yaml:"damage_on_collide"`
	ImpulseOnCollide   float64    `yaml:"impulse_on_collide"`
}

type Physics struct {
	Simulated bool    `yaml:"simulated"`
	Flying    bool    `yaml:"flying"`
	WalkSpeed float64 `yaml:"walk_speed"`
	RunSpeed  float64 `yaml:"run_speed"`
	TurnSpeed float64 `yaml:"turn_speed"` // degrees per second
	Drag      float64 `yaml:"drag"`
}

type Camera struct {
	EyeHeight float64 `yaml:"eye_height"`
	FOV       float64 `yaml:"fov"`
}

type AIParams struct {
	Enabled     bool    `yaml:"enabled"`
	SightRadius float64 `yaml:"sight_radius"`
	SightAngle  float64 `yaml:"sight_angle"` // full cone, degrees
}

// AnimationClip names an animation slot and its duration in seconds.
type AnimationClip struct {
	Name   Animation `yaml:"name"`
	Length float64   `yaml:"length"`
}

// AnimationLength returns the clip length for a, or 0 when the actor has no
// such clip.
func (d *ActorDefinition) AnimationLength(a Animation) float64 {
	if a >= animCount {
		return 0
	}
	return d.animLengths[a]
}

// Sound returns the sound id registered under key, or "".
func (d *ActorDefinition) Sound(key string) string { return d.Sounds[key] }

func (d *ActorDefinition) index() {
	for _, c := range d.Animations {
		d.animLengths[c.Name] = c.Length
	}
}

type actorListFile struct {
	Actors []ActorDefinition `yaml:"actors"`
}

// ActorTable provides actor definition lookups by name.
type ActorTable struct {
	actors map[string]*ActorDefinition
	order  []string
}

func LoadActorTable(path string) (*ActorTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read actors: %w", err)
	}
	return ParseActorTable(raw)
}

// ParseActorTable decodes an actor list document.
func ParseActorTable(raw []byte) (*ActorTable, error) {
	var f actorListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse actors: %w", err)
	}
	t := &ActorTable{actors: make(map[string]*ActorDefinition, len(f.Actors))}
	for i := range f.Actors {
		def := &f.Actors[i]
		if def.Name == "" {
			return nil, fmt.Errorf("parse actors: entry %d has no name", i)
		}
		if _, dup := t.actors[def.Name]; dup {
			return nil, fmt.Errorf("parse actors: duplicate actor %q", def.Name)
		}
		def.index()
		t.actors[def.Name] = def
		t.order = append(t.order, def.Name)
	}
	return t, nil
}

// Get returns the definition named name, or nil.
func (t *ActorTable) Get(name string) *ActorDefinition {
	return t.actors[name]
}

func (t *ActorTable) Count() int {
	return len(t.actors)
}

// Names lists actor names in file order.
func (t *ActorTable) Names() []string {
	return t.order
}
