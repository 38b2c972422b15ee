package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WeaponDefinition holds static data for a weapon type loaded from YAML. A
// weapon may combine hitscan rays, projectiles and melee swings in one shot.
type WeaponDefinition struct {
	Name        string            `yaml:"name"`
	RefireTime  float64           `yaml:"refire_time"` // seconds between shots
	Ray         RayParams         `yaml:"ray"`
	Projectile  ProjectileParams  `yaml:"projectile"`
	Melee       MeleeParams       `yaml:"melee"`
	ImpactActor string            `yaml:"impact_actor"` // spawned where a ray hits anything
	BloodActor  string            `yaml:"blood_actor"`  // spawned where a ray hits an actor
	Sounds      map[string]string `yaml:"sounds"`
}

type RayParams struct {
	Count   int        `yaml:"count"`
	Cone    float64    `yaml:"cone"` // degrees of random spread either side
	Range   float64    `yaml:"range"`
	Damage  FloatRange `yaml:"damage"`
	Impulse float64    `yaml:"impulse"`
}

type ProjectileParams struct {
	Count int     `yaml:"count"`
	Cone  float64 `yaml:"cone"`
	Speed float64 `yaml:"speed"`
	Actor string  `yaml:"actor"`
}

type MeleeParams struct {
	Count   int        `yaml:"count"`
	Arc     float64    `yaml:"arc"` // full arc, degrees
	Range   float64    `yaml:"range"`
	Damage  FloatRange `yaml:"damage"`
	Impulse float64    `yaml:"impulse"`
}

func (d *WeaponDefinition) Sound(key string) string { return d.Sounds[key] }

type weaponListFile struct {
	Weapons []WeaponDefinition `yaml:"weapons"`
}

// WeaponTable provides weapon definition lookups by name.
type WeaponTable struct {
	weapons map[string]*WeaponDefinition
	order   []string
}

func LoadWeaponTable(path string) (*WeaponTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read weapons: %w", err)
	}
	return ParseWeaponTable(raw)
}

func ParseWeaponTable(raw []byte) (*WeaponTable, error) {
	var f weaponListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse weapons: %w", err)
	}
	t := &WeaponTable{weapons: make(map[string]*WeaponDefinition, len(f.Weapons))}
	for i := range f.Weapons {
		w := &f.Weapons[i]
		if w.Name == "" {
			return nil, fmt.Errorf("parse weapons: entry %d has no name", i)
		}
		if _, dup := t.weapons[w.Name]; dup {
			return nil, fmt.Errorf("parse weapons: duplicate weapon %q", w.Name)
		}
		if w.ImpactActor == "" {
			w.ImpactActor = "BulletHit"
		}
		if w.BloodActor == "" {
			w.BloodActor = "BloodSplatter"
		}
		t.weapons[w.Name] = w
		t.order = append(t.order, w.Name)
	}
	return t, nil
}

func (t *WeaponTable) Get(name string) *WeaponDefinition {
	return t.weapons[name]
}

func (t *WeaponTable) Count() int {
	return len(t.weapons)
}

func (t *WeaponTable) Names() []string {
	return t.order
}
