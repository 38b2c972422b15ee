package data

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// Definitions bundles every content table. It is built once before play and
// never mutated afterwards.
type Definitions struct {
	Actors  *ActorTable
	Weapons *WeaponTable
	Tiles   *TileTable
	Maps    *MapTable

	// Digest identifies the loaded content files. Kill logs from runs with
	// different content are not comparable.
	Digest string
}

// Paths locates the content files.
type Paths struct {
	Actors  string
	Weapons string
	Tiles   string
	Maps    string
}

// Load reads all four tables.
func Load(p Paths) (*Definitions, error) {
	actors, err := LoadActorTable(p.Actors)
	if err != nil {
		return nil, err
	}
	weapons, err := LoadWeaponTable(p.Weapons)
	if err != nil {
		return nil, err
	}
	tiles, err := LoadTileTable(p.Tiles)
	if err != nil {
		return nil, err
	}
	maps, err := LoadMapTable(p.Maps)
	if err != nil {
		return nil, err
	}
	digest, err := digestFiles(p.Actors, p.Weapons, p.Tiles, p.Maps)
	if err != nil {
		return nil, err
	}
	return &Definitions{Actors: actors, Weapons: weapons, Tiles: tiles, Maps: maps, Digest: digest}, nil
}

// digestFiles hashes the files in order with BLAKE2b-256. Each file is
// length-prefixed so moving bytes between files changes the digest.
func digestFiles(paths ...string) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("digest %s: %w", path, err)
		}
		fmt.Fprintf(h, "%d:", len(raw))
		h.Write(raw)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DefaultPaths returns the table paths under dir.
func DefaultPaths(dir string) Paths {
	return Paths{
		Actors:  filepath.Join(dir, "actors.yaml"),
		Weapons: filepath.Join(dir, "weapons.yaml"),
		Tiles:   filepath.Join(dir, "tiles.yaml"),
		Maps:    filepath.Join(dir, "maps.yaml"),
	}
}

// Validate checks every name that one table uses to refer to another, plus
// the actor names the game itself relies on. All problems are reported
// together.
func (d *Definitions) Validate(required ...string) error {
	var errs []error
	actor := func(ctx, name string) {
		if d.Actors.Get(name) == nil {
			errs = append(errs, fmt.Errorf("%s: unknown actor %q", ctx, name))
		}
	}
	for _, name := range required {
		actor("required", name)
	}
	for _, name := range d.Actors.Names() {
		def := d.Actors.Get(name)
		for _, w := range def.Inventory {
			if d.Weapons.Get(w) == nil {
				errs = append(errs, fmt.Errorf("actor %s: unknown weapon %q", name, w))
			}
		}
		if def.Collision.Radius < 0 || def.Collision.Height < 0 {
			errs = append(errs, fmt.Errorf("actor %s: negative collision size", name))
		}
	}
	for _, wn := range d.Weapons.Names() {
		w := d.Weapons.Get(wn)
		if w.Projectile.Count > 0 {
			actor("weapon "+w.Name+" projectile", w.Projectile.Actor)
		}
		if w.Ray.Count > 0 {
			actor("weapon "+w.Name+" impact", w.ImpactActor)
			actor("weapon "+w.Name+" blood", w.BloodActor)
		}
	}
	for _, name := range d.Maps.Names() {
		m := d.Maps.Get(name)
		for i, s := range m.Spawns {
			actor(fmt.Sprintf("map %s spawn %d", name, i), s.Name)
		}
		if len(m.Rows) > 0 {
			if _, err := LayoutFromRows(m.Rows, d.Tiles); err != nil {
				errs = append(errs, fmt.Errorf("map %s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
