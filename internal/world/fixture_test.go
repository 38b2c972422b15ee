package world_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/core/event"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
	"github.com/doomenstein/doomenstein/internal/world"
)

const testActors = `
actors:
  - name: Marine
    faction: Marine
    health: 100
    can_be_possessed: true
    corpse_lifetime: 1.0
    visible: true
    collision: { radius: 0.25, height: 0.6, collides_with_world: true, collides_with_actors: true }
    physics: { simulated: true, walk_speed: 1.5, run_speed: 6.0, turn_speed: 180.0, drag: 9.0 }
    camera: { eye_height: 0.5, fov: 60.0 }
    inventory: [Pistol, Launcher]
    sounds: { Hurt: MarineHurt, Death: MarineDeath }
    animations:
      - { name: Walk, length: 0.5 }
      - { name: Attack, length: 0.25 }
      - { name: Death, length: 1.0 }
  - name: Sentry
    faction: Marine
    health: 50
    collision: { radius: 0.25, height: 0.6, collides_with_world: true, collides_with_actors: true }
    camera: { eye_height: 0.5 }
    ai: { enabled: true, sight_radius: 10.0, sight_angle: 90.0 }
  - name: Demon
    faction: Demon
    health: 20
    can_be_possessed: true
    corpse_lifetime: 0.5
    collision: { radius: 0.35, height: 0.85, collides_with_world: true, collides_with_actors: true }
    physics: { simulated: true, walk_speed: 2.0, run_speed: 4.0, turn_speed: 90.0, drag: 9.0 }
    camera: { eye_height: 0.5, fov: 90.0 }
    ai: { enabled: true, sight_radius: 10.0, sight_angle: 90.0 }
    inventory: [Claw]
    animations:
      - { name: Walk, length: 0.5 }
      - { name: Attack, length: 0.5 }
      - { name: Death, length: 1.0 }
  - name: Blob
    faction: Neutral
    health: 10
    collision: { radius: 1.0, height: 1.0, collides_with_actors: true }
  - name: SpawnPoint
    faction: Neutral
  - name: Bolt
    faction: Neutral
    collision:
      radius: 0.1
      height: 0.1
      collides_with_world: true
      collides_with_actors: true
      die_on_collide: true
      damage_on_collide: { min: 7.0, max: 7.0 }
      impulse_on_collide: 2.0
    physics: { simulated: true, flying: true, drag: 0.0 }
  - name: Puff
    faction: Neutral
    corpse_lifetime: 0.1
    die_on_spawn: true
`

const testWeapons = `
weapons:
  - name: Pistol
    refire_time: 0.5
    ray: { count: 1, cone: 0.0, range: 10.0, damage: { min: 3.0, max: 3.0 }, impulse: 0.0 }
    impact_actor: Puff
    blood_actor: Puff
  - name: Launcher
    refire_time: 0.2
    projectile: { count: 1, cone: 0.0, speed: 5.0, actor: Bolt }
  - name: Claw
    refire_time: 0.75
    melee: { count: 1, arc: 90.0, range: 0.6, damage: { min: 10.0, max: 10.0 } }
`

const testTiles = `
tiles:
  - { name: Floor, glyph: ".", color: [0, 0, 0] }
  - { name: Wall, solid: true, glyph: "#", color: [255, 255, 255] }
`

// Open is empty floor. Wall has a solid column at x=3. Pocket is a 2x2 room
// walled on every side. Arena carries a spawn point.
const testMaps = `
maps:
  - name: Open
    rows: ["........", "........", "........", "........", "........", "........", "........", "........"]
  - name: Wall
    rows: ["...#....", "...#....", "...#....", "...#....", "...#....", "...#....", "...#....", "...#...."]
  - name: Pocket
    rows: ["####", "#..#", "#..#", "####"]
  - name: Arena
    rows: ["........", "........", "........", "........"]
    spawns:
      - { actor: SpawnPoint, position: [2.5, 1.5, 0], orientation: [90, 0, 0] }
`

func testDefs(t testing.TB) *data.Definitions {
	t.Helper()
	actors, err := data.ParseActorTable([]byte(testActors))
	if err != nil {
		t.Fatalf("actors: %v", err)
	}
	weapons, err := data.ParseWeaponTable([]byte(testWeapons))
	if err != nil {
		t.Fatalf("weapons: %v", err)
	}
	tiles, err := data.ParseTileTable([]byte(testTiles))
	if err != nil {
		t.Fatalf("tiles: %v", err)
	}
	maps, err := data.ParseMapTable([]byte(testMaps))
	if err != nil {
		t.Fatalf("maps: %v", err)
	}
	return &data.Definitions{Actors: actors, Weapons: weapons, Tiles: tiles, Maps: maps}
}

func newTestMap(t testing.TB, name string, deps world.Deps) *world.Map {
	t.Helper()
	if deps.Defs == nil {
		deps.Defs = testDefs(t)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	m, err := world.NewMap(deps.Defs.Maps.Get(name), deps)
	if err != nil {
		t.Fatalf("new map %s: %v", name, err)
	}
	return m
}

func spawn(t testing.TB, m *world.Map, name string, x, y, yaw float64) *world.Actor {
	t.Helper()
	a, err := m.SpawnActor(world.SpawnInfo{
		Name:        name,
		Position:    geom.Vec3{X: x, Y: y},
		Orientation: geom.EulerAngles{Yaw: yaw},
	})
	if err != nil {
		t.Fatalf("spawn %s: %v", name, err)
	}
	return a
}

// deliver flushes everything emitted so far to the bus subscribers.
func deliver(b *event.Bus) {
	b.SwapBuffers()
	b.DispatchAll()
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func nearVec3(a, b geom.Vec3, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

func mustResolve(t testing.TB, m *world.Map, h ecs.Handle) *world.Actor {
	t.Helper()
	a := m.Resolve(h)
	if a == nil {
		t.Fatalf("handle %#x does not resolve", uint32(h))
	}
	return a
}
