package world

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/doomenstein/doomenstein/internal/core/ecs"
	"github.com/doomenstein/doomenstein/internal/core/event"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
)

// Tile is one static map cell spanning (x,y,0)-(x+1,y+1,1).
type Tile struct {
	Bounds geom.AABB3
	Def    *data.TileDefinition
}

func (t *Tile) Solid() bool  { return t.Def != nil && t.Def.Solid }
func (t *Tile) Name() string { return t.Def.Name }

// Map owns the actor slots, the controllers and the static tile grid. It is
// mutated only from the game loop goroutine, during its own phases.
type Map struct {
	def    *data.MapDefinition
	defs   *data.Definitions
	log    *zap.Logger
	bus    *event.Bus
	hooks  Hooks
	damage DamageModel
	rng    *rand.Rand

	width, height int
	tiles         []Tile // y + x*height

	actors      *ecs.Slots[Actor]
	controllers *ecs.Slots[Controller]
	players     []ecs.Handle

	playerActor     string
	spawnPointActor string

	sunDirection geom.Vec3
	sunIntensity float64
	ambient      float64
}

// NewMap builds the tile grid for def and spawns its placements. Missing
// content is an error.
func NewMap(def *data.MapDefinition, deps Deps) (*Map, error) {
	if deps.Defs == nil {
		return nil, errors.New("new map: no definitions")
	}
	if def == nil {
		return nil, errors.New("new map: no map definition")
	}
	deps.fill()

	layout, err := def.Layout(deps.Defs.Tiles)
	if err != nil {
		return nil, fmt.Errorf("new map: %w", err)
	}
	for _, name := range []string{deps.PlayerActor, deps.SpawnPointActor} {
		if deps.Defs.Actors.Get(name) == nil {
			return nil, fmt.Errorf("new map %s: %w: %q", def.Name, ErrUnknownActor, name)
		}
	}

	light := def.EffectiveLighting()
	m := &Map{
		def:             def,
		defs:            deps.Defs,
		log:             deps.Log,
		bus:             deps.Bus,
		hooks:           deps.Hooks,
		damage:          deps.Damage,
		rng:             deps.Rand,
		width:           layout.Width,
		height:          layout.Height,
		tiles:           make([]Tile, len(layout.Tiles)),
		actors:          ecs.NewSlots[Actor](deps.MaxActorUID),
		controllers:     ecs.NewSlots[Controller](0),
		playerActor:     deps.PlayerActor,
		spawnPointActor: deps.SpawnPointActor,
		sunDirection:    geom.Vec3{X: light.SunDirection[0], Y: light.SunDirection[1], Z: light.SunDirection[2]},
		sunIntensity:    light.SunIntensity,
		ambient:         light.Ambient,
	}
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			fx, fy := float64(x), float64(y)
			m.tiles[y+x*m.height] = Tile{
				Bounds: geom.AABB3{Min: geom.Vec3{X: fx, Y: fy}, Max: geom.Vec3{X: fx + 1, Y: fy + 1, Z: 1}},
				Def:    layout.Tiles[y+x*layout.Height],
			}
		}
	}

	for i, s := range def.Spawns {
		if _, err := m.SpawnActor(SpawnInfoFromData(s)); err != nil {
			return nil, fmt.Errorf("new map %s: spawn %d: %w", def.Name, i, err)
		}
	}

	m.log.Info("地圖載入完成",
		zap.String("map", def.Name),
		zap.Int("width", m.width),
		zap.Int("height", m.height),
		zap.Int("actors", m.actors.Live()),
	)
	return m, nil
}

func (m *Map) Name() string { return m.def.Name }
func (m *Map) Width() int   { return m.width }
func (m *Map) Height() int  { return m.height }

// Bus is the event bus gameplay events are emitted on.
func (m *Map) Bus() *event.Bus { return m.bus }

// TileAt returns the tile at grid coords, or nil outside the map.
func (m *Map) TileAt(x, y int) *Tile {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return nil
	}
	return &m.tiles[y+x*m.height]
}

// IsTileSolid reports whether the tile at (x,y) blocks. Cells outside the map
// never do.
func (m *Map) IsTileSolid(x, y int) bool {
	t := m.TileAt(x, y)
	return t != nil && t.Solid()
}

// TileCoords returns the grid cell containing p.
func TileCoords(p geom.Vec3) (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// IsPositionInBounds reports whether p lies over the map's footprint,
// widened by tolerance on every side.
func (m *Map) IsPositionInBounds(p geom.Vec3, tolerance float64) bool {
	return p.X >= -tolerance && p.Y >= -tolerance &&
		p.X <= float64(m.width)+tolerance && p.Y <= float64(m.height)+tolerance
}

// Resolve is the only safe way from a handle to an actor. It returns nil for
// invalid, out-of-range, freed or reused-slot handles.
func (m *Map) Resolve(h ecs.Handle) *Actor { return m.actors.Resolve(h) }

// ResolveController returns the controller h refers to, or nil.
func (m *Map) ResolveController(h ecs.Handle) *Controller { return m.controllers.Resolve(h) }

// ActorCount is the number of occupied actor slots.
func (m *Map) ActorCount() int { return m.actors.Live() }

// EachActor visits every actor in slot order until fn returns false.
func (m *Map) EachActor(fn func(a *Actor) bool) {
	m.actors.Each(func(_ ecs.Handle, a *Actor) bool { return fn(a) })
}

// FindActors returns every actor whose definition is named name.
func (m *Map) FindActors(name string) []*Actor {
	var out []*Actor
	m.EachActor(func(a *Actor) bool {
		if a.def.Name == name {
			out = append(out, a)
		}
		return true
	})
	return out
}

// SpawnActor creates an actor in the lowest free slot. It fails with
// ErrSpawnExhausted once the uid counter is spent, with ErrUnknownActor
// when no definition has the requested name and with ErrUnknownWeapon when
// its inventory names a missing weapon.
func (m *Map) SpawnActor(info SpawnInfo) (*Actor, error) {
	def := m.defs.Actors.Get(info.Name)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActor, info.Name)
	}
	weapons := make([]*data.WeaponDefinition, 0, len(def.Inventory))
	for _, name := range def.Inventory {
		wd := m.defs.Weapons.Get(name)
		if wd == nil {
			return nil, fmt.Errorf("%w: %q in %s inventory", ErrUnknownWeapon, name, def.Name)
		}
		weapons = append(weapons, wd)
	}
	if info.Owner == 0 {
		info.Owner = ecs.InvalidHandle
	}

	a := &Actor{
		m:            m,
		def:          def,
		Position:     info.Position,
		Velocity:     info.Velocity,
		Orientation:  info.Orientation,
		health:       def.Health,
		faction:      def.Faction,
		owner:        info.Owner,
		current:      -1,
		controller:   ecs.InvalidHandle,
		aiController: ecs.InvalidHandle,
	}
	if info.HasFaction {
		a.faction = info.Faction
	}
	h, ok := m.actors.Alloc(a)
	if !ok {
		m.log.Debug("actor spawn refused", zap.String("actor", info.Name), zap.Uint32("next_uid", m.actors.NextUID()))
		return nil, ErrSpawnExhausted
	}
	a.handle = h

	for _, wd := range weapons {
		a.weapons = append(a.weapons, &Weapon{m: m, def: wd, owner: h})
	}
	if len(a.weapons) > 0 {
		a.current = 0
	}
	a.refreshCylinder()

	if def.AI.Enabled {
		ai := m.newController(false, DeviceNone)
		if ai != nil {
			a.aiController = ai.handle
			ai.Possess(h)
		}
	}
	if def.DieOnSpawn {
		a.die()
	}

	event.Emit(m.bus, event.ActorSpawned{Handle: h, Name: def.Name, Faction: a.faction, Owner: a.owner})
	return a, nil
}

func (m *Map) newController(player bool, device Device) *Controller {
	c := &Controller{
		m:            m,
		player:       player,
		device:       device,
		actor:        ecs.InvalidHandle,
		target:       ecs.InvalidHandle,
		lastAttacker: ecs.InvalidHandle,
	}
	h, ok := m.controllers.Alloc(c)
	if !ok {
		m.log.Warn("controller slots exhausted")
		return nil
	}
	c.handle = h
	return c
}

// NewPlayerController registers a player bound to device. It possesses
// nothing until the next respawn phase.
func (m *Map) NewPlayerController(device Device) *Controller {
	c := m.newController(true, device)
	if c == nil {
		return nil
	}
	c.index = len(m.players)
	m.players = append(m.players, c.handle)
	return c
}

// Players returns the player controllers in creation order.
func (m *Map) Players() []*Controller {
	out := make([]*Controller, 0, len(m.players))
	for _, h := range m.players {
		if c := m.controllers.Resolve(h); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Update runs one full tick: actors, actor collision, world collision,
// sweep, respawn.
func (m *Map) Update(dt float64) {
	m.UpdateActors(dt)
	m.CollideActors()
	m.CollideActorsWithMap()
	m.SweepGarbage()
	m.RespawnPlayers()
}

// UpdateCameras moves every player camera to its actor's eye.
func (m *Map) UpdateCameras() {
	for _, c := range m.Players() {
		c.UpdateCamera()
	}
}

// UpdateActors advances death timers, physics and AI for every actor, in
// slot order. Actors spawned during the pass are updated in the same pass.
func (m *Map) UpdateActors(dt float64) {
	m.actors.Each(func(_ ecs.Handle, a *Actor) bool {
		a.update(dt)
		return true
	})
}

// SweepGarbage frees every actor flagged garbage along with its AI
// controller. It returns the number freed.
func (m *Map) SweepGarbage() int {
	n := 0
	for i := 0; i < m.actors.Len(); i++ {
		a, h := m.actors.At(i)
		if a == nil || !a.garbage {
			continue
		}
		m.controllers.Free(a.aiController)
		m.actors.Free(h)
		n++
	}
	return n
}

// RespawnPlayers gives every player controller without a live actor a new
// one at a random spawn point.
func (m *Map) RespawnPlayers() {
	for _, c := range m.Players() {
		if c.Actor() != nil {
			continue
		}
		a, err := m.SpawnPlayer()
		if err != nil {
			m.log.Debug("player respawn skipped", zap.Int("player", c.index), zap.Error(err))
			continue
		}
		c.Possess(a.handle)
	}
}

// SpawnPlayer spawns the player actor at a random spawn point.
func (m *Map) SpawnPlayer() (*Actor, error) {
	points := m.FindActors(m.spawnPointActor)
	if len(points) == 0 {
		return nil, fmt.Errorf("no %s on map %s", m.spawnPointActor, m.def.Name)
	}
	p := points[m.rng.Intn(len(points))]
	return m.SpawnActor(SpawnInfo{
		Name:        m.playerActor,
		Position:    p.Position,
		Orientation: p.Orientation,
		Velocity:    p.Velocity,
	})
}

// DebugPossessNext moves c to the next live possessable actor after the one
// it currently drives, wrapping around the slot array.
func (m *Map) DebugPossessNext(c *Controller) bool {
	n := m.actors.Len()
	if n == 0 {
		return false
	}
	start := 0
	if cur := c.Actor(); cur != nil {
		start = int(cur.handle.Index()) + 1
	}
	for i := 0; i < n; i++ {
		a, h := m.actors.At((start + i) % n)
		if a == nil || a.dead || !a.def.CanBePossessed {
			continue
		}
		c.Possess(h)
		return true
	}
	return false
}

func (m *Map) roll(r data.FloatRange, src DamageSource, attacker, victim data.Faction) float64 {
	return m.damage.Damage(DamageRoll{
		Range:           r,
		Roll:            m.rng.Float64(),
		Source:          src,
		AttackerFaction: attacker,
		VictimFaction:   victim,
	})
}

// spawnEffect places a one-shot effect actor. Failures only cost the visual.
func (m *Map) spawnEffect(name string, pos geom.Vec3) {
	if name == "" {
		return
	}
	if _, err := m.SpawnActor(SpawnInfo{Name: name, Position: pos}); err != nil {
		m.log.Debug("effect spawn skipped", zap.String("actor", name), zap.Error(err))
	}
}
