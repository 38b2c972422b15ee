package system_test

import (
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/doomenstein/doomenstein/internal/core/event"
	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/geom"
	"github.com/doomenstein/doomenstein/internal/persist"
	"github.com/doomenstein/doomenstein/internal/system"
	"github.com/doomenstein/doomenstein/internal/world"
)

const tick = time.Second / 60

func loadMap(t *testing.T) *world.Map {
	t.Helper()
	defs, err := data.Load(data.DefaultPaths(filepath.Join("..", "..", "data", "yaml")))
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	m, err := world.NewMap(defs.Maps.Get("TestMap"), world.Deps{
		Defs: defs,
		Log:  zap.NewNop(),
		Rand: rand.New(rand.NewSource(7)),
	})
	if err != nil {
		t.Fatalf("new map: %v", err)
	}
	return m
}

func newRunner(m *world.Map, src system.InputSource) *coresys.Runner {
	r := coresys.NewRunner()
	// registered out of order on purpose; the runner sorts by phase
	r.Register(system.NewRespawnSystem(m))
	r.Register(system.NewCleanupSystem(m, zap.NewNop()))
	r.Register(system.NewWorldCollisionSystem(m))
	r.Register(system.NewActorCollisionSystem(m))
	r.Register(system.NewActorUpdateSystem(m))
	r.Register(system.NewEventDispatchSystem(m.Bus()))
	r.Register(system.NewInputSystem(m, src, zap.NewNop()))
	return r
}

type fakeSink struct {
	batches [][]persist.KillRecord
	err     error
}

func (s *fakeSink) Submit(batch []persist.KillRecord) error {
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, batch)
	return nil
}

func TestTickSpawnsPlayerAndPlacesCamera(t *testing.T) {
	m := loadMap(t)
	c := m.NewPlayerController(world.DeviceKeyboardMouse)
	r := newRunner(m, system.NewInputQueue(8))

	r.Tick(tick)

	a := c.Actor()
	if a == nil || a.Name() != "Marine" {
		t.Fatal("player has no marine after one tick")
	}
	want := a.Position.Add(geom.Vec3{Z: a.Def().Camera.EyeHeight})
	if c.Position != want {
		t.Fatalf("camera at %+v, want %+v", c.Position, want)
	}
}

func TestQueuedInputReachesPlayer(t *testing.T) {
	m := loadMap(t)
	c := m.NewPlayerController(world.DeviceKeyboardMouse)
	q := system.NewInputQueue(8)
	r := newRunner(m, q)
	r.Tick(tick)
	yaw := c.Actor().Orientation.Yaw

	if !q.Push(system.InputCommand{Player: 0, Input: world.PlayerInput{Device: world.DeviceKeyboardMouse, Look: geom.Vec2{X: 8}}}) {
		t.Fatal("push refused")
	}
	q.Push(system.InputCommand{Player: 3, Input: world.PlayerInput{Device: world.DeviceKeyboardMouse, Look: geom.Vec2{X: 800}}})
	r.Tick(tick)

	if got := c.Actor().Orientation.Yaw; got != yaw-1 {
		t.Fatalf("yaw = %v, want %v", got, yaw-1)
	}
}

func TestInputQueueFull(t *testing.T) {
	q := system.NewInputQueue(1)
	if !q.Push(system.InputCommand{}) {
		t.Fatal("first push refused")
	}
	if q.Push(system.InputCommand{}) {
		t.Fatal("push into a full queue accepted")
	}
}

func TestAutopilotSimulationKeepsInvariants(t *testing.T) {
	m := loadMap(t)
	m.NewPlayerController(world.DeviceKeyboardMouse)
	m.NewPlayerController(world.DeviceGamepad)
	r := newRunner(m, system.NewAutopilot(m, rand.New(rand.NewSource(3))))

	for i := 0; i < 600; i++ {
		r.Tick(tick)
		for _, c := range m.Players() {
			if c.Actor() == nil {
				t.Fatalf("tick %d: player %d has no actor after respawn", i, c.Index())
			}
		}
		m.EachActor(func(a *world.Actor) bool {
			if m.Resolve(a.Handle()) != a {
				t.Fatalf("tick %d: actor %s does not resolve through its own handle", i, a.Name())
			}
			if !m.IsPositionInBounds(a.Position, 0) {
				t.Fatalf("tick %d: %s escaped the map at %+v", i, a.Name(), a.Position)
			}
			return true
		})
	}
}

func TestAutopilotFiresAtEnemyInSights(t *testing.T) {
	m := loadMap(t)
	c := m.NewPlayerController(world.DeviceKeyboardMouse)
	m.RespawnPlayers()
	a := c.Actor()

	fwd := a.Forward()
	if _, err := m.SpawnActor(world.SpawnInfo{Name: "Demon", Position: a.Position.Add(fwd.Scale(1.5))}); err != nil {
		t.Fatal(err)
	}
	in, ok := system.NewAutopilot(m, rand.New(rand.NewSource(1))).Next(c)
	if !ok || !in.Fire {
		t.Fatalf("input = %+v, want fire", in)
	}
}

func TestCombatLogBatchesKills(t *testing.T) {
	bus := event.NewBus()
	sink := &fakeSink{}
	id := persist.NewMatchID()
	s := system.NewCombatLogSystem(bus, id, sink, 2, zap.NewNop())

	event.Emit(bus, event.ActorKilled{VictimName: "Demon", VictimFaction: data.FactionDemon, KillerName: "Marine", KillerFaction: data.FactionMarine})
	event.Emit(bus, event.ActorKilled{VictimName: "Marine", VictimFaction: data.FactionMarine})
	bus.SwapBuffers()
	bus.DispatchAll()

	s.Update(tick)
	if len(sink.batches) != 0 {
		t.Fatal("flushed before the interval")
	}
	s.Update(tick)
	if len(sink.batches) != 1 || len(sink.batches[0]) != 2 {
		t.Fatalf("batches = %+v, want one batch of two", sink.batches)
	}
	k := sink.batches[0][0]
	if k.MatchID != id || k.VictimFaction != "Demon" || k.KillerFaction != "Marine" {
		t.Fatalf("record = %+v", k)
	}
	if sink.batches[0][1].KillerFaction != "" {
		t.Fatal("kill without a resolved killer credited to a faction")
	}

	board := s.Scoreboard()
	want := []system.Score{
		{Faction: data.FactionMarine, Kills: 1, Deaths: 1},
		{Faction: data.FactionDemon, Kills: 0, Deaths: 1},
	}
	if len(board) != len(want) {
		t.Fatalf("scoreboard = %+v", board)
	}
	for i := range want {
		if board[i] != want[i] {
			t.Fatalf("scoreboard[%d] = %+v, want %+v", i, board[i], want[i])
		}
	}
}

func TestCombatLogDropsOnBusySink(t *testing.T) {
	bus := event.NewBus()
	sink := &fakeSink{err: errors.New("busy")}
	s := system.NewCombatLogSystem(bus, persist.NewMatchID(), sink, 1, zap.NewNop())
	event.Emit(bus, event.ActorKilled{VictimName: "Demon", VictimFaction: data.FactionDemon})
	bus.SwapBuffers()
	bus.DispatchAll()

	s.Update(tick)
	sink.err = nil
	s.Flush()
	if len(sink.batches) != 0 {
		t.Fatal("dropped batch was retried")
	}
}

func TestCombatLogWithoutSink(t *testing.T) {
	bus := event.NewBus()
	s := system.NewCombatLogSystem(bus, persist.NewMatchID(), nil, 1, zap.NewNop())
	event.Emit(bus, event.ActorKilled{VictimName: "Demon", VictimFaction: data.FactionDemon})
	bus.SwapBuffers()
	bus.DispatchAll()
	s.Update(tick)
	if b := s.Scoreboard(); len(b) != 1 || b[0].Deaths != 1 {
		t.Fatalf("scoreboard = %+v", b)
	}
}

func TestCombatLogCloseDeliversFinalTick(t *testing.T) {
	bus := event.NewBus()
	sink := &fakeSink{}
	s := system.NewCombatLogSystem(bus, persist.NewMatchID(), sink, 100, zap.NewNop())

	// emitted during the last tick, never dispatched by the loop
	event.Emit(bus, event.ActorKilled{VictimName: "Demon", VictimFaction: data.FactionDemon, KillerName: "Marine", KillerFaction: data.FactionMarine})
	s.Close()

	if len(sink.batches) != 1 || len(sink.batches[0]) != 1 {
		t.Fatalf("batches = %+v, want the final kill", sink.batches)
	}
	if b := s.Scoreboard(); len(b) != 2 || b[0].Kills != 1 {
		t.Fatalf("scoreboard = %+v", b)
	}
	if event.Pending[event.ActorKilled](bus) != 0 {
		t.Fatal("events left on the bus after close")
	}
}

func TestSnapshotSystemSamplesEveryN(t *testing.T) {
	m := loadMap(t)
	m.NewPlayerController(world.DeviceKeyboardMouse)
	r := newRunner(m, system.NewInputQueue(8))
	snap := system.NewSnapshotSystem(m, 3, zap.NewNop())
	r.Register(snap)

	r.Tick(tick)
	r.Tick(tick)
	if snap.Last().Map != "" {
		t.Fatal("snapshot taken before the interval")
	}
	r.Tick(tick)
	s := snap.Last()
	if s.Map != "TestMap" || len(s.Actors) != m.ActorCount() {
		t.Fatalf("snapshot %q has %d actors, want %d", s.Map, len(s.Actors), m.ActorCount())
	}
	if len(s.Cameras) != 1 || s.Cameras[0].Actor != m.Players()[0].ActorHandle() {
		t.Fatalf("cameras = %+v", s.Cameras)
	}
}
