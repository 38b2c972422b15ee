package system

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doomenstein/doomenstein/internal/core/event"
	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/data"
	"github.com/doomenstein/doomenstein/internal/persist"
)

// KillSink accepts batches of kill records without blocking.
type KillSink interface {
	Submit(batch []persist.KillRecord) error
}

// CombatLogSystem keeps the scoreboard and batches kills for the kill log.
// Kills reach it through the event bus one tick after they happen.
// Phase 7 (Persist).
type CombatLogSystem struct {
	bus     *event.Bus
	matchID uuid.UUID
	sink    KillSink // nil when the kill log is disabled
	log     *zap.Logger

	tick         int64
	flushEvery   int64 // ticks
	sinceFlush   int64
	pending      []persist.KillRecord
	killsBy      map[data.Faction]int
	deathsOf     map[data.Faction]int
	droppedKills int
}

func NewCombatLogSystem(bus *event.Bus, matchID uuid.UUID, sink KillSink, flushEvery int64, log *zap.Logger) *CombatLogSystem {
	if flushEvery <= 0 {
		flushEvery = 1
	}
	s := &CombatLogSystem{
		bus:        bus,
		matchID:    matchID,
		sink:       sink,
		log:        log,
		flushEvery: flushEvery,
		killsBy:    make(map[data.Faction]int),
		deathsOf:   make(map[data.Faction]int),
	}
	event.Subscribe(bus, s.onKilled)
	return s
}

func (s *CombatLogSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *CombatLogSystem) onKilled(e event.ActorKilled) {
	s.deathsOf[e.VictimFaction]++
	if e.KillerName != "" {
		s.killsBy[e.KillerFaction]++
	}
	s.log.Info("擊殺",
		zap.String("victim", e.VictimName),
		zap.String("killer", e.KillerName),
		zap.Int64("tick", s.tick),
	)
	if s.sink == nil {
		return
	}
	killer := ""
	if e.KillerName != "" {
		killer = e.KillerFaction.String()
	}
	s.pending = append(s.pending, persist.KillRecord{
		MatchID:       s.matchID,
		Tick:          s.tick,
		VictimHandle:  uint32(e.Victim),
		VictimName:    e.VictimName,
		VictimFaction: e.VictimFaction.String(),
		KillerHandle:  uint32(e.Killer),
		KillerName:    e.KillerName,
		KillerFaction: killer,
		X:             e.Position.X,
		Y:             e.Position.Y,
		Z:             e.Position.Z,
		KilledAt:      time.Now(),
	})
}

func (s *CombatLogSystem) Update(_ time.Duration) {
	s.tick++
	s.sinceFlush++
	if s.sinceFlush < s.flushEvery {
		return
	}
	s.sinceFlush = 0
	s.Flush()
}

// Flush hands every pending kill to the sink. A busy sink drops the batch.
func (s *CombatLogSystem) Flush() {
	if s.sink == nil || len(s.pending) == 0 {
		return
	}
	batch := s.pending
	s.pending = nil
	if err := s.sink.Submit(batch); err != nil {
		s.droppedKills += len(batch)
		s.log.Warn("kill batch dropped", zap.Int("kills", len(batch)), zap.Error(err))
	}
}

// Close delivers the events still queued on the bus, which include the
// kills of the final tick, then flushes. Call it once the loop has stopped.
func (s *CombatLogSystem) Close() {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	s.Flush()
}

// Score is one faction's line on the scoreboard.
type Score struct {
	Faction data.Faction
	Kills   int
	Deaths  int
}

// Scoreboard lists every faction that killed or died, by faction order.
func (s *CombatLogSystem) Scoreboard() []Score {
	seen := make(map[data.Faction]bool)
	var out []Score
	add := func(f data.Faction) {
		if seen[f] {
			return
		}
		seen[f] = true
		out = append(out, Score{Faction: f, Kills: s.killsBy[f], Deaths: s.deathsOf[f]})
	}
	for f := range s.killsBy {
		add(f)
	}
	for f := range s.deathsOf {
		add(f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Faction < out[j].Faction })
	return out
}

// LogSummary writes the scoreboard at shutdown.
func (s *CombatLogSystem) LogSummary() {
	for _, sc := range s.Scoreboard() {
		s.log.Info("戰績",
			zap.Stringer("faction", sc.Faction),
			zap.Int("kills", sc.Kills),
			zap.Int("deaths", sc.Deaths),
		)
	}
	if s.droppedKills > 0 {
		s.log.Warn("kill log incomplete", zap.Int("dropped", s.droppedKills))
	}
}
