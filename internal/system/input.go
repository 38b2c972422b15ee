package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/doomenstein/doomenstein/internal/core/system"
	"github.com/doomenstein/doomenstein/internal/world"
)

// InputSource yields at most one intent per player controller per tick.
type InputSource interface {
	Next(c *world.Controller) (world.PlayerInput, bool)
}

// InputSystem feeds every player controller its input for the tick.
// Phase 0 (Input).
type InputSystem struct {
	m   *world.Map
	src InputSource
	log *zap.Logger
}

func NewInputSystem(m *world.Map, src InputSource, log *zap.Logger) *InputSystem {
	return &InputSystem{m: m, src: src, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(dt time.Duration) {
	for _, c := range s.m.Players() {
		in, ok := s.src.Next(c)
		if !ok {
			continue
		}
		c.ApplyInput(in, dt.Seconds())
		if in.PossessNext {
			s.log.Debug("debug possess", zap.Int("player", c.Index()), zap.Uint32("actor", uint32(c.ActorHandle())))
		}
	}
}

// InputCommand is one queued intent for a player index.
type InputCommand struct {
	Player int
	Input  world.PlayerInput
}

// InputQueue buffers input pushed from other goroutines. Push never blocks;
// the game loop takes one command per player per tick.
type InputQueue struct {
	ch      chan InputCommand
	pending map[int][]world.PlayerInput
}

func NewInputQueue(size int) *InputQueue {
	return &InputQueue{
		ch:      make(chan InputCommand, size),
		pending: make(map[int][]world.PlayerInput),
	}
}

// Push queues cmd. It reports false when the queue is full.
func (q *InputQueue) Push(cmd InputCommand) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		return false
	}
}

func (q *InputQueue) Next(c *world.Controller) (world.PlayerInput, bool) {
	q.drain()
	list := q.pending[c.Index()]
	if len(list) == 0 {
		return world.PlayerInput{}, false
	}
	in := list[0]
	q.pending[c.Index()] = list[1:]
	return in, true
}

func (q *InputQueue) drain() {
	for {
		select {
		case cmd := <-q.ch:
			q.pending[cmd.Player] = append(q.pending[cmd.Player], cmd.Input)
		default:
			return
		}
	}
}
