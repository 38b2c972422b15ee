package persist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type memStore struct {
	mu      sync.Mutex
	batches [][]KillRecord
	fail    bool
	wrote   chan struct{}
}

func (s *memStore) InsertKills(_ context.Context, kills []KillRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("db down")
	}
	s.batches = append(s.batches, kills)
	if s.wrote != nil {
		s.wrote <- struct{}{}
	}
	return nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func TestKillWriterWritesBatches(t *testing.T) {
	store := &memStore{wrote: make(chan struct{}, 4)}
	w := NewKillWriter(store, 4, zap.NewNop())
	id := NewMatchID()

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })

	if err := w.Submit([]KillRecord{{MatchID: id, Tick: 1}, {MatchID: id, Tick: 2}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	select {
	case <-store.wrote:
	case <-time.After(2 * time.Second):
		t.Fatal("batch never written")
	}

	cancel()
	if err := g.Wait(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if store.count() != 2 {
		t.Fatalf("kills written = %d, want 2", store.count())
	}
}

func TestKillWriterDrainsOnShutdown(t *testing.T) {
	store := &memStore{}
	w := NewKillWriter(store, 8, zap.NewNop())
	for i := 0; i < 3; i++ {
		if err := w.Submit([]KillRecord{{Tick: int64(i)}}); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	if store.count() != 3 {
		t.Fatalf("kills written = %d, want 3 after drain", store.count())
	}
}

func TestKillWriterSubmitNeverBlocks(t *testing.T) {
	w := NewKillWriter(&memStore{}, 1, zap.NewNop())
	if err := w.Submit([]KillRecord{{Tick: 1}}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := w.Submit([]KillRecord{{Tick: 2}}); !errors.Is(err, ErrWriterBusy) {
		t.Fatalf("err = %v, want ErrWriterBusy", err)
	}
	if err := w.Submit(nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}

func TestKillWriterSurvivesStoreErrors(t *testing.T) {
	store := &memStore{fail: true}
	w := NewKillWriter(store, 2, zap.NewNop())
	if err := w.Submit([]KillRecord{{Tick: 1}}); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); err != nil {
		t.Fatalf("run returned %v on store failure", err)
	}
}
