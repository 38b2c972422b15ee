package persist

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrWriterBusy is returned by Submit when the queue is full.
var ErrWriterBusy = errors.New("kill writer queue is full")

// KillWriter moves kill batches off the game loop. Submit never blocks; Run
// drains the queue into the store until the context ends, then flushes what
// is left with a short deadline.
type KillWriter struct {
	store KillStore
	queue chan []KillRecord
	log   *zap.Logger

	flushTimeout time.Duration
}

func NewKillWriter(store KillStore, queueSize int, log *zap.Logger) *KillWriter {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &KillWriter{
		store:        store,
		queue:        make(chan []KillRecord, queueSize),
		log:          log,
		flushTimeout: 5 * time.Second,
	}
}

// Submit queues a batch for writing. The batch must not be modified
// afterwards.
func (w *KillWriter) Submit(batch []KillRecord) error {
	if len(batch) == 0 {
		return nil
	}
	select {
	case w.queue <- batch:
		return nil
	default:
		return ErrWriterBusy
	}
}

// Run writes batches until ctx is cancelled. Write failures are logged and
// the batch dropped; the game never waits on the kill log.
func (w *KillWriter) Run(ctx context.Context) error {
	for {
		select {
		case batch := <-w.queue:
			w.write(ctx, batch)
		case <-ctx.Done():
			w.drain()
			return nil
		}
	}
}

func (w *KillWriter) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), w.flushTimeout)
	defer cancel()
	for {
		select {
		case batch := <-w.queue:
			w.write(ctx, batch)
		default:
			return
		}
	}
}

func (w *KillWriter) write(ctx context.Context, batch []KillRecord) {
	if err := w.store.InsertKills(ctx, batch); err != nil {
		w.log.Error("寫入擊殺紀錄失敗", zap.Int("kills", len(batch)), zap.Error(err))
		return
	}
	w.log.Debug("kill batch written", zap.Int("kills", len(batch)))
}
