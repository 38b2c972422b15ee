package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// KillRecord is one row of the kill log.
type KillRecord struct {
	MatchID       uuid.UUID
	Tick          int64
	VictimHandle  uint32
	VictimName    string
	VictimFaction string
	KillerHandle  uint32
	KillerName    string
	KillerFaction string
	X, Y, Z       float64
	KilledAt      time.Time
}

// KillStore is the write side the KillWriter drains into.
type KillStore interface {
	InsertKills(ctx context.Context, kills []KillRecord) error
}

type KillRepo struct {
	db *DB
}

func NewKillRepo(db *DB) *KillRepo {
	return &KillRepo{db: db}
}

// NewMatchID returns a fresh match identifier.
func NewMatchID() uuid.UUID { return uuid.New() }

// CreateMatch registers a run. digest identifies the content it was played
// with.
func (r *KillRepo) CreateMatch(ctx context.Context, id uuid.UUID, mapName string, seed int64, digest string) error {
	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO matches (id, map_name, seed, content_digest) VALUES ($1, $2, $3, $4)`,
		id, mapName, seed, digest,
	)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

// EndMatch stamps the match end time.
func (r *KillRepo) EndMatch(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE matches SET ended_at = now() WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("end match: %w", err)
	}
	return nil
}

// InsertKills writes a batch of kills in a single transaction.
func (r *KillRepo) InsertKills(ctx context.Context, kills []KillRecord) error {
	if len(kills) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("kills begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, k := range kills {
		if _, err := tx.Exec(ctx,
			`INSERT INTO kills (match_id, tick, victim_handle, victim_name, victim_faction,
			                    killer_handle, killer_name, killer_faction, pos_x, pos_y, pos_z, killed_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			k.MatchID, k.Tick, int64(k.VictimHandle), k.VictimName, k.VictimFaction,
			int64(k.KillerHandle), k.KillerName, k.KillerFaction, k.X, k.Y, k.Z, k.KilledAt,
		); err != nil {
			return fmt.Errorf("kills insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// CountKills returns the number of kills logged for a match.
func (r *KillRepo) CountKills(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx,
		`SELECT count(*) FROM kills WHERE match_id = $1`, id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count kills: %w", err)
	}
	return n, nil
}
