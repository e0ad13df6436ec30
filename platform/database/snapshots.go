package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	"github.com/go-pg/pg/v10"
)

// GameRepo persists session snapshots as JSON rows, one per game. It
// implements engine.SnapshotStore.
type GameRepo struct {
	db *pg.DB
}

func NewGameRepo(db *pg.DB) *GameRepo {
	return &GameRepo{db: db}
}

func (r *GameRepo) SaveSnapshot(snap models.SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot for game %s: %w", snap.Id, err)
	}
	row := &models.GameSnapshotRow{
		Game_id:  snap.Id,
		Version:  snap.Version,
		Data:     string(data),
		Saved_at: time.Now(),
	}
	_, err = r.db.Model(row).
		OnConflict("(game_id) DO UPDATE").
		Set("version = EXCLUDED.version, data = EXCLUDED.data, saved_at = EXCLUDED.saved_at").
		Insert()
	if err != nil {
		return fmt.Errorf("saving game %s: %w", snap.Id, err)
	}
	return nil
}

func (r *GameRepo) LoadSnapshot(gameId string) (models.SessionSnapshot, error) {
	row := &models.GameSnapshotRow{Game_id: gameId}
	if err := r.db.Model(row).WherePK().Select(); err != nil {
		return models.SessionSnapshot{}, fmt.Errorf("loading game %s: %w", gameId, err)
	}
	var snap models.SessionSnapshot
	if err := json.Unmarshal([]byte(row.Data), &snap); err != nil {
		return models.SessionSnapshot{}, fmt.Errorf("decoding game %s: %w", gameId, err)
	}
	return snap, nil
}
