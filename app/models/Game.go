package models

import "time"

// Game is the lobby listing row in Postgres. Status mirrors the session
// lifecycle: "lobby", "in_progress", "finished".
type Game struct {
	Id      string
	Name    string
	Creator string
	Status  string
}

// GameSnapshotRow stores the latest serialized session per game.
type GameSnapshotRow struct {
	tableName struct{} `pg:"game_snapshots"`

	Game_id  string `pg:",pk"`
	Version  string
	Data     string
	Saved_at time.Time
}

type GameCreateDto struct {
	Name    string
	Creator string
}

type VerifyGameDto struct {
	Code    string
	User_id string
}
