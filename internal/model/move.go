package model

import "time"

// MoveKind distinguishes the move types in the log
type MoveKind string

const (
	MovePlay     MoveKind = "play"
	MoveSkip     MoveKind = "skip"
	MoveExchange MoveKind = "exchange"
)

// PlacedTile is one tile laid on the board by a play move
type PlacedTile struct {
	Pos    Position `json:"pos"`
	Letter rune     `json:"letter"`
	Blank  bool     `json:"blank,omitempty"`
}

// Move is an append-only log entry. For play moves, Words and Score are
// authoritative server-computed values; whatever a client submits for them
// is overwritten.
type Move struct {
	Kind     MoveKind     `json:"kind"`
	PlayerID PlayerID     `json:"player_id"`
	Words    []string     `json:"words,omitempty"`
	Score    int          `json:"score"`
	Tiles    []PlacedTile `json:"tiles,omitempty"`
	PlayedAt time.Time    `json:"played_at"`
}
