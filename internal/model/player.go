package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// RackSize is the number of tile slots in a player's rack
const RackSize = 7

// RackSlot is a single rack position, empty or holding one tile.
// A wildcard tile in the rack carries Letter == Blank and Blank == true.
type RackSlot struct {
	Letter rune `json:"letter,omitempty"`
	Blank  bool `json:"blank,omitempty"`
}

// IsEmpty returns true if the slot holds no tile
func (s RackSlot) IsEmpty() bool {
	return s.Letter == 0
}

// Player is a participant in a game, with their rack and cumulative score.
// Score never decreases across validated play moves and stays flat on
// skip and exchange moves.
type Player struct {
	ID          PlayerID            `json:"id"`
	DisplayName string              `json:"display_name"`
	Rack        [RackSize]RackSlot  `json:"rack"`
	Score       int                 `json:"score"`
}

// RackEmpty returns true if every rack slot is empty
func (p *Player) RackEmpty() bool {
	for _, slot := range p.Rack {
		if !slot.IsEmpty() {
			return false
		}
	}
	return true
}

// RackTileCount returns the number of tiles currently in the rack
func (p *Player) RackTileCount() int {
	count := 0
	for _, slot := range p.Rack {
		if !slot.IsEmpty() {
			count++
		}
	}
	return count
}

// Account is a system-level identity that can join games
type Account struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisteredAccount extends Account with authentication data.
// Stored separately so the password hash never travels with sessions.
type RegisteredAccount struct {
	PlayerID     PlayerID  `json:"player_id"`
	Username     string    `json:"username"` // login username (immutable)
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
