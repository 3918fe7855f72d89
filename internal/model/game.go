package model

import "time"

// GameID uniquely identifies a game
type GameID string

// MaxPlayers is the player limit per game
const MaxPlayers = 3

// EndReason explains why a game ended
type EndReason string

const (
	EndReasonNone         EndReason = ""
	EndReasonPlayerOut    EndReason = "player_out_of_tiles"
	EndReasonAllSkipped   EndReason = "all_skipped_twice"
)

// GameState is the authoritative game record. It is replaced wholesale on
// every update: read, run the full pipeline, persist the entire record.
// Seq is a monotonic version token; an update whose base Seq does not match
// the stored record is rejected as a version conflict.
type GameState struct {
	ID              GameID                    `json:"id"`
	Seq             int64                     `json:"seq"`
	Board           *Board                    `json:"board"`
	Bag             []rune                    `json:"bag"`
	Players         []*Player                 `json:"players"` // In join order
	CurrentPlayerID PlayerID                  `json:"current_player_id"`
	TurnNumber      int                       `json:"turn_number"`
	Moves           []Move                    `json:"moves"`
	Ended           bool                      `json:"ended"`
	WinnerID        PlayerID                  `json:"winner_id,omitempty"`
	EndReason       EndReason                 `json:"end_reason,omitempty"`
	Previews        map[PlayerID][]PlacedTile `json:"previews,omitempty"` // Advisory, never authoritative
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// Clone returns a deep copy of the record. Storage backends that keep
// records in process memory hand out clones, so a caller mutating a fetched
// record never races a reader holding the stored one.
func (g *GameState) Clone() *GameState {
	c := *g
	if g.Board != nil {
		c.Board = g.Board.Clone()
	}
	c.Bag = append([]rune(nil), g.Bag...)
	c.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		pc := *p
		c.Players[i] = &pc
	}
	c.Moves = make([]Move, len(g.Moves))
	for i, m := range g.Moves {
		m.Tiles = append([]PlacedTile(nil), m.Tiles...)
		m.Words = append([]string(nil), m.Words...)
		c.Moves[i] = m
	}
	if g.Previews != nil {
		c.Previews = make(map[PlayerID][]PlacedTile, len(g.Previews))
		for id, tiles := range g.Previews {
			c.Previews[id] = append([]PlacedTile(nil), tiles...)
		}
	}
	return &c
}

// PlayerByID returns the player with the given id, or nil
func (g *GameState) PlayerByID(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// NextPlayerID returns the player whose turn follows the given player's
func (g *GameState) NextPlayerID(after PlayerID) PlayerID {
	if len(g.Players) == 0 {
		return ""
	}
	for i, p := range g.Players {
		if p.ID == after {
			return g.Players[(i+1)%len(g.Players)].ID
		}
	}
	return g.Players[0].ID
}
