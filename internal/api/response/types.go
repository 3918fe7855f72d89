package response

import (
	"time"

	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/services/auth"
)

// Account represents an account in API responses
type Account struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AccountFromModel converts a model.Account to a response Account
func AccountFromModel(a *model.Account) Account {
	return Account{
		ID:          string(a.ID),
		DisplayName: a.DisplayName,
		IsGuest:     a.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Account      Account `json:"account"`
	SessionToken string  `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Account:      AccountFromModel(&s.Account),
		SessionToken: s.Token,
	}
}

// Cell represents a board cell. Empty cells have an empty letter.
type Cell struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Board represents the shared game board
type Board struct {
	Cells [][]Cell `json:"cells"`
}

// BoardFromModel converts model.Board to a response Board
func BoardFromModel(b *model.Board) Board {
	cells := make([][]Cell, model.BoardSize)
	for row := 0; row < model.BoardSize; row++ {
		cells[row] = make([]Cell, model.BoardSize)
		for col := 0; col < model.BoardSize; col++ {
			c := b.Cells[row][col]
			if !c.IsEmpty() {
				cells[row][col] = Cell{Letter: string(c.Letter), Blank: c.Blank}
			}
		}
	}
	return Board{Cells: cells}
}

// RackSlot represents a tile on a player's rack
type RackSlot struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Player represents a player in game responses. Racks are only populated
// for the requesting player; opponents expose a tile count.
type Player struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Score       int        `json:"score"`
	RackCount   int        `json:"rack_count"`
	Rack        []RackSlot `json:"rack,omitempty"`
}

// PlacedTile represents a tile placed by a move
type PlacedTile struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// PlacedTileFromModel converts a model.PlacedTile
func PlacedTileFromModel(t model.PlacedTile) PlacedTile {
	return PlacedTile{
		Row:    t.Pos.Row,
		Col:    t.Pos.Col,
		Letter: string(t.Letter),
		Blank:  t.Blank,
	}
}

// Move represents a played move
type Move struct {
	Kind     string       `json:"kind"`
	PlayerID string       `json:"player_id"`
	Words    []string     `json:"words,omitempty"`
	Score    int          `json:"score"`
	Tiles    []PlacedTile `json:"tiles,omitempty"`
	PlayedAt time.Time    `json:"played_at"`
}

// MoveFromModel converts a model.Move
func MoveFromModel(m model.Move) Move {
	tiles := make([]PlacedTile, len(m.Tiles))
	for i, t := range m.Tiles {
		tiles[i] = PlacedTileFromModel(t)
	}
	return Move{
		Kind:     string(m.Kind),
		PlayerID: string(m.PlayerID),
		Words:    m.Words,
		Score:    m.Score,
		Tiles:    tiles,
		PlayedAt: m.PlayedAt,
	}
}

// GameState represents a game in API responses. Bag contents and opponent
// racks are hidden from the client; only counts are exposed.
type GameState struct {
	ID            string       `json:"id"`
	Seq           int64        `json:"seq"`
	Board         Board        `json:"board"`
	BagCount      int          `json:"bag_count"`
	Players       []Player     `json:"players"`
	CurrentPlayer string       `json:"current_player"`
	TurnNumber    int          `json:"turn_number"`
	LastMove      *Move        `json:"last_move,omitempty"`
	MyPreview     []PlacedTile `json:"my_preview,omitempty"`
	Ended         bool         `json:"ended"`
	Winner        *string      `json:"winner,omitempty"`
	EndReason     string       `json:"end_reason,omitempty"`
}

// GameStateFromModel converts model.GameState to a response for a viewer.
// The viewer sees their own rack and preview; other players' racks are counts.
func GameStateFromModel(g *model.GameState, viewerID model.PlayerID) GameState {
	players := make([]Player, len(g.Players))
	for i, p := range g.Players {
		rp := Player{
			ID:          string(p.ID),
			DisplayName: p.DisplayName,
			Score:       p.Score,
			RackCount:   p.RackTileCount(),
		}
		if p.ID == viewerID {
			for _, slot := range p.Rack {
				if slot.IsEmpty() {
					continue
				}
				rp.Rack = append(rp.Rack, RackSlot{Letter: string(slot.Letter), Blank: slot.Blank})
			}
		}
		players[i] = rp
	}

	var lastMove *Move
	if len(g.Moves) > 0 {
		m := MoveFromModel(g.Moves[len(g.Moves)-1])
		lastMove = &m
	}

	var preview []PlacedTile
	if tiles, ok := g.Previews[viewerID]; ok {
		preview = make([]PlacedTile, len(tiles))
		for i, t := range tiles {
			preview[i] = PlacedTileFromModel(t)
		}
	}

	var winner *string
	if g.WinnerID != "" {
		w := string(g.WinnerID)
		winner = &w
	}

	return GameState{
		ID:            string(g.ID),
		Seq:           g.Seq,
		Board:         BoardFromModel(g.Board),
		BagCount:      len(g.Bag),
		Players:       players,
		CurrentPlayer: string(g.CurrentPlayerID),
		TurnNumber:    g.TurnNumber,
		LastMove:      lastMove,
		MyPreview:     preview,
		Ended:         g.Ended,
		Winner:        winner,
		EndReason:     string(g.EndReason),
	}
}

// MoveResult is the response after submitting a move
type MoveResult struct {
	Move  Move      `json:"move"`
	State GameState `json:"state"`
}
