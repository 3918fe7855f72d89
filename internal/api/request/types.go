package request

import (
	"github.com/eruditgame/erudit-server/internal/model"
)

// CreateGuestRequest is the request body for creating a guest account
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PlacedTile is a tile placement in a request body
type PlacedTile struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// ToModel converts a request tile to a model.PlacedTile.
// Returns false if the letter is not a single rune.
func (t PlacedTile) ToModel() (model.PlacedTile, bool) {
	runes := []rune(t.Letter)
	if len(runes) != 1 {
		return model.PlacedTile{}, false
	}
	return model.PlacedTile{
		Pos:    model.Position{Row: t.Row, Col: t.Col},
		Letter: runes[0],
		Blank:  t.Blank,
	}, true
}

// PlacedTilesToModel converts a slice of request tiles.
// Returns false if any letter is not a single rune.
func PlacedTilesToModel(tiles []PlacedTile) ([]model.PlacedTile, bool) {
	result := make([]model.PlacedTile, len(tiles))
	for i, t := range tiles {
		mt, ok := t.ToModel()
		if !ok {
			return nil, false
		}
		result[i] = mt
	}
	return result, true
}

// RackSlot is a rack tile in a request body
type RackSlot struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// Cell is a board cell in a request body. Empty cells have an empty letter.
type Cell struct {
	Letter string `json:"letter"`
	Blank  bool   `json:"blank,omitempty"`
}

// CandidateState is the client's proposed next state, submitted alongside a
// move. All fields are advisory: the server recomputes everything it does not
// trust. Seq must match the current record or the submission is rejected.
type CandidateState struct {
	Seq   int64                 `json:"seq"`
	Board [][]Cell              `json:"board,omitempty"`
	Bag   []string              `json:"bag,omitempty"`
	Racks map[string][]RackSlot `json:"racks,omitempty"`
}

// SubmitMoveRequest is the request body for submitting a move
type SubmitMoveRequest struct {
	Kind  string          `json:"kind"`
	Tiles []PlacedTile    `json:"tiles,omitempty"`
	State *CandidateState `json:"state,omitempty"`
}

// PreviewRequest is the request body for saving a placement preview.
// An empty tile list clears the preview.
type PreviewRequest struct {
	Tiles []PlacedTile `json:"tiles"`
}

// JoinRequest is the request body for joining a game
type JoinRequest struct {
	DisplayName string `json:"display_name,omitempty"`
}

// CandidateToModel builds a model.GameState from a candidate submission,
// overlaying the client's claims onto the prior authoritative record
func CandidateToModel(cs *CandidateState, prior *model.GameState) *model.GameState {
	if cs == nil {
		return nil
	}

	candidate := &model.GameState{
		ID:  prior.ID,
		Seq: cs.Seq,
	}

	if cs.Board != nil {
		board := model.NewBoard()
		for row := 0; row < model.BoardSize && row < len(cs.Board); row++ {
			for col := 0; col < model.BoardSize && col < len(cs.Board[row]); col++ {
				c := cs.Board[row][col]
				runes := []rune(c.Letter)
				if len(runes) != 1 {
					continue
				}
				board.Set(model.Position{Row: row, Col: col}, model.Cell{Letter: runes[0], Blank: c.Blank})
			}
		}
		candidate.Board = board
	}

	if cs.Bag != nil {
		bag := make([]rune, 0, len(cs.Bag))
		for _, s := range cs.Bag {
			runes := []rune(s)
			if len(runes) == 1 {
				bag = append(bag, runes[0])
			}
		}
		candidate.Bag = bag
	}

	if cs.Racks != nil {
		players := make([]*model.Player, 0, len(prior.Players))
		for _, pp := range prior.Players {
			p := &model.Player{ID: pp.ID, DisplayName: pp.DisplayName, Score: pp.Score}
			if slots, ok := cs.Racks[string(pp.ID)]; ok {
				for i, slot := range slots {
					if i >= model.RackSize {
						break
					}
					runes := []rune(slot.Letter)
					if len(runes) != 1 {
						continue
					}
					p.Rack[i] = model.RackSlot{Letter: runes[0], Blank: slot.Blank}
				}
			} else {
				p.Rack = pp.Rack
			}
			players = append(players, p)
		}
		candidate.Players = players
	}

	return candidate
}
