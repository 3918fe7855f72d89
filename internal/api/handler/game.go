package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eruditgame/erudit-server/internal/api/middleware"
	"github.com/eruditgame/erudit-server/internal/api/request"
	"github.com/eruditgame/erudit-server/internal/api/response"
	"github.com/eruditgame/erudit-server/internal/api/sse"
	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/services/dictionary"
	"github.com/eruditgame/erudit-server/internal/services/game"
	"github.com/eruditgame/erudit-server/internal/services/words"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	dictService    *dictionary.Service
	hubManager     *sse.HubManager
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameController *game.Controller,
	dictService *dictionary.Service,
	hubManager *sse.HubManager,
) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		dictService:    dictService,
		hubManager:     hubManager,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	state, err := h.gameController.CreateGame(r.Context(), account.ID, account.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameStateFromModel(state, account.ID))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	state, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(state, account.ID))
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = account.DisplayName
	}

	state, err := h.gameController.JoinGame(r.Context(), gameID, account.ID, displayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStateFromModel(state, account.ID))
}

// SubmitMove handles PUT /api/v1/games/{id}/state: the client submits a move
// and optionally its proposed next state; the server re-runs the whole
// pipeline and responds with the authoritative record
func (h *GameHandler) SubmitMove(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.SubmitMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	kind := model.MoveKind(req.Kind)
	switch kind {
	case model.MovePlay, model.MoveSkip, model.MoveExchange:
	default:
		WriteError(w, model.ErrUnknownMoveKind)
		return
	}

	tiles, ok := request.PlacedTilesToModel(req.Tiles)
	if !ok {
		WriteError(w, NewInvalidRequestError("tile letters must be single characters"))
		return
	}

	prior, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	candidate := request.CandidateToModel(req.State, prior)

	if kind == model.MovePlay {
		if err := h.checkWords(prior, candidate, tiles); err != nil {
			WriteError(w, err)
			return
		}
	}

	move := model.Move{
		Kind:     kind,
		PlayerID: account.ID,
		Tiles:    tiles,
	}

	next, err := h.gameController.ApplyUpdate(r.Context(), gameID, candidate, move)
	if err != nil {
		WriteError(w, err)
		return
	}

	applied := next.Moves[len(next.Moves)-1]
	response.JSON(w, http.StatusOK, response.MoveResult{
		Move:  response.MoveFromModel(applied),
		State: response.GameStateFromModel(next, account.ID),
	})
}

// checkWords rejects a play whose formed words are not all in the dictionary.
// The gate is advisory when no dictionary has been loaded.
func (h *GameHandler) checkWords(prior, candidate *model.GameState, tiles []model.PlacedTile) error {
	if h.dictService == nil || !h.dictService.Loaded() {
		return nil
	}

	if len(tiles) == 0 && candidate != nil && candidate.Board != nil {
		tiles = newTiles(prior.Board, candidate.Board)
	}
	if len(tiles) == 0 {
		return nil
	}

	board := prior.Board.Clone()
	for _, t := range tiles {
		if !board.IsValidPosition(t.Pos) || !board.IsEmpty(t.Pos) {
			// Placement validation will produce the precise rejection
			return nil
		}
		board.Set(t.Pos, model.Cell{Letter: t.Letter, Blank: t.Blank})
	}

	for _, w := range words.ExtractAll(board, tiles) {
		if len([]rune(w.Letters)) < 2 {
			continue
		}
		if !h.dictService.IsWord(w.Letters) {
			return model.ErrWordNotAllowed
		}
	}
	return nil
}

// newTiles lists cells empty in the prior board and occupied in the candidate
func newTiles(prior, candidate *model.Board) []model.PlacedTile {
	var tiles []model.PlacedTile
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			if !prior.IsEmpty(pos) {
				continue
			}
			cell := candidate.Get(pos)
			if cell.IsEmpty() {
				continue
			}
			tiles = append(tiles, model.PlacedTile{Pos: pos, Letter: cell.Letter, Blank: cell.Blank})
		}
	}
	return tiles
}

// SavePreview handles PUT /api/v1/games/{id}/preview
func (h *GameHandler) SavePreview(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	var req request.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	tiles, ok := request.PlacedTilesToModel(req.Tiles)
	if !ok {
		WriteError(w, NewInvalidRequestError("tile letters must be single characters"))
		return
	}

	if err := h.gameController.SavePreview(r.Context(), gameID, account.ID, tiles); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events: an SSE stream of game events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	// Reject streams for games that don't exist
	if _, err := h.gameController.GetGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)
	sse.ServeSSE(w, r, hub, account.ID)
}
