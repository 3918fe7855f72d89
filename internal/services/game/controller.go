package game

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/eruditgame/erudit-server/internal/dependencies/clock"
	"github.com/eruditgame/erudit-server/internal/dependencies/random"
	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/services/economy"
	"github.com/eruditgame/erudit-server/internal/services/endgame"
	"github.com/eruditgame/erudit-server/internal/services/placement"
	"github.com/eruditgame/erudit-server/internal/services/scoring"
	"github.com/eruditgame/erudit-server/internal/services/words"
	"github.com/eruditgame/erudit-server/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Publisher delivers events to connected clients
type Publisher interface {
	Publish(gameID model.GameID, event model.Event)
}

// Controller is the move transition controller. Every state change runs the
// full pipeline over the prior authoritative record and persists the whole
// resulting record as one unit. A per-game mutex serializes writers, and the
// record's sequence token turns concurrent submissions into explicit,
// retryable conflicts instead of silent last-write-wins.
type Controller struct {
	storage        storage.Storage
	scoringService *scoring.Service
	economyService *economy.Service
	clock          clock.Clock
	random         random.Random
	logger         *slog.Logger
	publisher      Publisher

	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	scoringService *scoring.Service,
	economyService *economy.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:        storage,
		scoringService: scoringService,
		economyService: economyService,
		clock:          clock,
		random:         random,
		logger:         logger,
		locks:          make(map[model.GameID]*sync.Mutex),
	}
}

// SetPublisher attaches an event publisher (optional)
func (c *Controller) SetPublisher(p Publisher) {
	c.publisher = p
}

// CreateGame initializes a new game with the creator as its first player
func (c *Controller) CreateGame(ctx context.Context, hostID model.PlayerID, hostName string) (*model.GameState, error) {
	now := c.clock.Now()
	gameID := model.GameID(c.random.String(12, gameIDAlphabet))

	bag := c.newShuffledBag()
	host := &model.Player{ID: hostID, DisplayName: hostName}
	drawTiles(&bag, host)

	state := &model.GameState{
		ID:              gameID,
		Seq:             1,
		Board:           model.NewBoard(),
		Bag:             bag,
		Players:         []*model.Player{host},
		CurrentPlayerID: hostID,
		TurnNumber:      0,
		Previews:        make(map[model.PlayerID][]model.PlacedTile),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.storage.SaveGame(ctx, state); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("persist game: %w", err)
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("host_id", string(hostID)),
		slog.Int("bag_size", len(bag)),
	)

	return state, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.GameState, error) {
	return c.storage.GetGame(ctx, gameID)
}

// JoinGame adds a player to an existing game
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID, displayName string) (*model.GameState, error) {
	lock := c.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	state, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if state.Ended {
		return nil, model.ErrGameEnded
	}
	if state.PlayerByID(playerID) != nil {
		return nil, model.ErrAlreadyJoined
	}
	if len(state.Players) >= model.MaxPlayers {
		return nil, model.ErrGameFull
	}

	player := &model.Player{ID: playerID, DisplayName: displayName}
	drawTiles(&state.Bag, player)
	state.Players = append(state.Players, player)
	state.Seq++
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, state); err != nil {
		return nil, fmt.Errorf("persist game: %w", err)
	}

	c.logger.Info("player joined",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("player_count", len(state.Players)),
	)

	c.publish(gameID, model.Event{
		Type:      model.EventPlayerJoined,
		Timestamp: state.UpdatedAt,
		GameID:    gameID,
		PlayerID:  playerID,
		Payload: model.PlayerJoinedPayload{
			PlayerID:    playerID,
			DisplayName: displayName,
			PlayerCount: len(state.Players),
		},
	})

	return state, nil
}

// SavePreview stores a player's proposed-but-unsubmitted placement.
// Previews are advisory: they never affect scoring or the tile economy,
// and saving one does not advance the record's sequence token.
func (c *Controller) SavePreview(ctx context.Context, gameID model.GameID, playerID model.PlayerID, tiles []model.PlacedTile) error {
	lock := c.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	state, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if state.PlayerByID(playerID) == nil {
		return model.ErrPlayerNotInGame
	}

	if state.Previews == nil {
		state.Previews = make(map[model.PlayerID][]model.PlacedTile)
	}
	if len(tiles) == 0 {
		delete(state.Previews, playerID)
	} else {
		state.Previews[playerID] = tiles
	}
	state.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveGame(ctx, state); err != nil {
		return fmt.Errorf("persist game: %w", err)
	}
	return nil
}

// ApplyUpdate runs the full move pipeline against a client-submitted
// candidate state: recover the claimed new tiles, validate placement,
// extract and score words (overwriting whatever the client proposed),
// repair the bag, check terminal conditions, then persist the entire new
// record atomically.
func (c *Controller) ApplyUpdate(ctx context.Context, gameID model.GameID, candidate *model.GameState, move model.Move) (*model.GameState, error) {
	lock := c.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	prior, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if prior.Ended {
		return nil, model.ErrGameEnded
	}
	if candidate != nil && candidate.Seq != prior.Seq {
		return nil, model.ErrVersionConflict
	}
	if prior.PlayerByID(move.PlayerID) == nil {
		return nil, model.ErrPlayerNotInGame
	}
	if move.PlayerID != prior.CurrentPlayerID {
		return nil, model.ErrNotPlayerTurn
	}

	move.PlayedAt = c.clock.Now()
	nextBoard := prior.Board.Clone()

	switch move.Kind {
	case model.MovePlay:
		tiles := move.Tiles
		if len(tiles) == 0 && candidate != nil {
			tiles = diffNewTiles(prior.Board, candidate.Board)
		}
		if err := placement.Validate(prior.Board, tiles); err != nil {
			return nil, err
		}
		for _, t := range tiles {
			nextBoard.Set(t.Pos, model.Cell{Letter: t.Letter, Blank: t.Blank})
		}
		formed := words.ExtractAll(nextBoard, tiles)
		move.Tiles = tiles
		move.Words = wordStrings(formed)
		move.Score = c.scoringService.ScoreWords(formed, nextBoard, tiles)

	case model.MoveSkip:
		move.Score = 0
		move.Words = nil
		move.Tiles = nil

	case model.MoveExchange:
		// Tiles, if present, record which rack tiles were swapped back
		move.Score = 0
		move.Words = nil

	default:
		return nil, model.ErrUnknownMoveKind
	}

	nextPlayers := c.carryPlayers(prior, candidate, move)

	var submittedBoard *model.Board
	// With no candidate bag the prior bag stands as the submission; tiles a
	// play moves from rack to board don't change the bag's contents
	submittedBag := prior.Bag
	if candidate != nil {
		submittedBoard = candidate.Board
		if candidate.Bag != nil {
			submittedBag = candidate.Bag
		}
	}

	bag, anomalies := c.economyService.ReconcileBag(
		gameID, model.TileDistribution, prior.Board, submittedBoard, nextPlayers, submittedBag, &move)

	// When the client did not submit its own rack, refill the mover's rack
	// from the repaired bag
	if candidate == nil || candidate.PlayerByID(move.PlayerID) == nil {
		if move.Kind == model.MovePlay || move.Kind == model.MoveExchange {
			for _, p := range nextPlayers {
				if p.ID == move.PlayerID {
					drawTiles(&bag, p)
					break
				}
			}
		}
	}

	next := &model.GameState{
		ID:              prior.ID,
		Seq:             prior.Seq + 1,
		Board:           nextBoard,
		Bag:             bag,
		Players:         nextPlayers,
		CurrentPlayerID: prior.NextPlayerID(move.PlayerID),
		TurnNumber:      prior.TurnNumber + 1,
		Moves:           append(append([]model.Move{}, prior.Moves...), move),
		Previews:        carryPreviews(prior.Previews, move.PlayerID),
		CreatedAt:       prior.CreatedAt,
		UpdatedAt:       move.PlayedAt,
	}

	if ended, reason, winnerID := endgame.Check(next); ended {
		next.Ended = true
		next.EndReason = reason
		next.WinnerID = winnerID
		c.logger.Info("game ended",
			slog.String("game_id", string(gameID)),
			slog.String("reason", string(reason)),
			slog.String("winner_id", string(winnerID)),
		)
	}

	if err := c.storage.SaveGame(ctx, next); err != nil {
		c.logger.Error("failed to persist move",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("persist game: %w", err)
	}

	c.logger.Info("move applied",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(move.PlayerID)),
		slog.String("kind", string(move.Kind)),
		slog.Int("score", move.Score),
		slog.Int("turn", next.TurnNumber),
	)

	c.publishMoveEvents(gameID, next, move, anomalies)

	return next, nil
}

// carryPlayers builds the next player list in join order. Racks and display
// names come from the candidate when the client supplied them; scores are
// always recomputed from the prior record plus the authoritative move score.
func (c *Controller) carryPlayers(prior, candidate *model.GameState, move model.Move) []*model.Player {
	next := make([]*model.Player, 0, len(prior.Players))
	for _, pp := range prior.Players {
		p := &model.Player{
			ID:          pp.ID,
			DisplayName: pp.DisplayName,
			Rack:        pp.Rack,
			Score:       pp.Score,
		}
		var cp *model.Player
		if candidate != nil {
			cp = candidate.PlayerByID(pp.ID)
		}
		if cp != nil {
			p.DisplayName = cp.DisplayName
			p.Rack = cp.Rack
		} else if pp.ID == move.PlayerID && (move.Kind == model.MovePlay || move.Kind == model.MoveExchange) {
			// No candidate rack submitted: account for the played or
			// exchanged tiles ourselves
			removeFromRack(p, move.Tiles)
		}
		if pp.ID == move.PlayerID {
			p.Score += move.Score
		}
		next = append(next, p)
	}
	return next
}

// removeFromRack takes the played tiles out of the rack; a realized blank
// consumes a blank slot, not the letter it displays
func removeFromRack(p *model.Player, tiles []model.PlacedTile) {
	for _, t := range tiles {
		want := t.Letter
		if t.Blank {
			want = model.Blank
		}
		for i, slot := range p.Rack {
			if !slot.IsEmpty() && slot.Letter == want {
				p.Rack[i] = model.RackSlot{}
				break
			}
		}
	}
}

func carryPreviews(previews map[model.PlayerID][]model.PlacedTile, actor model.PlayerID) map[model.PlayerID][]model.PlacedTile {
	next := make(map[model.PlayerID][]model.PlacedTile, len(previews))
	for id, tiles := range previews {
		if id == actor {
			continue
		}
		next[id] = tiles
	}
	return next
}

// diffNewTiles recovers the tiles a candidate board claims as new: cells
// empty in the prior board and occupied in the submission
func diffNewTiles(prior, candidate *model.Board) []model.PlacedTile {
	if candidate == nil {
		return nil
	}
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

func wordStrings(formed []model.WordInfo) []string {
	result := make([]string, len(formed))
	for i, w := range formed {
		result[i] = w.Letters
	}
	return result
}

// newShuffledBag builds the full tile population and shuffles it
func (c *Controller) newShuffledBag() []rune {
	letters := make([]rune, 0, len(model.TileDistribution))
	for letter := range model.TileDistribution {
		letters = append(letters, letter)
	}
	// Stable order before shuffling keeps bag construction deterministic
	// under a mocked Random
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	bag := make([]rune, 0, model.TotalTiles())
	for _, letter := range letters {
		for i := 0; i < model.TileDistribution[letter]; i++ {
			bag = append(bag, letter)
		}
	}
	c.random.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}

// drawTiles fills the player's empty rack slots from the front of the bag
func drawTiles(bag *[]rune, p *model.Player) {
	for i := range p.Rack {
		if !p.Rack[i].IsEmpty() {
			continue
		}
		if len(*bag) == 0 {
			return
		}
		letter := (*bag)[0]
		*bag = (*bag)[1:]
		p.Rack[i] = model.RackSlot{Letter: letter, Blank: letter == model.Blank}
	}
}

func (c *Controller) lockFor(gameID model.GameID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[gameID] = lock
	}
	return lock
}

func (c *Controller) publish(gameID model.GameID, event model.Event) {
	if c.publisher != nil {
		c.publisher.Publish(gameID, event)
	}
}

func (c *Controller) publishMoveEvents(gameID model.GameID, next *model.GameState, move model.Move, anomalies []economy.Anomaly) {
	c.publish(gameID, model.Event{
		Type:      model.EventMovePlayed,
		Timestamp: next.UpdatedAt,
		GameID:    gameID,
		PlayerID:  move.PlayerID,
		Payload: model.MovePlayedPayload{
			Move:         move,
			NextPlayerID: next.CurrentPlayerID,
			TurnNumber:   next.TurnNumber,
		},
	})

	for _, a := range anomalies {
		payload := model.EconomyAnomalyPayload{
			Kind:   a.Kind,
			Detail: a.Detail,
			Row:    a.Pos.Row,
			Col:    a.Pos.Col,
		}
		if a.Letter != 0 {
			payload.Letter = string(a.Letter)
		}
		c.publish(gameID, model.Event{
			Type:      model.EventEconomyAnomaly,
			Timestamp: next.UpdatedAt,
			GameID:    gameID,
			Payload:   payload,
		})
	}

	if next.Ended {
		scores := make(map[model.PlayerID]int, len(next.Players))
		for _, p := range next.Players {
			scores[p.ID] = p.Score
		}
		c.publish(gameID, model.Event{
			Type:      model.EventGameEnded,
			Timestamp: next.UpdatedAt,
			GameID:    gameID,
			Payload: model.GameEndedPayload{
				Reason:   next.EndReason,
				WinnerID: next.WinnerID,
				Scores:   scores,
			},
		})
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, hostID model.PlayerID, hostName string) (*model.GameState, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.GameState, error)
	JoinGame(ctx context.Context, gameID model.GameID, playerID model.PlayerID, displayName string) (*model.GameState, error)
	SavePreview(ctx context.Context, gameID model.GameID, playerID model.PlayerID, tiles []model.PlacedTile) error
	ApplyUpdate(ctx context.Context, gameID model.GameID, candidate *model.GameState, move model.Move) (*model.GameState, error)
}

var _ ControllerInterface = (*Controller)(nil)
