package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameEnded       = errors.New("game has ended")
	ErrGameFull        = errors.New("game is full")
	ErrAlreadyJoined   = errors.New("player already joined this game")
	ErrPlayerNotInGame = errors.New("player is not in this game")
	ErrNotPlayerTurn   = errors.New("not this player's turn")
	ErrVersionConflict = errors.New("game state has changed, refetch and retry")
	ErrUnknownMoveKind = errors.New("unknown move kind")
	ErrInvalidLetter   = errors.New("letter is not in the tile set")
	ErrWordNotAllowed  = errors.New("word is not in the dictionary")

	// Placement errors, one per structural rule. Checked in order,
	// first failure wins.
	ErrEmptyPlacement    = errors.New("placement has no tiles")
	ErrInvalidPosition   = errors.New("position is off the board")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrNotALine          = errors.New("tiles must share a single row or column")
	ErrGapInPlacement    = errors.New("placement leaves a gap in the line")
	ErrMustIncludeCenter = errors.New("first move must cover the center square")
	ErrMustConnect       = errors.New("placement must connect to existing tiles")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
