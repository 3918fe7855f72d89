package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeAccountNotFound     = "ACCOUNT_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodeGameEnded           = "GAME_ENDED"
	CodeGameFull            = "GAME_FULL"
	CodeAlreadyJoined       = "ALREADY_JOINED"
	CodeNotInGame           = "NOT_IN_GAME"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeVersionConflict     = "VERSION_CONFLICT"
	CodeEmptyPlacement      = "EMPTY_PLACEMENT"
	CodeInvalidPosition     = "INVALID_POSITION"
	CodeCellOccupied        = "CELL_OCCUPIED"
	CodeNotALine            = "NOT_A_LINE"
	CodeGapInPlacement      = "GAP_IN_PLACEMENT"
	CodeMustIncludeCenter   = "MUST_INCLUDE_CENTER"
	CodeMustConnect         = "MUST_CONNECT"
	CodeWordNotAllowed      = "WORD_NOT_ALLOWED"
	CodeInvalidLetter       = "INVALID_LETTER"
	CodeUnknownMoveKind     = "UNKNOWN_MOVE_KIND"
	CodeDictionaryNotLoaded = "DICTIONARY_NOT_LOADED"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrAccountNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAccountNotFound, "Account not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameEnded):
		return &httpError{http.StatusConflict, APIError{CodeGameEnded, "Game has ended"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game is full"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined this game"}}
	case errors.Is(err, model.ErrPlayerNotInGame):
		return &httpError{http.StatusForbidden, APIError{CodeNotInGame, "Not a player in this game"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeVersionConflict, "Submitted state is stale; refetch and retry"}}

	// Placement validation errors, each with its own code so clients can
	// explain the rejection
	case errors.Is(err, model.ErrEmptyPlacement):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyPlacement, "Move places no tiles"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Tile position is off the board"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrNotALine):
		return &httpError{http.StatusBadRequest, APIError{CodeNotALine, "Tiles must form a single row or column"}}
	case errors.Is(err, model.ErrGapInPlacement):
		return &httpError{http.StatusBadRequest, APIError{CodeGapInPlacement, "Placed word has a gap"}}
	case errors.Is(err, model.ErrMustIncludeCenter):
		return &httpError{http.StatusBadRequest, APIError{CodeMustIncludeCenter, "First move must cover the center square"}}
	case errors.Is(err, model.ErrMustConnect):
		return &httpError{http.StatusBadRequest, APIError{CodeMustConnect, "Move must connect to existing tiles"}}

	case errors.Is(err, model.ErrWordNotAllowed):
		return &httpError{http.StatusBadRequest, APIError{CodeWordNotAllowed, "Word is not in the dictionary"}}
	case errors.Is(err, model.ErrInvalidLetter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidLetter, "Letter is not a playable tile"}}
	case errors.Is(err, model.ErrUnknownMoveKind):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownMoveKind, "Unknown move kind"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryNotLoaded, "Dictionary is not loaded"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
