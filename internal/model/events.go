package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined   EventType = "player_joined"
	EventStateUpdated   EventType = "state_updated"
	EventMovePlayed     EventType = "move_played"
	EventEconomyAnomaly EventType = "economy_anomaly"
	EventGameEnded      EventType = "game_ended"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	GameID    GameID    `json:"game_id"`
	PlayerID  PlayerID  `json:"player_id,omitempty"` // The player who triggered or is affected
	Payload   any       `json:"payload,omitempty"`
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	PlayerCount int      `json:"player_count"`
}

// MovePlayedPayload contains data for move played events
type MovePlayedPayload struct {
	Move         Move     `json:"move"`
	NextPlayerID PlayerID `json:"next_player_id"`
	TurnNumber   int      `json:"turn_number"`
}

// EconomyAnomalyPayload contains data for economy anomaly events.
// Anomalies are repaired, not fatal; this event exists for operator review.
type EconomyAnomalyPayload struct {
	Kind    string `json:"kind"`
	Detail  string `json:"detail"`
	Letter  string `json:"letter,omitempty"`
	Row     int    `json:"row,omitempty"`
	Col     int    `json:"col,omitempty"`
}

// GameEndedPayload contains data for game ended events
type GameEndedPayload struct {
	Reason   EndReason          `json:"reason"`
	WinnerID PlayerID           `json:"winner_id"`
	Scores   map[PlayerID]int   `json:"scores"`
}
