package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/eruditgame/erudit-server/internal/model"
)

// Broadcaster delivers engine events to SSE clients as JSON frames. It
// satisfies the game controller's Publisher interface, so the engine stays
// unaware of the transport.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish broadcasts an event to all clients watching the game. Events for
// games without a hub (nobody listening) are dropped silently.
func (b *Broadcaster) Publish(gameID model.GameID, event model.Event) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("game_id", string(gameID)),
			slog.String("event_type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Type), string(data))
}
