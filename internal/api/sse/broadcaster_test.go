package sse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/testutil"
)

func TestBroadcaster_PublishDeliversEvent(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("GAME1")
	defer manager.RemoveHub("GAME1")

	client := NewClient(hub, "player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	event := model.Event{
		Type:     model.EventMovePlayed,
		GameID:   "GAME1",
		PlayerID: "player1",
		Payload: model.MovePlayedPayload{
			NextPlayerID: "player2",
			TurnNumber:   3,
		},
	}
	broadcaster.Publish("GAME1", event)

	select {
	case msg := <-client.send:
		frame := string(msg)
		require.Contains(t, frame, "event: move_played\n")
		require.Contains(t, frame, "data: ")

		// The data line should be the JSON-encoded event
		expected, err := json.Marshal(event)
		require.NoError(t, err)
		require.Contains(t, frame, string(expected))
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive event")
	}
}

func TestBroadcaster_PublishWithoutHubIsNoop(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// No hub exists for this game; publish should not panic or create one
	broadcaster.Publish("NOHUB", model.Event{Type: model.EventStateUpdated, GameID: "NOHUB"})

	require.Nil(t, manager.GetHub("NOHUB"))
}
