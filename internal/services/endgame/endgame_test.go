package endgame

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eruditgame/erudit-server/internal/model"
)

type EndgameSuite struct {
	suite.Suite
}

func TestEndgameSuite(t *testing.T) {
	suite.Run(t, new(EndgameSuite))
}

func player(id string, score int, rackLetters ...rune) *model.Player {
	p := &model.Player{ID: model.PlayerID(id), Score: score}
	for i, letter := range rackLetters {
		p.Rack[i] = model.RackSlot{Letter: letter}
	}
	return p
}

func skips(playerIDs []string, count int) []model.Move {
	moves := make([]model.Move, count)
	for i := range moves {
		moves[i] = model.Move{
			Kind:     model.MoveSkip,
			PlayerID: model.PlayerID(playerIDs[i%len(playerIDs)]),
		}
	}
	return moves
}

func (s *EndgameSuite) TestMidGameNotEnded() {
	state := &model.GameState{
		Players: []*model.Player{
			player("p1", 10, 'А', 'Б'),
			player("p2", 5, 'В', 'Г'),
		},
		Bag: []rune{'А', 'Б'},
	}

	ended, reason, _ := Check(state)
	s.False(ended)
	s.Equal(model.EndReasonNone, reason)
}

func (s *EndgameSuite) TestPlayerOutWithEmptyBag() {
	state := &model.GameState{
		Players: []*model.Player{
			player("p1", 40),
			player("p2", 25, 'В', 'Г'),
		},
		Bag: []rune{},
	}

	ended, reason, winnerID := Check(state)
	s.True(ended)
	s.Equal(model.EndReasonPlayerOut, reason)
	s.Equal(model.PlayerID("p1"), winnerID)
}

func (s *EndgameSuite) TestEmptyRackAloneDoesNotEnd() {
	state := &model.GameState{
		Players: []*model.Player{
			player("p1", 40),
			player("p2", 25, 'В'),
		},
		Bag: []rune{'А'},
	}

	ended, _, _ := Check(state)
	s.False(ended)
}

func (s *EndgameSuite) TestAllSkippedTwice() {
	ids := []string{"p1", "p2"}
	state := &model.GameState{
		Players: []*model.Player{
			player("p1", 12, 'А'),
			player("p2", 30, 'Б'),
		},
		Bag:   []rune{'В'},
		Moves: skips(ids, 4),
	}

	ended, reason, winnerID := Check(state)
	s.True(ended)
	s.Equal(model.EndReasonAllSkipped, reason)
	s.Equal(model.PlayerID("p2"), winnerID)
}

func (s *EndgameSuite) TestPlayInsideWindowBlocksSkipEnd() {
	ids := []string{"p1", "p2"}
	moves := skips(ids, 4)
	moves[2].Kind = model.MovePlay
	state := &model.GameState{
		Players: []*model.Player{
			player("p1", 12, 'А'),
			player("p2", 30, 'Б'),
		},
		Bag:   []rune{'В'},
		Moves: moves,
	}

	ended, _, _ := Check(state)
	s.False(ended)
}

func (s *EndgameSuite) TestEarlierSkipsBeforeWindowIgnored() {
	// Only the trailing window counts: an old play followed by a full
	// round of double skips still ends the game
	ids := []string{"p1", "p2", "p3"}
	moves := []model.Move{{Kind: model.MovePlay, PlayerID: "p1"}}
	moves = append(moves, skips(ids, 6)...)
	state := &model.GameState{
		Players: []*model.Player{
			player("p1", 9, 'А'),
			player("p2", 9, 'Б'),
			player("p3", 2, 'В'),
		},
		Bag:   []rune{'Г'},
		Moves: moves,
	}

	ended, reason, winnerID := Check(state)
	s.True(ended)
	s.Equal(model.EndReasonAllSkipped, reason)
	// Tied on score: the earlier joiner wins
	s.Equal(model.PlayerID("p1"), winnerID)
}

func (s *EndgameSuite) TestTooFewMovesForSkipWindow() {
	ids := []string{"p1", "p2"}
	state := &model.GameState{
		Players: []*model.Player{
			player("p1", 0, 'А'),
			player("p2", 0, 'Б'),
		},
		Bag:   []rune{'В'},
		Moves: skips(ids, 3),
	}

	ended, _, _ := Check(state)
	s.False(ended)
}

func (s *EndgameSuite) TestNoPlayersNeverEnds() {
	state := &model.GameState{Bag: []rune{}}

	ended, reason, winnerID := Check(state)
	s.False(ended)
	s.Equal(model.EndReasonNone, reason)
	s.Equal(model.PlayerID(""), winnerID)
}
