package economy

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eruditgame/erudit-server/internal/dependencies/mocks"
	"github.com/eruditgame/erudit-server/internal/model"
	"github.com/eruditgame/erudit-server/internal/testutil"
)

type EconomySuite struct {
	suite.Suite
	service *Service
	random  *mocks.MockRandom
}

func TestEconomySuite(t *testing.T) {
	suite.Run(t, new(EconomySuite))
}

func (s *EconomySuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random, testutil.NopLogger())
}

// A small distribution keeps the expected counts easy to follow
func (s *EconomySuite) distribution() map[rune]int {
	return map[rune]int{'А': 4, 'Б': 2, model.Blank: 1}
}

func playerWithRack(id string, letters ...rune) *model.Player {
	p := &model.Player{ID: model.PlayerID(id)}
	for i, letter := range letters {
		p.Rack[i] = model.RackSlot{Letter: letter, Blank: letter == model.Blank}
	}
	return p
}

func kinds(anomalies []Anomaly) []string {
	result := make([]string, len(anomalies))
	for i, a := range anomalies {
		result[i] = a.Kind
	}
	return result
}

func (s *EconomySuite) TestMatchingBagUntouched() {
	prior := model.NewBoard()
	players := []*model.Player{playerWithRack("p1", 'А', 'Б')}
	// Distribution minus the rack: 3x А, 1x Б, 1x blank
	submittedBag := []rune{'Б', 'А', model.Blank, 'А', 'А'}

	bag, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, nil, players, submittedBag, nil)

	// Returned as-is: order preserved, no rebuild, no shuffle
	s.Equal(submittedBag, bag)
	s.Empty(anomalies)
}

func (s *EconomySuite) TestMismatchedBagRebuilt() {
	prior := model.NewBoard()
	players := []*model.Player{playerWithRack("p1", 'А', 'Б')}
	// Claims a tile that should still be in a rack
	submittedBag := []rune{'А', 'А', 'А', 'А', 'Б'}

	bag, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, nil, players, submittedBag, nil)

	s.Equal([]string{AnomalyBagMismatch}, kinds(anomalies))
	// Rebuilt in stable letter order (mock Random does not shuffle):
	// blank sorts before the Cyrillic letters
	s.Equal([]rune{model.Blank, 'А', 'А', 'А', 'Б'}, bag)
}

func (s *EconomySuite) TestPlayTilesCountedOnBoard() {
	prior := model.NewBoard()
	move := &model.Move{
		Kind: model.MovePlay,
		Tiles: []model.PlacedTile{
			{Pos: model.Position{Row: 7, Col: 7}, Letter: 'А'},
			{Pos: model.Position{Row: 7, Col: 8}, Letter: 'Б'},
		},
	}
	// After the play the rack holds nothing; board has А and Б
	players := []*model.Player{playerWithRack("p1")}
	submittedBag := []rune{'А', 'А', 'А', 'Б', model.Blank}

	bag, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, nil, players, submittedBag, move)

	s.Empty(anomalies)
	s.Equal(submittedBag, bag)
}

func (s *EconomySuite) TestRealizedBlankConsumesBlankClass() {
	prior := model.NewBoard()
	// A blank realized as А sits on the board: it consumes the blank
	// class, leaving all four real А unaccounted-for outside the bag
	prior.Set(model.Position{Row: 7, Col: 7}, model.Cell{Letter: 'А', Blank: true})
	players := []*model.Player{playerWithRack("p1")}
	submittedBag := []rune{'А', 'А', 'А', 'А', 'Б', 'Б'}

	bag, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, nil, players, submittedBag, nil)

	s.Empty(anomalies)
	s.Equal(submittedBag, bag)
}

func (s *EconomySuite) TestUnexplainedRemovalReported() {
	prior := model.NewBoard()
	prior.Set(model.Position{Row: 3, Col: 3}, model.Cell{Letter: 'Б'})

	// Submitted board lost the tile and no play explains it
	submitted := model.NewBoard()

	players := []*model.Player{playerWithRack("p1")}
	// The trusted count still treats the tile as on-board
	submittedBag := []rune{'А', 'А', 'А', 'А', 'Б', model.Blank}

	bag, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, submitted, players, submittedBag, nil)

	s.Require().Len(anomalies, 1)
	s.Equal(AnomalyUnexplainedRemoval, anomalies[0].Kind)
	s.Equal('Б', anomalies[0].Letter)
	s.Equal(model.Position{Row: 3, Col: 3}, anomalies[0].Pos)
	// The removal is healed by counting, not by failing the move
	s.Equal(submittedBag, bag)
}

func (s *EconomySuite) TestRemovalExplainedByPlayNotReported() {
	prior := model.NewBoard()
	move := &model.Move{
		Kind: model.MovePlay,
		Tiles: []model.PlacedTile{
			{Pos: model.Position{Row: 7, Col: 7}, Letter: 'А'},
		},
	}
	// Submission includes the played tile, nothing is missing
	submitted := model.NewBoard()
	submitted.Set(model.Position{Row: 7, Col: 7}, model.Cell{Letter: 'А'})

	players := []*model.Player{playerWithRack("p1")}
	submittedBag := []rune{'А', 'А', 'А', 'Б', 'Б', model.Blank}

	_, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, submitted, players, submittedBag, move)

	s.Empty(anomalies)
}

func (s *EconomySuite) TestLetterOverdrawnClampedToZero() {
	prior := model.NewBoard()
	// Three Б in a rack against a distribution of two
	players := []*model.Player{playerWithRack("p1", 'Б', 'Б', 'Б')}
	submittedBag := []rune{'А', 'А', 'А', 'А', model.Blank}

	bag, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, nil, players, submittedBag, nil)

	s.Contains(kinds(anomalies), AnomalyLetterOverdrawn)
	// No negative counts: the bag simply holds no Б
	for _, letter := range bag {
		s.NotEqual('Б', letter)
	}
}

func (s *EconomySuite) TestEmptyExpectedBag() {
	prior := model.NewBoard()
	// Every tile is in racks; the bag must come back empty
	players := []*model.Player{
		playerWithRack("p1", 'А', 'А', 'А', 'А'),
		playerWithRack("p2", 'Б', 'Б', model.Blank),
	}

	bag, anomalies := s.service.ReconcileBag(
		"game-1", s.distribution(), prior, nil, players, nil, nil)

	s.Empty(anomalies)
	s.Empty(bag)
}
