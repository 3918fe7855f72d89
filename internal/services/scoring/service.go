package scoring

import (
	"github.com/eruditgame/erudit-server/internal/model"
)

// Service computes move scores. It is stateless and all scoring is exact
// integer arithmetic.
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// ScoreWords computes the total score of a move. The board must already
// contain the new tiles. Premium squares apply only to cells in newTiles:
// pre-existing cells contribute their unmultiplied base value, since
// multipliers are consumed on the turn a tile is placed. Blank cells score
// zero regardless of multipliers. Playing a full rack of tiles earns the
// flat bingo bonus once, independent of how many words were formed.
func (s *Service) ScoreWords(wordList []model.WordInfo, board *model.Board, newTiles []model.PlacedTile) int {
	isNew := make(map[model.Position]bool, len(newTiles))
	for _, t := range newTiles {
		isNew[t.Pos] = true
	}

	total := 0
	for _, word := range wordList {
		total += s.scoreWord(word, board, isNew)
	}

	if len(newTiles) == model.RackSize {
		total += model.BingoBonus
	}

	return total
}

func (s *Service) scoreWord(word model.WordInfo, board *model.Board, isNew map[model.Position]bool) int {
	wordScore := 0
	wordMultiplier := 1

	for _, pos := range word.Cells {
		cell := board.Get(pos)

		base := 0
		if !cell.Blank {
			base = model.LetterValue(cell.Letter)
		}

		if isNew[pos] {
			square := model.SquareAt(pos)
			base *= square.LetterMultiplier()
			wordMultiplier *= square.WordMultiplier()
		}

		wordScore += base
	}

	return wordScore * wordMultiplier
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreWords(wordList []model.WordInfo, board *model.Board, newTiles []model.PlacedTile) int
}

var _ ServiceInterface = (*Service)(nil)
