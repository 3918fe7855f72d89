package words

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/eruditgame/erudit-server/internal/model"
)

type WordsSuite struct {
	suite.Suite
}

func TestWordsSuite(t *testing.T) {
	suite.Run(t, new(WordsSuite))
}

// Helper to create a board from row strings anchored at a position.
// '.' is an empty cell; anything else is a letter.
func (s *WordsSuite) createBoard(startRow, startCol int, rows ...string) *model.Board {
	board := model.NewBoard()
	for i, row := range rows {
		for j, letter := range []rune(row) {
			if letter != '.' {
				board.Set(model.Position{Row: startRow + i, Col: startCol + j}, model.Cell{Letter: letter})
			}
		}
	}
	return board
}

func tiles(positions ...model.Position) []model.PlacedTile {
	result := make([]model.PlacedTile, len(positions))
	for i, pos := range positions {
		result[i] = model.PlacedTile{Pos: pos}
	}
	return result
}

func letters(words []model.WordInfo) []string {
	result := make([]string, len(words))
	for i, w := range words {
		result[i] = w.Letters
	}
	return result
}

func (s *WordsSuite) TestSingleHorizontalWord() {
	board := s.createBoard(7, 7, "СОН")
	newTiles := tiles(
		model.Position{Row: 7, Col: 7},
		model.Position{Row: 7, Col: 8},
		model.Position{Row: 7, Col: 9},
	)

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("СОН", result[0].Letters)
	s.Equal([]model.Position{{Row: 7, Col: 7}, {Row: 7, Col: 8}, {Row: 7, Col: 9}}, result[0].Cells)
}

func (s *WordsSuite) TestSingleVerticalWord() {
	board := s.createBoard(5, 7, "Д", "О", "М")
	newTiles := tiles(
		model.Position{Row: 5, Col: 7},
		model.Position{Row: 6, Col: 7},
		model.Position{Row: 7, Col: 7},
	)

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("ДОМ", result[0].Letters)
}

func (s *WordsSuite) TestCrossingPlacementFormsTwoWords() {
	// ДА exists horizontally; playing О and М vertically through the Д
	// forms ДОМ down while leaving ДА untouched on its own line.
	board := s.createBoard(7, 7, "ДА")
	board.Set(model.Position{Row: 8, Col: 7}, model.Cell{Letter: 'О'})
	board.Set(model.Position{Row: 9, Col: 7}, model.Cell{Letter: 'М'})

	newTiles := tiles(
		model.Position{Row: 8, Col: 7},
		model.Position{Row: 9, Col: 7},
	)

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("ДОМ", result[0].Letters)
}

func (s *WordsSuite) TestTileExtendingBothLines() {
	// Placing one tile at the corner of two runs emits both words
	board := s.createBoard(7, 7, "ДА")
	board.Set(model.Position{Row: 6, Col: 8}, model.Cell{Letter: 'Н'})
	// New tile below the А completes НАС vertically and sits in no
	// horizontal run of its own
	board.Set(model.Position{Row: 8, Col: 8}, model.Cell{Letter: 'С'})

	newTiles := tiles(model.Position{Row: 8, Col: 8})

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("НАС", result[0].Letters)
}

func (s *WordsSuite) TestParallelPlayFormsCrossWords() {
	// ДА on row 7; playing НО directly beneath forms ДН and АО
	// vertically plus НО horizontally.
	board := s.createBoard(7, 7, "ДА", "НО")

	newTiles := tiles(
		model.Position{Row: 8, Col: 7},
		model.Position{Row: 8, Col: 8},
	)

	result := ExtractAll(board, newTiles)

	s.ElementsMatch([]string{"НО", "ДН", "АО"}, letters(result))
}

func (s *WordsSuite) TestUntouchedWordNotReEmitted() {
	// A word far away from the placement is not part of the result
	board := s.createBoard(0, 0, "МИР")
	board.Set(model.Position{Row: 7, Col: 7}, model.Cell{Letter: 'Д'})
	board.Set(model.Position{Row: 7, Col: 8}, model.Cell{Letter: 'А'})

	newTiles := tiles(
		model.Position{Row: 7, Col: 7},
		model.Position{Row: 7, Col: 8},
	)

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("ДА", result[0].Letters)
}

func (s *WordsSuite) TestIsolatedSingleTile() {
	// The only case a one-letter word is produced: a lone tile with no
	// neighbors in either direction
	board := model.NewBoard()
	board.Set(model.StartPosition, model.Cell{Letter: 'Я'})

	newTiles := tiles(model.StartPosition)

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("Я", result[0].Letters)
	s.Equal([]model.Position{model.StartPosition}, result[0].Cells)
}

func (s *WordsSuite) TestSingleTileJoiningRunIsNotIsolated() {
	board := s.createBoard(7, 7, "ДА")
	board.Set(model.Position{Row: 7, Col: 9}, model.Cell{Letter: 'Р'})

	newTiles := tiles(model.Position{Row: 7, Col: 9})

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("ДАР", result[0].Letters)
}

func (s *WordsSuite) TestBlankContributesItsRealizedLetter() {
	board := model.NewBoard()
	board.Set(model.Position{Row: 7, Col: 7}, model.Cell{Letter: 'Д'})
	board.Set(model.Position{Row: 7, Col: 8}, model.Cell{Letter: 'А', Blank: true})

	newTiles := []model.PlacedTile{
		{Pos: model.Position{Row: 7, Col: 7}, Letter: 'Д'},
		{Pos: model.Position{Row: 7, Col: 8}, Letter: 'А', Blank: true},
	}

	result := ExtractAll(board, newTiles)

	s.Require().Len(result, 1)
	s.Equal("ДА", result[0].Letters)
}

func (s *WordsSuite) TestSequenceIsRestartable() {
	board := s.createBoard(7, 7, "ДА", "НО")
	newTiles := tiles(
		model.Position{Row: 8, Col: 7},
		model.Position{Row: 8, Col: 8},
	)

	seq := Extract(board, newTiles)

	var first, second []string
	for w := range seq {
		first = append(first, w.Letters)
	}
	for w := range seq {
		second = append(second, w.Letters)
	}

	s.Equal(first, second)
	s.Len(first, 3)
}

func (s *WordsSuite) TestSequenceStopsEarly() {
	board := s.createBoard(7, 7, "ДА", "НО")
	newTiles := tiles(
		model.Position{Row: 8, Col: 7},
		model.Position{Row: 8, Col: 8},
	)

	count := 0
	for range Extract(board, newTiles) {
		count++
		break
	}

	s.Equal(1, count)
}

func (s *WordsSuite) TestNoTilesNoWords() {
	board := s.createBoard(7, 7, "ДА")

	result := ExtractAll(board, nil)

	s.Empty(result)
}
