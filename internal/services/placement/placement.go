// Package placement checks the structural legality of a proposed set of
// newly placed tiles against the board prior to the move.
package placement

import (
	"github.com/eruditgame/erudit-server/internal/model"
)

// Validate is a pure predicate over the pre-move board and the proposed
// tiles. Rules apply in order and the first failure wins, so callers get a
// single precise reason:
//
//  1. the placement is non-empty
//  2. every tile shows a letter from the tile set (a blank must be
//     realized as a real letter, never the blank rune itself)
//  3. every position is in bounds and empty before the move
//  4. all positions share one row or one column
//  5. the line has no gaps that pre-existing tiles do not fill
//  6. the move connects: adjacency to an existing tile, or the center
//     square on an empty board
func Validate(prior *model.Board, tiles []model.PlacedTile) error {
	if len(tiles) == 0 {
		return model.ErrEmptyPlacement
	}

	seen := make(map[model.Position]bool, len(tiles))
	for _, t := range tiles {
		if t.Letter == model.Blank || !model.IsPlayableLetter(t.Letter) {
			return model.ErrInvalidLetter
		}
		if !prior.IsValidPosition(t.Pos) {
			return model.ErrInvalidPosition
		}
		if !prior.IsEmpty(t.Pos) || seen[t.Pos] {
			return model.ErrCellOccupied
		}
		seen[t.Pos] = true
	}

	sameRow, sameCol := true, true
	for _, t := range tiles {
		if t.Pos.Row != tiles[0].Pos.Row {
			sameRow = false
		}
		if t.Pos.Col != tiles[0].Pos.Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return model.ErrNotALine
	}

	if err := checkGaps(prior, tiles, seen, sameRow); err != nil {
		return err
	}

	if !prior.HasTiles() {
		for _, t := range tiles {
			if t.Pos == model.StartPosition {
				return nil
			}
		}
		return model.ErrMustIncludeCenter
	}

	for _, t := range tiles {
		if touchesExisting(prior, t.Pos) {
			return nil
		}
	}
	return model.ErrMustConnect
}

// checkGaps verifies every cell between the extreme placed indices along the
// line is either newly placed or already occupied
func checkGaps(prior *model.Board, tiles []model.PlacedTile, placed map[model.Position]bool, sameRow bool) error {
	min, max := tiles[0].Pos, tiles[0].Pos
	for _, t := range tiles[1:] {
		if sameRow {
			if t.Pos.Col < min.Col {
				min = t.Pos
			}
			if t.Pos.Col > max.Col {
				max = t.Pos
			}
		} else {
			if t.Pos.Row < min.Row {
				min = t.Pos
			}
			if t.Pos.Row > max.Row {
				max = t.Pos
			}
		}
	}

	pos := min
	for pos != max {
		if !placed[pos] && prior.IsEmpty(pos) {
			return model.ErrGapInPlacement
		}
		if sameRow {
			pos.Col++
		} else {
			pos.Row++
		}
	}
	return nil
}

// touchesExisting returns true if an orthogonal neighbor held a tile before
// the move
func touchesExisting(prior *model.Board, pos model.Position) bool {
	neighbors := []model.Position{
		{Row: pos.Row - 1, Col: pos.Col},
		{Row: pos.Row + 1, Col: pos.Col},
		{Row: pos.Row, Col: pos.Col - 1},
		{Row: pos.Row, Col: pos.Col + 1},
	}
	for _, n := range neighbors {
		if prior.IsValidPosition(n) && !prior.IsEmpty(n) {
			return true
		}
	}
	return false
}
