// Package words derives the set of words newly formed by a placement.
package words

import (
	"iter"
	"strings"

	"github.com/eruditgame/erudit-server/internal/model"
)

// Extract returns the words formed on the board by the given newly placed
// tiles. The board must already contain the new tiles. A maximal run of at
// least two occupied cells counts only if the placement touches it;
// pre-existing words the move neither extends nor crosses are not re-emitted.
// A single isolated tile is emitted as a length-1 word, the only case a
// one-letter word is ever produced.
//
// The sequence is lazy, finite and restartable: iterating it twice walks the
// board twice with no retained state. Callers that want a slice should use
// ExtractAll.
func Extract(board *model.Board, newTiles []model.PlacedTile) iter.Seq[model.WordInfo] {
	return func(yield func(model.WordInfo) bool) {
		isNew := newTileSet(newTiles)
		emitted := false

		// Horizontal runs, row by row
		for row := 0; row < model.BoardSize; row++ {
			if !scanLine(board, isNew, lineCells(row, true), &emitted, yield) {
				return
			}
		}

		// Vertical runs, column by column
		for col := 0; col < model.BoardSize; col++ {
			if !scanLine(board, isNew, lineCells(col, false), &emitted, yield) {
				return
			}
		}

		// Isolated single placement scores as its own letter
		if !emitted && len(newTiles) == 1 {
			pos := newTiles[0].Pos
			cell := board.Get(pos)
			if !cell.IsEmpty() {
				yield(model.WordInfo{
					Letters: string(cell.Letter),
					Cells:   []model.Position{pos},
				})
			}
		}
	}
}

// ExtractAll materializes Extract into a slice
func ExtractAll(board *model.Board, newTiles []model.PlacedTile) []model.WordInfo {
	var result []model.WordInfo
	for word := range Extract(board, newTiles) {
		result = append(result, word)
	}
	return result
}

func newTileSet(tiles []model.PlacedTile) map[model.Position]bool {
	set := make(map[model.Position]bool, len(tiles))
	for _, t := range tiles {
		set[t.Pos] = true
	}
	return set
}

// lineCells returns the positions of one row (horizontal) or column
// in reading order
func lineCells(index int, horizontal bool) []model.Position {
	cells := make([]model.Position, model.BoardSize)
	for i := 0; i < model.BoardSize; i++ {
		if horizontal {
			cells[i] = model.Position{Row: index, Col: i}
		} else {
			cells[i] = model.Position{Row: i, Col: index}
		}
	}
	return cells
}

// scanLine yields each maximal run of length >= 2 along the line that
// contains at least one new tile. Returns false if the consumer stopped.
func scanLine(board *model.Board, isNew map[model.Position]bool, line []model.Position, emitted *bool, yield func(model.WordInfo) bool) bool {
	start := 0
	for start < len(line) {
		if board.IsEmpty(line[start]) {
			start++
			continue
		}
		end := start
		for end < len(line) && !board.IsEmpty(line[end]) {
			end++
		}
		if end-start >= 2 {
			run := line[start:end]
			touches := false
			var sb strings.Builder
			for _, pos := range run {
				sb.WriteRune(board.Get(pos).Letter)
				if isNew[pos] {
					touches = true
				}
			}
			if touches {
				*emitted = true
				cells := make([]model.Position, len(run))
				copy(cells, run)
				if !yield(model.WordInfo{Letters: sb.String(), Cells: cells}) {
					return false
				}
			}
		}
		start = end
	}
	return true
}
