package model

// BoardSize is the dimension of the square playing board
const BoardSize = 15

// Position identifies a cell on the board
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// StartPosition is the center square a first move must cover
var StartPosition = Position{Row: BoardSize / 2, Col: BoardSize / 2}

// Cell is a single board square's contents.
// A cell is either fully empty (Letter == 0) or holds exactly one letter.
// Blank marks a realized wildcard tile: it shows Letter but scores zero
// and counts against the blank class of the tile distribution.
type Cell struct {
	Letter rune `json:"letter,omitempty"`
	Blank  bool `json:"blank,omitempty"`
}

// IsEmpty returns true if the cell holds no tile
func (c Cell) IsEmpty() bool {
	return c.Letter == 0
}

// Board is the fixed-size grid of cells for a game.
// It is owned by the authoritative game record and mutated only by the
// move transition controller applying a validated move.
type Board struct {
	Cells [][]Cell `json:"cells"` // Row-major: Cells[row][col]
}

// NewBoard creates an empty board
func NewBoard() *Board {
	cells := make([][]Cell, BoardSize)
	for i := range cells {
		cells[i] = make([]Cell, BoardSize)
	}
	return &Board{Cells: cells}
}

// Get returns the cell at the given position, or the empty cell if out of bounds
func (b *Board) Get(pos Position) Cell {
	if !b.IsValidPosition(pos) {
		return Cell{}
	}
	return b.Cells[pos.Row][pos.Col]
}

// Set places a cell value at the given position
func (b *Board) Set(pos Position, cell Cell) {
	if b.IsValidPosition(pos) {
		b.Cells[pos.Row][pos.Col] = cell
	}
}

// IsEmpty returns true if the cell at the given position holds no tile
func (b *Board) IsEmpty(pos Position) bool {
	return b.Get(pos).IsEmpty()
}

// IsValidPosition returns true if the position is within bounds
func (b *Board) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < BoardSize && pos.Col >= 0 && pos.Col < BoardSize
}

// HasTiles returns true if at least one cell holds a tile
func (b *Board) HasTiles() bool {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !b.Cells[row][col].IsEmpty() {
				return true
			}
		}
	}
	return false
}

// TileCount returns the number of occupied cells
func (b *Board) TileCount() int {
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if !b.Cells[row][col].IsEmpty() {
				count++
			}
		}
	}
	return count
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	clone := NewBoard()
	for row := 0; row < BoardSize; row++ {
		copy(clone.Cells[row], b.Cells[row])
	}
	return clone
}

// WordInfo is a word formed on the board by a placement
type WordInfo struct {
	Letters string     `json:"letters"`
	Cells   []Position `json:"cells"` // In reading order (left-to-right or top-to-bottom)
}
