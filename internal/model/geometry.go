package model

// SquareType is the premium class of a board position.
// It is static board geometry, a pure function of (row, col), never stored.
type SquareType int

const (
	SquareNormal SquareType = iota
	SquareDoubleLetter
	SquareTripleLetter
	SquareDoubleWord
	SquareTripleWord
	SquareStart // Scores as a double-word square
)

// premiumLayout encodes the premium squares of the standard board.
// T = triple word, D = double word, t = triple letter, d = double letter,
// * = start square, . = normal.
var premiumLayout = [BoardSize]string{
	"T..d...T...d..T",
	".D...t...t...D.",
	"..D...d.d...D..",
	"d..D...d...D..d",
	"....D.....D....",
	".t...t...t...t.",
	"..d...d.d...d..",
	"T..d...*...d..T",
	"..d...d.d...d..",
	".t...t...t...t.",
	"....D.....D....",
	"d..D...d...D..d",
	"..D...d.d...D..",
	".D...t...t...D.",
	"T..d...T...d..T",
}

// SquareAt returns the premium type of the given position
func SquareAt(pos Position) SquareType {
	if pos.Row < 0 || pos.Row >= BoardSize || pos.Col < 0 || pos.Col >= BoardSize {
		return SquareNormal
	}
	switch premiumLayout[pos.Row][pos.Col] {
	case 'T':
		return SquareTripleWord
	case 'D':
		return SquareDoubleWord
	case 't':
		return SquareTripleLetter
	case 'd':
		return SquareDoubleLetter
	case '*':
		return SquareStart
	default:
		return SquareNormal
	}
}

// LetterMultiplier returns the factor applied to a letter's value on this square
func (t SquareType) LetterMultiplier() int {
	switch t {
	case SquareDoubleLetter:
		return 2
	case SquareTripleLetter:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the factor this square folds into the word total
func (t SquareType) WordMultiplier() int {
	switch t {
	case SquareDoubleWord, SquareStart:
		return 2
	case SquareTripleWord:
		return 3
	default:
		return 1
	}
}
