package model

// Blank is the pseudo-letter of the wildcard tile class
const Blank = '*'

// BingoBonus is the flat bonus for playing a full rack in one move
const BingoBonus = 50

// TileDistribution is the canonical tile population of the game.
// On board + in racks + in bag must sum to this for every letter class;
// the economy reconciler enforces that invariant.
var TileDistribution = map[rune]int{
	'А': 8, 'Б': 2, 'В': 4, 'Г': 2, 'Д': 4, 'Е': 8,
	'Ж': 1, 'З': 2, 'И': 6, 'Й': 1, 'К': 4, 'Л': 4,
	'М': 3, 'Н': 5, 'О': 10, 'П': 4, 'Р': 5, 'С': 5,
	'Т': 5, 'У': 4, 'Ф': 1, 'Х': 1, 'Ц': 1, 'Ч': 1,
	'Ш': 1, 'Щ': 1, 'Ъ': 1, 'Ы': 2, 'Ь': 2, 'Э': 1,
	'Ю': 1, 'Я': 2,
	Blank: 2,
}

// LetterValues is the point value of each letter. Blanks score zero
// regardless of the letter they represent.
var LetterValues = map[rune]int{
	'А': 1, 'Б': 3, 'В': 1, 'Г': 3, 'Д': 2, 'Е': 1,
	'Ж': 5, 'З': 5, 'И': 1, 'Й': 4, 'К': 2, 'Л': 2,
	'М': 2, 'Н': 1, 'О': 1, 'П': 2, 'Р': 1, 'С': 1,
	'Т': 1, 'У': 2, 'Ф': 10, 'Х': 5, 'Ц': 5, 'Ч': 5,
	'Ш': 8, 'Щ': 10, 'Ъ': 10, 'Ы': 4, 'Ь': 3, 'Э': 8,
	'Ю': 8, 'Я': 3,
	Blank: 0,
}

// TotalTiles returns the size of the full tile population
func TotalTiles() int {
	total := 0
	for _, count := range TileDistribution {
		total += count
	}
	return total
}

// IsPlayableLetter returns true for letters that exist in the tile set
func IsPlayableLetter(r rune) bool {
	if r == Blank {
		return true
	}
	_, ok := TileDistribution[r]
	return ok
}

// LetterValue returns the point value of a letter, 0 for unknown runes
func LetterValue(r rune) int {
	return LetterValues[r]
}
