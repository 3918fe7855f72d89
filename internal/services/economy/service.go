// Package economy recomputes and repairs the draw bag so that for every
// letter class, on-board + in-racks + in-bag always equals the canonical
// tile distribution.
package economy

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/eruditgame/erudit-server/internal/dependencies/random"
	"github.com/eruditgame/erudit-server/internal/model"
)

// Anomaly records a detected economy inconsistency. Anomalies are repaired
// and logged, never fatal: keeping the match available matters more than
// halting on a recoverable inconsistency.
type Anomaly struct {
	Kind   string
	Detail string
	Letter rune
	Pos    model.Position
}

// Anomaly kinds
const (
	AnomalyUnexplainedRemoval = "unexplained_removal"
	AnomalyBagMismatch        = "bag_mismatch"
	AnomalyLetterOverdrawn    = "letter_overdrawn"
)

// Service reconciles bag contents against the tile distribution
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new EconomyService
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger,
	}
}

// ReconcileBag repairs the bag for a state update. The submitted board is
// never trusted for counting: a buggy or malicious client could drop tiles
// and trick the reconciler into minting replacements. Counting runs against
// a trusted board rebuilt from the prior authoritative board plus the tiles
// attributed to the current validated play. Cells present in the prior board
// but missing from the submission that the play does not explain are
// reported as unexplained removals.
//
// The bag is replaced (and only then shuffled) when the submitted bag's
// multiset diverges from the expected counts; a matching bag is returned
// untouched so draw order stays reproducible across no-op updates.
func (s *Service) ReconcileBag(
	gameID model.GameID,
	distribution map[rune]int,
	prior *model.Board,
	submitted *model.Board,
	players []*model.Player,
	submittedBag []rune,
	lastPlay *model.Move,
) ([]rune, []Anomaly) {
	var anomalies []Anomaly

	trusted := prior.Clone()
	playedAt := make(map[model.Position]bool)
	if lastPlay != nil && lastPlay.Kind == model.MovePlay {
		for _, t := range lastPlay.Tiles {
			trusted.Set(t.Pos, model.Cell{Letter: t.Letter, Blank: t.Blank})
			playedAt[t.Pos] = true
		}
	}

	if submitted != nil {
		anomalies = append(anomalies, s.detectRemovals(prior, submitted, playedAt)...)
	}

	expected := s.expectedBagCounts(distribution, trusted, players, &anomalies)

	if bagMatches(submittedBag, expected) {
		s.report(gameID, anomalies)
		return submittedBag, anomalies
	}

	anomalies = append(anomalies, Anomaly{
		Kind:   AnomalyBagMismatch,
		Detail: fmt.Sprintf("submitted bag of %d tiles does not match expected counts", len(submittedBag)),
	})

	rebuilt := buildBag(expected)
	s.random.Shuffle(len(rebuilt), func(i, j int) {
		rebuilt[i], rebuilt[j] = rebuilt[j], rebuilt[i]
	})

	s.report(gameID, anomalies)
	return rebuilt, anomalies
}

// detectRemovals finds cells occupied before the move that the submitted
// board leaves empty without the play explaining them
func (s *Service) detectRemovals(prior, submitted *model.Board, playedAt map[model.Position]bool) []Anomaly {
	var anomalies []Anomaly
	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			if prior.IsEmpty(pos) || !submitted.IsEmpty(pos) || playedAt[pos] {
				continue
			}
			anomalies = append(anomalies, Anomaly{
				Kind:   AnomalyUnexplainedRemoval,
				Detail: "tile present in prior board missing from submission",
				Letter: prior.Get(pos).Letter,
				Pos:    pos,
			})
		}
	}
	return anomalies
}

// expectedBagCounts computes distribution minus trusted board minus racks,
// per letter class. Realized blanks on the board consume the blank class,
// not the letter they display.
func (s *Service) expectedBagCounts(distribution map[rune]int, trusted *model.Board, players []*model.Player, anomalies *[]Anomaly) map[rune]int {
	used := make(map[rune]int)

	for row := 0; row < model.BoardSize; row++ {
		for col := 0; col < model.BoardSize; col++ {
			cell := trusted.Cells[row][col]
			if cell.IsEmpty() {
				continue
			}
			if cell.Blank {
				used[model.Blank]++
			} else {
				used[cell.Letter]++
			}
		}
	}

	for _, p := range players {
		for _, slot := range p.Rack {
			if slot.IsEmpty() {
				continue
			}
			if slot.Blank {
				used[model.Blank]++
			} else {
				used[slot.Letter]++
			}
		}
	}

	expected := make(map[rune]int, len(distribution))
	for letter, count := range distribution {
		remaining := count - used[letter]
		if remaining < 0 {
			*anomalies = append(*anomalies, Anomaly{
				Kind:   AnomalyLetterOverdrawn,
				Detail: fmt.Sprintf("%d tiles in play exceed distribution of %d", used[letter], count),
				Letter: letter,
			})
			remaining = 0
		}
		expected[letter] = remaining
	}
	return expected
}

// bagMatches reports whether the bag's multiset equals the expected counts
func bagMatches(bag []rune, expected map[rune]int) bool {
	total := 0
	for _, count := range expected {
		total += count
	}
	if len(bag) != total {
		return false
	}
	counts := make(map[rune]int, len(expected))
	for _, letter := range bag {
		counts[letter]++
	}
	for letter, count := range expected {
		if counts[letter] != count {
			return false
		}
	}
	return true
}

// buildBag expands expected counts into a slice, in stable letter order so
// the result is deterministic before shuffling
func buildBag(expected map[rune]int) []rune {
	letters := make([]rune, 0, len(expected))
	for letter := range expected {
		letters = append(letters, letter)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })

	var bag []rune
	for _, letter := range letters {
		for i := 0; i < expected[letter]; i++ {
			bag = append(bag, letter)
		}
	}
	return bag
}

func (s *Service) report(gameID model.GameID, anomalies []Anomaly) {
	for _, a := range anomalies {
		attrs := []any{
			slog.String("game_id", string(gameID)),
			slog.String("kind", a.Kind),
			slog.String("detail", a.Detail),
		}
		if a.Letter != 0 {
			attrs = append(attrs, slog.String("letter", string(a.Letter)))
		}
		if a.Kind == AnomalyUnexplainedRemoval {
			attrs = append(attrs, slog.Int("row", a.Pos.Row), slog.Int("col", a.Pos.Col))
		}
		s.logger.Warn("tile economy anomaly", attrs...)
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	ReconcileBag(gameID model.GameID, distribution map[rune]int, prior *model.Board, submitted *model.Board, players []*model.Player, submittedBag []rune, lastPlay *model.Move) ([]rune, []Anomaly)
}

var _ ServiceInterface = (*Service)(nil)
