// Package endgame evaluates terminal game conditions.
package endgame

import (
	"github.com/eruditgame/erudit-server/internal/model"
)

// Check reports whether the game is over, why, and who won. Two conditions
// end a game, either one sufficient:
//
//   - a player's rack is empty and so is the bag
//   - every player skipped twice in a row (the trailing 2*playerCount
//     moves are all skips)
//
// The winner is the player with the highest score; on a tie the earliest
// joiner among the tied players wins, so the result is total and
// deterministic.
func Check(state *model.GameState) (bool, model.EndReason, model.PlayerID) {
	if len(state.Players) == 0 {
		return false, model.EndReasonNone, ""
	}

	if len(state.Bag) == 0 {
		for _, p := range state.Players {
			if p.RackEmpty() {
				return true, model.EndReasonPlayerOut, winner(state.Players)
			}
		}
	}

	if allSkippedTwice(state) {
		return true, model.EndReasonAllSkipped, winner(state.Players)
	}

	return false, model.EndReasonNone, ""
}

func allSkippedTwice(state *model.GameState) bool {
	window := 2 * len(state.Players)
	if window == 0 || len(state.Moves) < window {
		return false
	}
	for _, move := range state.Moves[len(state.Moves)-window:] {
		if move.Kind != model.MoveSkip {
			return false
		}
	}
	return true
}

// winner picks the highest score, ties broken by join order
func winner(players []*model.Player) model.PlayerID {
	best := players[0]
	for _, p := range players[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best.ID
}
