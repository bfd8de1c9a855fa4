package searcher

import (
	"math"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

// Hyperparameters for MCTS

const DefaultExploration = math.Sqrt2

// RewardScheme maps a playout outcome, seen from the acting player, to the
// reward added to every node on the path.
type RewardScheme struct {
	Win  float64
	Loss float64
	Draw float64
}

var (
	StandardRewards = RewardScheme{Win: 10, Loss: -10, Draw: 0}
	CautiousRewards = RewardScheme{Win: 5, Loss: -10, Draw: 1}
)

// Of returns the reward for a relative outcome of +1 (win), 0 (draw) or -1 (loss)
func (r RewardScheme) Of(relative int) float64 {
	switch {
	case relative > 0:
		return r.Win
	case relative < 0:
		return r.Loss
	default:
		return r.Draw
	}
}

// Searcher is implemented by both engines
type Searcher interface {
	Search(board *game.Board, player game.Mark) (game.Coord, metrics.SearchMetric, error)
}

func ucb1(rewards float64, visits int, c2LnN float64) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}
