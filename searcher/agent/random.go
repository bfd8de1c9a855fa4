package agent

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	policy *searcher.RandomPlayout
}

// NewRandomAgent returns an agent that plays a uniformly random empty cell.
func NewRandomAgent(seed uint64) Agent {
	return randomAgent{policy: searcher.NewRandomPlayout(rand.New(rand.NewSource(seed)))}
}

func (a randomAgent) FindMove(board *game.Board, player game.Mark) (game.Coord, metrics.SearchMetric, error) {
	if outcome := board.Evaluate(); outcome.IsOver() {
		return nil, metrics.SearchMetric{}, fmt.Errorf("%w: board %v is already decided (%v)", game.ErrInvalidState, board, outcome)
	}
	cell, _ := a.policy.Choose(board)
	return board.Coord(cell), metrics.SearchMetric{Engine: "random"}, nil
}
