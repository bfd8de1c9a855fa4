package agent

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"
)

type searchAgent struct {
	searcher searcher.Searcher
}

// NewMinimaxAgent returns an agent that always plays the minimax move.
func NewMinimaxAgent(minimax *searcher.Minimax) Agent {
	return searchAgent{searcher: minimax}
}

// NewMCTSAgent returns an agent that plays the move with the best average reward.
func NewMCTSAgent(mcts *searcher.MCTS) Agent {
	return searchAgent{searcher: mcts}
}

func (a searchAgent) FindMove(board *game.Board, player game.Mark) (game.Coord, metrics.SearchMetric, error) {
	move, metric, err := a.searcher.Search(board, player)
	if err != nil {
		return nil, metric, fmt.Errorf("failed to find move for %v: %w", player, err)
	}
	return move, metric, nil
}
