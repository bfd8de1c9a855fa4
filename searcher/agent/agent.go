package agent

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type Agent interface {
	// FindMove returns a move for player and performance metrics (if collected) from the search
	FindMove(board *game.Board, player game.Mark) (game.Coord, metrics.SearchMetric, error)
}
