package searcher

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

// infinity bounds the score domain {-1, 0, +1}
const infinity = 2

type MinimaxOption func(m *Minimax)

func WithMinimaxMetrics() MinimaxOption {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

// Minimax searches the full game tree with a one-sided cutoff: a node stops
// exploring its moves once its best value beats the best value its parent
// has already found. It is deterministic.
type Minimax struct {
	metrics metrics.Collector
}

func NewMinimax(options ...MinimaxOption) *Minimax {
	m := &Minimax{metrics: metrics.NewDummyCollector()}
	for _, option := range options {
		option(m)
	}
	return m
}

// Result is a minimax decision. Score is +1 if PlayerA wins with best play,
// -1 if PlayerB does and 0 for a draw.
type Result struct {
	Move  game.Coord
	Score int
	Nodes int
}

func (m *Minimax) FindNextMove(board *game.Board, player game.Mark) (game.Coord, error) {
	result, err := m.Evaluate(board, player)
	return result.Move, err
}

func (m *Minimax) Search(board *game.Board, player game.Mark) (game.Coord, metrics.SearchMetric, error) {
	m.metrics.Start("minimax", 1)
	result, err := m.Evaluate(board, player)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	m.metrics.AddNodes(result.Nodes)
	return result.Move, m.metrics.Complete(), nil
}

// Evaluate returns the best move for player and the game value under best play
func (m *Minimax) Evaluate(board *game.Board, player game.Mark) (Result, error) {
	if !player.IsPlayer() {
		return Result{}, fmt.Errorf("%w: %v cannot move", game.ErrInvalidState, player)
	}
	if outcome := board.Evaluate(); outcome.IsOver() {
		return Result{}, fmt.Errorf("%w: board %v is already decided (%v)", game.ErrInvalidState, board, outcome)
	}

	s := newNegamax(board.Clone())
	// The root bound is unreachable so the root never cuts off
	cell, value := s.search(player, infinity, 0)

	result := Result{
		Move:  board.Coord(cell),
		Score: value * int(player),
		Nodes: s.nodes,
	}
	log.Debug().Msgf("minimax chose %v for %v on %v: score %d after %d nodes",
		result.Move, player, board, result.Score, result.Nodes)
	return result, nil
}

type negamax struct {
	board *game.Board
	nodes int
	moves [][]game.Cell // One move buffer per depth
}

func newNegamax(board *game.Board) *negamax {
	moves := make([][]game.Cell, board.Len()+1)
	for i := range moves {
		moves[i] = make([]game.Cell, 0, board.Len()-i)
	}
	return &negamax{board: board, moves: moves}
}

// search returns the best move and its value from player's perspective.
// bound is the parent's best value so far, seen from player's perspective:
// once the best value here exceeds it the parent will never pick this node.
func (s *negamax) search(player game.Mark, bound int, depth int) (game.Cell, int) {
	s.nodes++
	if outcome := s.board.Evaluate(); outcome.IsOver() {
		return game.NoCell, outcome.RelativeTo(player)
	}

	s.moves[depth] = s.board.EmptyCellIndices(s.moves[depth])
	bestCell, best := game.NoCell, -infinity
	for _, cell := range s.moves[depth] {
		value := s.child(cell, player, -best, depth)
		if value > best {
			bestCell, best = cell, value
		}
		if best > bound {
			break
		}
	}
	return bestCell, best
}

// child plays cell for player, searches the reply and takes the move back
func (s *negamax) child(cell game.Cell, player game.Mark, bound int, depth int) int {
	s.board.Place(cell, player)
	defer s.board.Clear(cell)

	_, value := s.search(player.Opponent(), bound, depth+1)
	return -value
}
