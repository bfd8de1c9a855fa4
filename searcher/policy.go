package searcher

import (
	"tictactoe/game"

	"golang.org/x/exp/rand"
)

// RandomPlayout plays uniformly random moves. It owns a cell buffer and is
// not safe for concurrent use.
type RandomPlayout struct {
	rng   *rand.Rand
	cells []game.Cell
}

func NewRandomPlayout(rng *rand.Rand) *RandomPlayout {
	return &RandomPlayout{
		rng:   rng,
		cells: make([]game.Cell, 0, 27),
	}
}

// Choose picks one empty cell uniformly at random
func (p *RandomPlayout) Choose(board *game.Board) (game.Cell, bool) {
	p.cells = board.EmptyCellIndices(p.cells)
	if len(p.cells) == 0 {
		return game.NoCell, false
	}
	return p.cells[p.rng.Intn(len(p.cells))], true
}

// Play fills board with random moves, starting with toMove and alternating,
// until the game is decided. The board is modified in place.
func (p *RandomPlayout) Play(board *game.Board, toMove game.Mark) game.Outcome {
	outcome := board.Evaluate()
	for !outcome.IsOver() {
		cell, _ := p.Choose(board)
		board.Place(cell, toMove)
		toMove = toMove.Opponent()
		outcome = board.Evaluate()
	}
	return outcome
}
