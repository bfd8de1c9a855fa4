package searcher

import (
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// plainMinimax is an exhaustive search without cutoffs. It returns the first
// cell reaching the best value and that value from player's perspective.
func plainMinimax(board *game.Board, player game.Mark) (game.Cell, int) {
	if outcome := board.Evaluate(); outcome.IsOver() {
		return game.NoCell, outcome.RelativeTo(player)
	}
	bestCell, best := game.NoCell, -infinity
	for _, cell := range board.EmptyCellIndices(nil) {
		board.Place(cell, player)
		_, value := plainMinimax(board, player.Opponent())
		board.Clear(cell)
		if -value > best {
			bestCell, best = cell, -value
		}
	}
	return bestCell, best
}

func TestMinimax(t *testing.T) {
	t.Run("completing the top row", func(t *testing.T) {
		board := mustGrid(t, [][]int{{1, 1, 0}, {0, -1, 0}, {0, 0, -1}})

		got, err := NewMinimax().Evaluate(board, game.PlayerA)

		require.NoError(t, err)
		require.Equal(t, game.Coord{0, 2}, got.Move, "PlayerA should complete the top row")
		require.Equal(t, 1, got.Score, "PlayerA should be winning")
	})

	t.Run("winning as the minimizing player", func(t *testing.T) {
		board := mustGrid(t, [][]int{{1, 1, 0}, {-1, -1, 0}, {1, 0, 0}})

		got, err := NewMinimax().Evaluate(board, game.PlayerB)

		require.NoError(t, err)
		require.Equal(t, game.Coord{1, 2}, got.Move, "PlayerB should complete the middle row")
		require.Equal(t, -1, got.Score, "Score should be negative for a PlayerB win")
	})

	t.Run("valuing the empty board as a draw", func(t *testing.T) {
		got, err := NewMinimax().Evaluate(emptyBoard(t, 2), game.PlayerA)

		require.NoError(t, err)
		require.Equal(t, 0, got.Score, "Optimal play should draw")
		require.Equal(t, game.Coord{0, 0}, got.Move, "First move reaching the draw should win ties")
	})

	t.Run("pruning fewer nodes than a plain search visits", func(t *testing.T) {
		got, err := NewMinimax().Evaluate(emptyBoard(t, 2), game.PlayerA)

		require.NoError(t, err)
		require.Less(t, got.Nodes, 549946, "Cutoffs should skip part of the full game tree")
	})

	t.Run("agreeing with a search without cutoffs", func(t *testing.T) {
		rng := rand.New(rand.NewSource(17))
		for i := 0; i < 60; i++ {
			dims, empties := 2, 4+i%5
			if i%2 == 1 {
				dims, empties = 3, 6+i%4
			}
			board := randomPosition(t, rng, dims, empties)
			player := board.NextToMove()

			got, err := NewMinimax().Evaluate(board, player)
			require.NoError(t, err)

			wantCell, wantValue := plainMinimax(board.Clone(), player)
			require.Equal(t, wantValue*int(player), got.Score, "Score should be exact on %v", board)
			require.Equal(t, board.Coord(wantCell), got.Move, "Move should be the first best move on %v", board)
		}
	})

	t.Run("leaving the caller's board untouched", func(t *testing.T) {
		board := mustGrid(t, [][]int{{1, 0, 0}, {0, -1, 0}, {0, 0, 0}})
		before := board.Clone()

		_, err := NewMinimax().FindNextMove(board, game.PlayerA)

		require.NoError(t, err)
		require.True(t, before.Equal(board), "Search should not leak moves")
	})

	t.Run("refusing a decided board", func(t *testing.T) {
		board := mustGrid(t, [][]int{{1, 1, 1}, {0, -1, 0}, {0, 0, -1}})

		_, err := NewMinimax().FindNextMove(board, game.PlayerB)

		require.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("refusing the empty mark as player", func(t *testing.T) {
		_, err := NewMinimax().FindNextMove(emptyBoard(t, 2), game.Empty)

		require.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("collecting node counts", func(t *testing.T) {
		m := NewMinimax(WithMinimaxMetrics())

		_, metric, err := m.Search(emptyBoard(t, 2), game.PlayerA)

		require.NoError(t, err)
		require.Equal(t, "minimax", metric.Engine)
		require.Positive(t, metric.Nodes)
	})
}

func TestMinimaxSelfPlay(t *testing.T) {
	t.Run("drawing against itself on a 2-axis board", func(t *testing.T) {
		m := NewMinimax()
		mover := func(b *game.Board, p game.Mark) game.Coord {
			move, err := m.FindNextMove(b, p)
			require.NoError(t, err)
			return move
		}

		got := playGame(t, emptyBoard(t, 2), mover, mover)

		require.Equal(t, game.Outcome{Status: game.Draw}, got, "Optimal play should draw")
	})

	t.Run("never losing to random moves", func(t *testing.T) {
		m := NewMinimax()
		mover := func(b *game.Board, p game.Mark) game.Coord {
			move, err := m.FindNextMove(b, p)
			require.NoError(t, err)
			return move
		}

		for seed := uint64(0); seed < 30; seed++ {
			random := randomMover(rand.New(rand.NewSource(seed)))

			got := playGame(t, emptyBoard(t, 2), mover, random)

			require.NotEqual(t, -1, got.Score(), "Minimax should never lose (seed %d)", seed)
		}
	})

	t.Run("never losing to random moves as second player", func(t *testing.T) {
		m := NewMinimax()
		mover := func(b *game.Board, p game.Mark) game.Coord {
			move, err := m.FindNextMove(b, p)
			require.NoError(t, err)
			return move
		}

		for seed := uint64(0); seed < 30; seed++ {
			random := randomMover(rand.New(rand.NewSource(seed)))

			got := playGame(t, emptyBoard(t, 2), random, mover)

			require.NotEqual(t, 1, got.Score(), "Minimax should never lose (seed %d)", seed)
		}
	})
}
