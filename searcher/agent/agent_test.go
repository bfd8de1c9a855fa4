package agent

import (
	"testing"

	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/stretchr/testify/require"
)

func TestAgents(t *testing.T) {
	board, err := game.FromGrid([][]int{{1, 1, 0}, {0, -1, 0}, {0, 0, -1}})
	require.NoError(t, err)

	agents := map[string]Agent{
		"minimax": NewMinimaxAgent(searcher.NewMinimax()),
		"mcts":    NewMCTSAgent(searcher.NewMCTS(searcher.WithIterations(2000), searcher.WithSeed(1))),
	}

	for name, a := range agents {
		t.Run("completing the top row with "+name, func(t *testing.T) {
			move, _, err := a.FindMove(board, game.PlayerA)

			require.NoError(t, err)
			require.Equal(t, game.Coord{0, 2}, move)
		})
	}

	t.Run("playing an empty cell at random", func(t *testing.T) {
		a := NewRandomAgent(3)
		for i := 0; i < 50; i++ {
			move, metric, err := a.FindMove(board, game.PlayerA)

			require.NoError(t, err)
			require.Equal(t, "random", metric.Engine)
			mark, err := board.At(move)
			require.NoError(t, err)
			require.Equal(t, game.Empty, mark, "Move %v should target an empty cell", move)
		}
	})

	t.Run("wrapping precondition failures", func(t *testing.T) {
		decided, err := game.FromGrid([][]int{{1, 1, 1}, {0, -1, 0}, {0, 0, -1}})
		require.NoError(t, err)

		for name, a := range agents {
			_, _, err := a.FindMove(decided, game.PlayerB)
			require.ErrorIs(t, err, game.ErrInvalidState, "Agent %s should refuse a decided board", name)
		}
		_, _, err = NewRandomAgent(1).FindMove(decided, game.PlayerB)
		require.ErrorIs(t, err, game.ErrInvalidState)
	})
}
