package searcher

import (
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestNodeExpand(t *testing.T) {
	t.Run("expanding one child per empty cell in order", func(t *testing.T) {
		board := mustGrid(t, [][]int{{1, 1, 0}, {0, -1, 0}, {0, 0, -1}})
		node := newNode(nil, game.NoCell, game.PlayerA)

		node.expand(board, nil)

		require.Equal(t, expanded, node.state, "Node should be expanded")
		require.Len(t, node.children, 5, "Node should have one child per empty cell")
		for i, cell := range board.EmptyCellIndices(nil) {
			child := node.children[i]
			require.Equal(t, cell, child.cell, "Children should follow the empty cell order")
			require.Equal(t, game.PlayerB, child.toMove, "Opponent should move at the child")
			require.Equal(t, unexpanded, child.state, "Child should start unexpanded")
			require.Equal(t, node, child.parent)
			require.Zero(t, child.visits)
			require.Zero(t, child.rewards)
		}
	})

	t.Run("stagnating on a full board", func(t *testing.T) {
		board := mustGrid(t, [][]int{{1, -1, 1}, {1, -1, -1}, {-1, 1, 1}})
		node := newNode(nil, game.NoCell, game.PlayerA)

		node.expand(board, nil)

		require.Equal(t, terminal, node.state, "Full board should be terminal")
		require.Nil(t, node.children, "Terminal node should have no children")
	})

	t.Run("stagnating on a decided board with empty cells", func(t *testing.T) {
		board := mustGrid(t, [][]int{{1, 1, 1}, {0, -1, 0}, {0, 0, -1}})
		node := newNode(nil, game.NoCell, game.PlayerB)

		node.expand(board, nil)

		require.Equal(t, terminal, node.state, "Decided board should be terminal")
		require.Nil(t, node.children)
	})

	t.Run("expanding only once", func(t *testing.T) {
		board := emptyBoard(t, 2)
		node := newNode(nil, game.NoCell, game.PlayerA)
		node.expand(board, nil)
		first := node.children[0]

		node.expand(board, nil)

		require.Same(t, first, node.children[0], "Children should not be regenerated")
	})
}

func TestNodePickChild(t *testing.T) {
	t.Run("selecting unvisited child first", func(t *testing.T) {
		visited := &node{rewards: 100, visits: 1}
		unvisited := &node{}
		other := &node{}
		parent := &node{state: expanded, children: []*node{visited, unvisited, other}, visits: 1}

		got := parent.pickChild(2)

		require.Same(t, unvisited, got, "First unvisited child should be selected")
	})

	t.Run("selecting child with max UCB1", func(t *testing.T) {
		low := &node{rewards: -10, visits: 2}
		high := &node{rewards: 10, visits: 2}
		parent := &node{state: expanded, children: []*node{low, high}, visits: 4}

		got := parent.pickChild(2)

		require.Same(t, high, got, "Node should select child with max UCB1 value")
	})

	t.Run("breaking ties by child order", func(t *testing.T) {
		first := &node{rewards: 5, visits: 2}
		second := &node{rewards: 5, visits: 2}
		parent := &node{state: expanded, children: []*node{first, second}, visits: 4}

		require.Same(t, first, parent.pickChild(2))
	})

	t.Run("panicking on an unexpanded node", func(t *testing.T) {
		require.Panics(t, func() {
			newNode(nil, game.NoCell, game.PlayerA).pickChild(2)
		})
	})
}

func TestNodeBestChild(t *testing.T) {
	t.Run("choosing highest average reward", func(t *testing.T) {
		many := &node{rewards: 50, visits: 10}
		few := &node{rewards: 18, visits: 2}
		parent := &node{children: []*node{many, few}}

		require.Same(t, few, parent.bestChild(), "Average reward should decide, not visits")
	})

	t.Run("skipping unvisited children", func(t *testing.T) {
		unvisited := &node{}
		losing := &node{rewards: -10, visits: 1}
		parent := &node{children: []*node{unvisited, losing}}

		require.Same(t, losing, parent.bestChild())
	})

	t.Run("breaking ties by child order", func(t *testing.T) {
		first := &node{rewards: 10, visits: 1}
		second := &node{rewards: 20, visits: 2}
		parent := &node{children: []*node{first, second}}

		require.Same(t, first, parent.bestChild())
	})

	t.Run("returning nil without visited children", func(t *testing.T) {
		parent := &node{children: []*node{{}, {}}}

		require.Nil(t, parent.bestChild())
	})
}

func TestBackup(t *testing.T) {
	t.Run("adding the same reward at every ancestor", func(t *testing.T) {
		root := &node{toMove: game.PlayerA, rewards: 4, visits: 2}
		middle := &node{parent: root, toMove: game.PlayerB}
		leaf := &node{parent: middle, toMove: game.PlayerA}

		backup(leaf, -10)

		for _, n := range []*node{leaf, middle} {
			require.Equal(t, 1, n.visits, "Node should add a visit")
			require.Equal(t, -10.0, n.rewards, "Node should add the reward unchanged")
		}
		require.Equal(t, 3, root.visits, "Root should add a visit")
		require.Equal(t, -6.0, root.rewards, "Root should add the reward unchanged")
	})
}

func TestNodeSize(t *testing.T) {
	board := emptyBoard(t, 2)
	root := newNode(nil, game.NoCell, game.PlayerA)
	root.expand(board, nil)

	require.Equal(t, 10, root.size(), "Root and its nine children")
}
