package searcher

import (
	"math"

	"tictactoe/game"
)

type nodeState int

const (
	unexpanded nodeState = iota
	expanded
	terminal
)

func (s nodeState) String() string {
	switch s {
	case expanded:
		return "expanded"
	case terminal:
		return "terminal"
	default:
		return "unexpanded"
	}
}

type node struct {
	parent   *node
	cell     game.Cell // Move that produced this node, NoCell for the root
	toMove   game.Mark
	state    nodeState
	children []*node // Populated only when expanded
	rewards  float64
	visits   int
}

func newNode(parent *node, cell game.Cell, toMove game.Mark) *node {
	return &node{
		parent: parent,
		cell:   cell,
		toMove: toMove,
		state:  unexpanded,
	}
}

// expand creates one child per legal move of board, which must hold the
// position at n. A decided or full board has no legal moves and makes n
// terminal. The cell buffer is returned for reuse.
func (n *node) expand(board *game.Board, buf []game.Cell) []game.Cell {
	if n.state != unexpanded {
		return buf
	}

	if board.Evaluate().IsOver() {
		n.state = terminal
		return buf
	}
	buf = board.EmptyCellIndices(buf)
	if len(buf) == 0 {
		n.state = terminal
		return buf
	}

	n.children = make([]*node, len(buf))
	for i, cell := range buf {
		n.children[i] = newNode(n, cell, n.toMove.Opponent())
	}
	n.state = expanded
	return buf
}

// pickChild returns the child with the highest UCB1 value, the first one on ties
func (n *node) pickChild(cSquared float64) *node {
	if n.state != expanded {
		panic("cannot select from a node that is not expanded")
	}

	normalizer := cSquared * math.Log(float64(n.visits))

	var best *node
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := ucb1(child.rewards, child.visits, normalizer)
		if score == math.Inf(1) {
			return child
		}
		if best == nil || score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

func (n *node) average() float64 {
	return n.rewards / float64(n.visits)
}

// bestChild returns the visited child with the highest average reward
func (n *node) bestChild() *node {
	var best *node
	for _, child := range n.children {
		if child.visits == 0 {
			continue
		}
		if best == nil || child.average() > best.average() {
			best = child
		}
	}
	return best
}

// backup adds one visit and the same reward to n and every ancestor
func backup(n *node, reward float64) {
	for node := n; node != nil; node = node.parent {
		node.visits++
		node.rewards += reward
	}
}

// size counts the nodes of the subtree rooted at n
func (n *node) size() int {
	count := 1
	for _, child := range n.children {
		count += child.size()
	}
	return count
}
