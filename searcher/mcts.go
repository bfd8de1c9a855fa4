package searcher

import (
	"fmt"
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines  int
	iterations  int
	duration    time.Duration
	exploration float64
	rewards     RewardScheme
	rng         *rand.Rand
	reuse       bool
	retained    *retainedTree
	metrics     metrics.Collector
}

// retainedTree is the subtree kept after a decision when tree reuse is on
type retainedTree struct {
	root   *node
	board  *game.Board // Position at root
	player game.Mark   // Acting player the rewards are relative to
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithRewards(rewards RewardScheme) Option {
	return func(m *MCTS) {
		m.rewards = rewards
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// WithGoroutines runs independent trees in parallel and merges their root statistics
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		m.goroutines = goroutines
	}
}

// WithTreeReuse keeps the chosen subtree for the next decision of the same player
func WithTreeReuse() Option {
	return func(m *MCTS) {
		m.reuse = true
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:  1,
		exploration: DefaultExploration,
		rewards:     StandardRewards,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		panic("Must use at least one goroutine")
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return m
}

func (m *MCTS) FindNextMove(board *game.Board, player game.Mark) (game.Coord, error) {
	move, _, err := m.Search(board, player)
	return move, err
}

// Search runs the configured budget of iterations from board with player to
// move and returns the root move with the highest average reward.
func (m *MCTS) Search(board *game.Board, player game.Mark) (game.Coord, metrics.SearchMetric, error) {
	if !player.IsPlayer() {
		return nil, metrics.SearchMetric{}, fmt.Errorf("%w: %v cannot move", game.ErrInvalidState, player)
	}
	if outcome := board.Evaluate(); outcome.IsOver() {
		return nil, metrics.SearchMetric{}, fmt.Errorf("%w: board %v is already decided (%v)", game.ErrInvalidState, board, outcome)
	}

	m.metrics.Start("mcts", m.goroutines)
	budget := m.budget(board.Dims())

	var root *node
	if m.goroutines > 1 {
		root = m.searchParallel(board, player, budget)
	} else {
		var reused bool
		root, reused = m.findRoot(board, player)
		m.metrics.SetTreeReused(reused)
		w := newWorker(root, board, player, m.rng, m)
		w.run(budget)
	}

	best := root.bestChild()
	if best == nil {
		panic("root has no visited children")
	}
	if m.reuse && m.goroutines == 1 {
		m.retain(board, player, best)
	}

	metric := m.metrics.Complete()
	log.Debug().Msgf("mcts chose %v for %v on %v: average %.3f over %d visits (root visits %d)",
		board.Coord(best.cell), player, board, best.average(), best.visits, root.visits)

	return board.Coord(best.cell), metric, nil
}

type budget struct {
	iterations int
	deadline   time.Time
}

func (m *MCTS) budget(dims int) budget {
	if m.iterations > 0 {
		return budget{iterations: m.iterations}
	}
	if m.duration > 0 {
		return budget{deadline: time.Now().Add(m.duration)}
	}
	return budget{iterations: meta.DefaultIterations(dims)}
}

// exhausted reports whether i completed iterations use up the budget. A
// duration budget always allows one iteration.
func (b budget) exhausted(i int) bool {
	if b.iterations > 0 {
		return i >= b.iterations
	}
	return i > 0 && time.Now().After(b.deadline)
}

// split divides an iteration budget into n shares of at least one iteration
func (b budget) split(n int) []budget {
	shares := make([]budget, n)
	for i := range shares {
		shares[i] = b
		if b.iterations > 0 {
			shares[i].iterations = b.iterations / n
			if i < b.iterations%n {
				shares[i].iterations++
			}
			if shares[i].iterations == 0 {
				shares[i].iterations = 1
			}
		}
	}
	return shares
}

func (m *MCTS) searchParallel(board *game.Board, player game.Mark, b budget) *node {
	roots := make([]*node, m.goroutines)
	shares := b.split(m.goroutines)

	var g errgroup.Group
	for i := 0; i < m.goroutines; i++ {
		i := i
		seed := m.rng.Uint64()
		g.Go(func() error {
			root := newNode(nil, game.NoCell, player)
			w := newWorker(root, board, player, rand.New(rand.NewSource(seed)), m)
			w.run(shares[i])
			roots[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(fmt.Sprintf("parallel search failed: %v", err))
	}

	return mergeRoots(roots)
}

// mergeRoots sums the root and root child statistics of trees grown from the
// same position. Every tree expands its root in the same order.
func mergeRoots(roots []*node) *node {
	merged := newNode(nil, game.NoCell, roots[0].toMove)
	for _, root := range roots {
		merged.visits += root.visits
		merged.rewards += root.rewards
		if root.state != expanded {
			continue
		}
		if merged.state == unexpanded {
			merged.children = make([]*node, len(root.children))
			for i, child := range root.children {
				merged.children[i] = newNode(merged, child.cell, child.toMove)
			}
			merged.state = expanded
		}
		for i, child := range root.children {
			merged.children[i].visits += child.visits
			merged.children[i].rewards += child.rewards
		}
	}
	return merged
}

// findRoot resumes from the retained subtree if the board is its position
// after one opponent move. Otherwise it starts a fresh tree.
func (m *MCTS) findRoot(board *game.Board, player game.Mark) (*node, bool) {
	r := m.retained
	m.retained = nil
	if r == nil || r.player != player || r.board.Dims() != board.Dims() {
		return newNode(nil, game.NoCell, player), false
	}
	if r.root.state != expanded {
		return newNode(nil, game.NoCell, player), false
	}

	changed := game.NoCell
	for i := 0; i < board.Len(); i++ {
		cell := game.Cell(i)
		if r.board.MarkAt(cell) == board.MarkAt(cell) {
			continue
		}
		if changed != game.NoCell || r.board.MarkAt(cell) != game.Empty || board.MarkAt(cell) != r.root.toMove {
			log.Debug().Msgf("board %v does not follow retained position %v, resetting tree", board, r.board)
			return newNode(nil, game.NoCell, player), false
		}
		changed = cell
	}

	for _, child := range r.root.children {
		if child.cell == changed {
			child.parent = nil
			return child, true
		}
	}
	return newNode(nil, game.NoCell, player), false
}

func (m *MCTS) retain(board *game.Board, player game.Mark, best *node) {
	next := board.Clone()
	next.Place(best.cell, player)
	best.parent = nil
	m.retained = &retainedTree{root: best, board: next, player: player}
}

// worker grows one tree. It owns its scratch board, buffers and random source.
type worker struct {
	root     *node
	board    *game.Board // Position at root, read only
	scratch  *game.Board
	player   game.Mark
	rng      *rand.Rand
	policy   *RandomPlayout
	cSquared float64
	rewards  RewardScheme
	metrics  metrics.Collector
	cells    []game.Cell
}

func newWorker(root *node, board *game.Board, player game.Mark, rng *rand.Rand, m *MCTS) *worker {
	return &worker{
		root:     root,
		board:    board,
		scratch:  board.Clone(),
		player:   player,
		rng:      rng,
		policy:   NewRandomPlayout(rng),
		cSquared: m.exploration * m.exploration,
		rewards:  m.rewards,
		metrics:  m.metrics,
		cells:    make([]game.Cell, 0, board.Len()),
	}
}

func (w *worker) run(b budget) {
	for i := 0; !b.exhausted(i); i++ {
		w.simulate()
		w.metrics.AddIteration()
	}
}

func (w *worker) simulate() {
	w.scratch.CopyFrom(w.board)
	leaf := w.selectThenExpand()
	outcome := w.policy.Play(w.scratch, leaf.toMove)
	w.metrics.AddFullPlayout()
	backup(leaf, w.rewards.Of(outcome.RelativeTo(w.player)))
}

// selectThenExpand descends by UCB1 to an unexpanded or terminal node,
// expands it, and steps into a random new child if expansion happened. The
// scratch board follows every step.
func (w *worker) selectThenExpand() *node {
	n := w.root
	for n.state == expanded {
		child := n.pickChild(w.cSquared)
		w.scratch.Place(child.cell, n.toMove)
		n = child
	}

	if n.state == unexpanded {
		w.cells = n.expand(w.scratch, w.cells)
		if n.state == expanded {
			w.metrics.AddNodes(len(n.children))
			child := n.children[w.rng.Intn(len(n.children))]
			w.scratch.Place(child.cell, n.toMove)
			n = child
		}
	}
	return n
}
