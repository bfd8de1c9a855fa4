package metrics

import (
	"sync/atomic"
	"time"

	"tictactoe/game"
)

type SearchMetric struct {
	Engine       string
	Goroutines   int
	Duration     time.Duration
	Iterations   int
	Nodes        int
	FullPlayouts int
	IsTreeReused bool
}

type MoveMetric struct {
	Step   int
	Player game.Mark
	Move   game.Coord
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Mark
	Outcome        game.Outcome
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(engine string, goroutines int)
	SetTreeReused(value bool)
	AddIteration()
	AddFullPlayout()
	AddNodes(n int)
	Complete() SearchMetric
}

type collector struct {
	engine       string
	goroutines   int
	startTime    time.Time
	iterations   atomic.Int64
	nodes        atomic.Int64
	fullPlayouts atomic.Int64
	isTreeReused atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(engine string, goroutines int) {
	m.startTime = time.Now()
	m.engine = engine
	m.goroutines = goroutines
	m.iterations.Store(0)
	m.nodes.Store(0)
	m.fullPlayouts.Store(0)
	m.isTreeReused.Store(false)
}

func (m *collector) SetTreeReused(value bool) {
	m.isTreeReused.Store(value)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddNodes(n int) {
	m.nodes.Add(int64(n))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Engine:       m.engine,
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Iterations:   int(m.iterations.Load()),
		Nodes:        int(m.nodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		IsTreeReused: m.isTreeReused.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(engine string, goroutines int) {}
func (m *dummyCollector) SetTreeReused(value bool)            {}
func (m *dummyCollector) AddIteration()                       {}
func (m *dummyCollector) AddFullPlayout()                     {}
func (m *dummyCollector) AddNodes(n int)                      {}
func (m *dummyCollector) Complete() SearchMetric              { return SearchMetric{} }
