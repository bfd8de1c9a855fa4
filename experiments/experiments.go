package experiments

import (
	"fmt"

	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/searcher"
	"tictactoe/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	KindMinimax = "minimax"
	KindMCTS    = "mcts"
	KindRandom  = "random"
)

// MatchUp pairs two agent IDs. Agent1 always plays PlayerA.
type MatchUp struct {
	Agent1 int `json:"agent1"`
	Agent2 int `json:"agent2"`
}

type Setup struct {
	Name       string                `json:"name"`
	Dims       int                   `json:"dims"`
	NumGames   int                   `json:"num_games"`  // Per match up
	Goroutines int                   `json:"goroutines"` // Games played concurrently
	Agents     []metrics.AgentConfig `json:"agents"`
	MatchUps   []MatchUp             `json:"match_ups"`
}

// Tally counts game results of one match up from Agent1's perspective
type Tally struct {
	MatchUp
	Wins   int
	Draws  int
	Losses int
}

func (t Tally) Games() int {
	return t.Wins + t.Draws + t.Losses
}

// BaselineSetup pits MCTS against a random player and against minimax on a
// board of the given dimensionality, with MCTS moving first in every game.
func BaselineSetup(dims int, iterations int, goroutines int, seed uint64) Setup {
	if iterations <= 0 {
		iterations = meta.DefaultIterations(dims)
	}
	mcts := metrics.AgentConfig{ID: 1, Kind: KindMCTS, Iterations: iterations, Goroutines: goroutines, Rewards: "standard", Seed: seed}
	configs := []metrics.AgentConfig{
		mcts,
		{ID: 2, Kind: KindRandom, Seed: seed + 1},
	}
	matchUps := []MatchUp{{Agent1: 1, Agent2: 2}}

	// Exhaustive minimax is only affordable on the 3x3 board
	if dims == 2 {
		configs = append(configs, metrics.AgentConfig{ID: 3, Kind: KindMinimax})
		matchUps = append(matchUps, MatchUp{Agent1: 1, Agent2: 3}, MatchUp{Agent1: 3, Agent2: 3})
	}

	return Setup{
		Name:       fmt.Sprintf("baseline_%dd", dims),
		Dims:       dims,
		NumGames:   meta.NumGames,
		Goroutines: meta.Goroutines,
		Agents:     configs,
		MatchUps:   matchUps,
	}
}

// Rewards resolves a reward scheme name. An empty name is the standard scheme.
func Rewards(name string) (searcher.RewardScheme, error) {
	switch name {
	case "", "standard":
		return searcher.StandardRewards, nil
	case "cautious":
		return searcher.CautiousRewards, nil
	default:
		return searcher.RewardScheme{}, fmt.Errorf("unknown reward scheme %q", name)
	}
}

// NewAgent builds the agent for config. offset is added to the seed so that
// repeated games between the same configs do not replay the same moves.
func NewAgent(config metrics.AgentConfig, offset uint64) (agent.Agent, error) {
	switch config.Kind {
	case KindMinimax:
		return agent.NewMinimaxAgent(searcher.NewMinimax(searcher.WithMinimaxMetrics())), nil
	case KindRandom:
		return agent.NewRandomAgent(config.Seed + offset), nil
	case KindMCTS:
		mcts, err := createMCTS(config, offset)
		if err != nil {
			return nil, err
		}
		return agent.NewMCTSAgent(mcts), nil
	default:
		return nil, fmt.Errorf("agent %d has unknown kind %q", config.ID, config.Kind)
	}
}

func createMCTS(config metrics.AgentConfig, offset uint64) (*searcher.MCTS, error) {
	rewards, err := Rewards(config.Rewards)
	if err != nil {
		return nil, fmt.Errorf("agent %d: %w", config.ID, err)
	}
	options := []searcher.Option{
		searcher.WithRewards(rewards),
		searcher.WithSeed(config.Seed + offset),
		searcher.WithMetrics(),
	}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}
	if config.TreeReuse {
		options = append(options, searcher.WithTreeReuse())
	}

	return searcher.NewMCTS(options...), nil
}

// Run plays NumGames per match up, at most Goroutines games at a time, and
// stores the setup and all records through writer if it is not nil.
func Run(setup Setup, writer *metrics.Writer) ([]metrics.GameRecord, error) {
	configs := make(map[int]metrics.AgentConfig, len(setup.Agents))
	for _, config := range setup.Agents {
		configs[config.ID] = config
	}
	for _, matchUp := range setup.MatchUps {
		for _, id := range []int{matchUp.Agent1, matchUp.Agent2} {
			if _, ok := configs[id]; !ok {
				return nil, fmt.Errorf("match up %+v refers to unknown agent %d", matchUp, id)
			}
		}
	}
	if _, err := game.Lines(setup.Dims); err != nil {
		return nil, err
	}

	total := len(setup.MatchUps) * setup.NumGames
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	log.Info().Msgf("starting %s experiment with %d games...", setup.Name, total)

	var g errgroup.Group
	g.SetLimit(max(setup.Goroutines, 1))
	for mi, matchUp := range setup.MatchUps {
		config1, config2 := configs[matchUp.Agent1], configs[matchUp.Agent2]
		for i := 0; i < setup.NumGames; i++ {
			mi, i := mi, i
			id := mi*setup.NumGames + i + 1
			g.Go(func() error {
				outcome, gameMetric, moveMetrics, err := runGame(setup.Dims, config1, config2, uint64(id))
				if err != nil {
					return fmt.Errorf("game %d between agent %d and agent %d: %w", id, config1.ID, config2.ID, err)
				}
				gameRecords[id-1] = metrics.GameRecord{
					ID:         id,
					Agent1:     config1.ID,
					Agent2:     config2.ID,
					GameMetric: gameMetric,
				}
				records := make([]metrics.MoveRecord, 0, len(moveMetrics))
				for _, mm := range moveMetrics {
					records = append(records, metrics.MoveRecord{
						Game:       id,
						MoveMetric: mm,
					})
				}
				moveRecords[id-1] = records

				log.Info().Msgf("completed matchup %d of %d game %d of %d: %v", mi+1, len(setup.MatchUps), i+1, setup.NumGames, outcome)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Msgf("completed %s experiment", setup.Name)

	if writer == nil {
		return gameRecords, nil
	}
	if err := store(writer, setup, gameRecords, moveRecords); err != nil {
		return nil, err
	}
	log.Info().Msgf("stored %s experiment in %s", setup.Name, writer.Dir())
	return gameRecords, nil
}

func store(writer *metrics.Writer, setup Setup, gameRecords []metrics.GameRecord, moveRecords [][]metrics.MoveRecord) error {
	if err := writer.WriteSetup(setup); err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}
	if err := writer.WriteAgentConfigs(setup.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	var moves []metrics.MoveRecord
	for _, records := range moveRecords {
		moves = append(moves, records...)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	return nil
}

// runGame plays a single game on an empty board, config1 moving first
func runGame(dims int, config1, config2 metrics.AgentConfig, offset uint64) (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	agent1, err := NewAgent(config1, offset)
	if err != nil {
		return game.Outcome{}, metrics.GameMetric{}, nil, err
	}
	agent2, err := NewAgent(config2, offset)
	if err != nil {
		return game.Outcome{}, metrics.GameMetric{}, nil, err
	}
	board, err := game.NewBoard(dims)
	if err != nil {
		return game.Outcome{}, metrics.GameMetric{}, nil, err
	}

	return engine.NewLocalEngine(board, [2]agent.Agent{agent1, agent2}).Run()
}

// Summarize tallies records per match up, in order of first appearance
func Summarize(records []metrics.GameRecord) []Tally {
	var tallies []Tally
	index := map[MatchUp]int{}
	for _, record := range records {
		key := MatchUp{Agent1: record.Agent1, Agent2: record.Agent2}
		i, ok := index[key]
		if !ok {
			i = len(tallies)
			index[key] = i
			tallies = append(tallies, Tally{MatchUp: key})
		}
		switch record.Outcome.RelativeTo(game.PlayerA) {
		case 1:
			tallies[i].Wins++
		case -1:
			tallies[i].Losses++
		default:
			tallies[i].Draws++
		}
	}
	return tallies
}
