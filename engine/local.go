package engine

import (
	"fmt"
	"time"

	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher/agent"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	Board  *game.Board
	Agents [2]agent.Agent // Agents[0] plays PlayerA, Agents[1] plays PlayerB
}

func NewLocalEngine(board *game.Board, agents [2]agent.Agent) *LocalEngine {
	for i, a := range agents {
		if a == nil {
			panic(fmt.Sprintf("agent %d is missing", i+1))
		}
	}
	return &LocalEngine{
		Board:  board,
		Agents: agents,
	}
}

func agentIndex(player game.Mark) int {
	if player == game.PlayerA {
		return 0
	}
	return 1
}

// Run alternates the agents from the side to move on Board until it is
// decided. Any illegal move or agent failure ends the game with an error.
func (e *LocalEngine) Run() (game.Outcome, metrics.GameMetric, []metrics.MoveMetric, error) {
	player := e.Board.NextToMove()
	gameMetric := metrics.GameMetric{
		StartingPlayer: player,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %v is starting on %v", player, e.Board)

	step := 1
	for !e.Board.Evaluate().IsOver() {
		// Agents get their own copy so a search can never touch the game board
		move, searchMetric, err := e.Agents[agentIndex(player)].FindMove(e.Board.Clone(), player)
		if err != nil {
			return game.Outcome{}, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
		}
		if err := e.Board.Apply(move, player); err != nil {
			return game.Outcome{}, gameMetric, moveMetrics, fmt.Errorf("step %d: agent for %v: %w", step, player, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("step %d: player %v played %v -> %v", step, player, move, e.Board)

		player = player.Opponent()
		step++
	}

	outcome := e.Board.Evaluate()
	gameMetric.Outcome = outcome
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().Msgf("game over after %d moves: %v", gameMetric.TotalMoves, outcome)
	return outcome, gameMetric, moveMetrics, nil
}
