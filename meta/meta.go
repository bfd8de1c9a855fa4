// meta/meta.go
package meta

// Iterations2D is the default MCTS iteration budget on a 3x3 board.
const Iterations2D = 1_000_000

// Iterations3D is the default MCTS iteration budget on a 3x3x3 board, where
// every playout is longer and the state space far larger.
const Iterations3D = 100_000

// NumGames defines the number of games per experiment matchup.
const NumGames = 50

// Goroutines defines the default number of goroutines for experiment fan-out.
const Goroutines = 4

// DefaultIterations returns the MCTS budget used when none is configured.
func DefaultIterations(dims int) int {
	if dims == 3 {
		return Iterations3D
	}
	return Iterations2D
}
