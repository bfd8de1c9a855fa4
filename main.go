package main

import (
	"flag"
	"os"
	"time"

	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	dims := flag.Int("dims", 2, "Board dimensionality (2 or 3)")
	numGames := flag.Int("games", meta.NumGames, "Number of games per matchup")
	iterations := flag.Int("iterations", 0, "MCTS iterations per move (0 for the default of the board)")
	goroutines := flag.Int("goroutines", 1, "Number of goroutines for parallel MCTS playouts")
	parallel := flag.Int("parallel", meta.Goroutines, "Number of games played concurrently")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the random agents and MCTS")
	out := flag.String("out", "results", "Directory for experiment results (empty to skip writing)")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	setup := experiments.BaselineSetup(*dims, *iterations, *goroutines, *seed)
	setup.NumGames = *numGames
	setup.Goroutines = *parallel

	var writer *metrics.Writer
	if *out != "" {
		writer, err = metrics.NewWriter(*out, setup.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create experiment writer")
		}
	}

	records, err := experiments.Run(setup, writer)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", setup.Name)
	}

	for _, tally := range experiments.Summarize(records) {
		log.Info().Msgf("agent %d vs agent %d: %d wins, %d draws, %d losses in %d games",
			tally.Agent1, tally.Agent2, tally.Wins, tally.Draws, tally.Losses, tally.Games())
	}
}
