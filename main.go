package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"skirmish/config"
	"skirmish/engine"
	"skirmish/experiments"
	"skirmish/game"
	"skirmish/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML scenario file")
	mapPath := flag.String("map", "", "Map file, - for stdin (overrides the config)")
	faction := flag.String("faction", "", "Faction whose attack power is searched")
	goroutines := flag.Int("goroutines", 0, "Number of goroutines for parallel probes")
	level := flag.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	records := flag.String("records", "", "Directory for CSV probe records")
	sweep := flag.Int("sweep", 0, "Also probe every attack power up to this one")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if *mapPath != "" {
		cfg.Map = *mapPath
	}
	if *faction != "" {
		cfg.Search.Faction = *faction
	}
	if *goroutines > 0 {
		cfg.Search.Goroutines = *goroutines
	}
	if *level != "" {
		cfg.Log.Level = *level
	}
	if *records != "" {
		cfg.Records = *records
	}
	if *sweep > 0 {
		cfg.Search.SweepTo = *sweep
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	setupLogging(cfg.Log.Level)

	input, err := readMap(cfg.Map)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read map")
	}
	if err := run(os.Stdout, cfg, input); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func readMap(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}

// run plays the baseline battle and then searches for the lowest attack
// power that spares the configured faction.
func run(w io.Writer, cfg *config.Config, input string) error {
	board, err := game.Parse(input, cfg.GameOptions()...)
	if err != nil {
		return err
	}
	outcome, err := engine.New(board, engine.WithMaxRounds(cfg.MaxRounds)).Run()
	if err != nil {
		return fmt.Errorf("baseline battle: %w", err)
	}
	fmt.Fprintf(w, "Part 1. %d rounds * %d remaining hit points = %d.\n", outcome.Rounds, outcome.HitPoints, outcome.Score)

	options := []searcher.Option{
		searcher.WithGameOptions(cfg.GameOptions()...),
		searcher.WithFloor(cfg.Search.Floor),
		searcher.WithCeiling(cfg.Search.Ceiling),
		searcher.WithGoroutines(cfg.Search.Goroutines),
		searcher.WithMaxRounds(cfg.MaxRounds),
	}
	if cfg.Search.Linear {
		options = append(options, searcher.WithLinear())
	}

	var result searcher.Result
	if cfg.Records != "" {
		result, err = experiments.RunSearchExperiment(cfg.Records, "strength_search", input, cfg.Faction(), cfg.Search.SweepTo, options...)
	} else {
		var s *searcher.Search
		s, err = searcher.New(input, cfg.Faction(), options...)
		if err == nil {
			result, err = s.Run()
		}
	}
	if err != nil {
		return fmt.Errorf("strength search: %w", err)
	}

	o := result.Outcome
	fmt.Fprintf(w, "Part 2. Attack power: %d. %d rounds * %d remaining hit points = %d.\n", result.AttackPower, o.Rounds, o.HitPoints, o.Score)
	return nil
}
