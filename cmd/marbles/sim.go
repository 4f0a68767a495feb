package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-marbles/internal/marble"
	"github.com/vovakirdan/tui-marbles/internal/sim"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var (
	flagSteps   int
	flagDT      float64
	flagCycle   int
	flagRecord  bool
	flagVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless, seeded simulation",
	Long: `Run the marble world without a terminal. A scripted pointer sweeps
the field with suction, then spits what it holds at the delete zone.
The same seed and config always produce the same result and hash.

Examples:
  marbles sim
  marbles sim --seed 7 --steps 7200
  marbles sim --dt 0.008 --verbose
  marbles sim --difficulty hard --record`,
	Run: runSim,
}

func init() {
	defaults := sim.DefaultOptions()
	simCmd.Flags().IntVar(&flagSteps, "steps", defaults.Steps, "Number of fixed steps to run")
	simCmd.Flags().Float64Var(&flagDT, "dt", defaults.DT, "Step length in seconds")
	simCmd.Flags().IntVar(&flagCycle, "cycle", defaults.Cycle, "Steps per suck-then-spit sweep")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the run to the scores database")
	simCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log per-step events")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	opts := sim.DefaultOptions()
	opts.Steps = flagSteps
	opts.DT = flagDT
	opts.Cycle = flagCycle
	opts.Seed = flagSeed
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	logger.Info("starting sim", "config", source, "seed", opts.Seed, "steps", opts.Steps, "dt", opts.DT)

	start := time.Now()
	res, err := sim.Run(cfg, opts, logger)
	if err != nil {
		logger.Error("sim failed", "err", err)
		os.Exit(1)
	}

	logger.Info("run complete",
		"deleted", res.Deleted,
		"captured", res.Captured,
		"spat", res.Spat,
		"mixes", res.Mixes,
		"remaining", res.Remaining,
		"score", res.Score,
		"hash", fmt.Sprintf("%016x", res.Hash),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if !flagRecord {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Error("cannot open scores database", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	gameID := "marbles"
	if b, _ := marble.ParseBoundary(cfg.World.Boundary); b == marble.BoundaryWrap {
		gameID = "marbles_wrap"
	}

	id, err := store.SaveRun(storage.RunSummary{
		GameID:    gameID,
		Source:    storage.SourceSim,
		Seed:      opts.Seed,
		Score:     res.Score,
		Deleted:   res.Deleted,
		Captured:  res.Captured,
		Spat:      res.Spat,
		Mixes:     res.Mixes,
		Ticks:     res.Steps,
		Remaining: res.Remaining,
	})
	if err != nil {
		logger.Error("cannot record run", "err", err)
		return
	}
	logger.Info("run recorded", "id", id, "table", gameID)
}
