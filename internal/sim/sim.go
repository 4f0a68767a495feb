// Package sim runs the marble world without a terminal. A scripted pointer
// sweeps the field with suction, then spits everything it holds at the
// delete zone, so every world operation is exercised and a seed reproduces
// a run exactly.
package sim

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles"
	"github.com/vovakirdan/tui-marbles/internal/marble"
)

// Options controls a headless run.
type Options struct {
	Steps  int
	DT     float64
	Seed   int64
	Width  float64
	Height float64

	// Cycle is the length in steps of one suck-then-spit sweep. Suction
	// runs for the first two thirds of each cycle.
	Cycle int
}

// DefaultOptions returns a one minute run at 60 steps per second on a
// field the size of an 80x24 terminal.
func DefaultOptions() Options {
	return Options{
		Steps:  3600,
		DT:     1.0 / 60.0,
		Seed:   1,
		Width:  80 * marbles.CellW,
		Height: 22 * marbles.CellH,
		Cycle:  240,
	}
}

// Result summarizes a headless run.
type Result struct {
	Steps     int
	Deleted   int
	Captured  int
	Spat      int
	Mixes     int
	Remaining int
	Score     int
	Hash      uint64 // final ball state, equal for equal seeds
}

// Run simulates opts.Steps steps of a world built from cfg.
func Run(cfg config.MarblesConfig, opts Options, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("sim: %w", err)
	}
	if opts.Steps < 0 || opts.Cycle <= 0 {
		return Result{}, fmt.Errorf("sim: steps %d, cycle %d: %w", opts.Steps, opts.Cycle, marble.ErrConfiguration)
	}

	w, err := marble.New(cfg.ToParams(opts.Width, opts.Height))
	if err != nil {
		return Result{}, fmt.Errorf("sim: %w", err)
	}
	if _, err := marbles.Populate(w, opts.Seed, cfg); err != nil {
		return Result{}, fmt.Errorf("sim: %w", err)
	}

	target := w.DeleteZone().Center()
	suckFor := opts.Cycle * 2 / 3
	var res Result

	for i := 0; i < opts.Steps; i++ {
		phase := i % opts.Cycle
		pos := sweep(i, opts)

		switch {
		case phase == 0:
			if err := w.StartSuction(pos, cfg.SuctionOptions()...); err != nil {
				return res, fmt.Errorf("sim: step %d: %w", i, err)
			}
		case phase < suckFor:
			if err := w.UpdateSuction(pos); err != nil {
				return res, fmt.Errorf("sim: step %d: %w", i, err)
			}
		case phase == suckFor:
			w.StopSuction()
		default:
			if id, ok := w.SpitNext(pos, target.Sub(pos), cfg.Spit.Speed); ok {
				res.Spat++
				logger.Debug("spit", "step", i, "id", id)
			}
		}

		step, err := w.Step(opts.DT)
		if err != nil {
			return res, fmt.Errorf("sim: step %d: %w", i, err)
		}
		res.Steps++
		res.Deleted += len(step.Deleted)
		res.Captured += len(step.Captured)
		res.Mixes += len(step.Mixed)

		if len(step.Deleted)+len(step.Captured)+len(step.Mixed) > 0 {
			logger.Debug("step",
				"n", i,
				"deleted", len(step.Deleted),
				"captured", len(step.Captured),
				"mixed", len(step.Mixed),
			)
		}
	}

	res.Remaining = w.Len() + w.InventoryLen()
	res.Score = res.Deleted * cfg.Scoring.PointsPerDelete
	if cfg.Scoring.MixesPerPoint > 0 {
		res.Score += res.Mixes / cfg.Scoring.MixesPerPoint
	}
	res.Hash = hashWorld(w)
	return res, nil
}

// sweep traces a slow figure eight over the middle of the field.
func sweep(step int, opts Options) core.Vec2 {
	t := float64(step) / float64(opts.Cycle) * 2 * math.Pi
	return core.V(
		opts.Width*(0.5+0.35*math.Sin(t)),
		opts.Height*(0.5+0.3*math.Sin(2*t)),
	)
}

func hashWorld(w *marble.World) uint64 {
	var h uint64
	for _, b := range w.Balls() {
		for _, v := range []float64{b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y, b.Color.R, b.Color.G, b.Color.B} {
			h = h*31 + math.Float64bits(v)
		}
	}
	h = h*31 + uint64(w.InventoryLen()) //#nosec G115 -- hash computation
	return h
}
