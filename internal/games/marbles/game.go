// Package marbles adapts the marble simulation to the registry.Game
// interface: terminal cells map to world units, keys and the mouse drive
// suction and spit, and deleted balls score points.
package marbles

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/marble"
	"github.com/vovakirdan/tui-marbles/internal/registry"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

// One terminal cell covers CellW x CellH world units. Cells are roughly
// twice as tall as wide, so this keeps balls round on screen.
const (
	CellW = 8.0
	CellH = 16.0
)

// Layout rows reserved outside the playfield.
const (
	hudRows    = 1 // score line at the top
	statusRows = 1 // inventory line at the bottom
	minScreenW = 24
	minScreenH = 10
)

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives config fallback warnings.
var logger = log.Default()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Stats counts what happened during a run.
type Stats struct {
	Deleted   int
	Captured  int
	Spat      int
	Mixes     int
	Ticks     int
	Spawned   int
	Remaining int // balls in world plus inventory
}

// Game implements the marble game on top of a marble.World.
type Game struct {
	boundary marble.Boundary
	override *config.MarblesConfig

	world *marble.World
	spawn *spawner

	// Pointer in playfield cells and the last keyboard direction, used to aim spits
	pointerX, pointerY int
	aim                core.Vec2

	state string
	score int
	stats Stats

	runtime        core.RuntimeConfig
	cfg            config.MarblesConfig
	difficulty     *config.DifficultyManager
	fieldW, fieldH int // playfield size in cells
	screenTooSmall bool
}

// New creates a marble game whose balls bounce off the walls.
func New() *Game {
	return &Game{boundary: marble.BoundaryBounce}
}

// NewWrap creates a marble game whose balls wrap around the edges.
func NewWrap() *Game {
	return &Game{boundary: marble.BoundaryWrap}
}

// NewWithConfig creates a game that ignores config files and presets.
func NewWithConfig(boundary marble.Boundary, cfg config.MarblesConfig) *Game {
	return &Game{boundary: boundary, override: &cfg}
}

func init() {
	registry.Register("marbles", func() registry.Game { return New() })
	registry.Register("marbles_wrap", func() registry.Game { return NewWrap() })
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.boundary == marble.BoundaryWrap {
		return "marbles_wrap"
	}
	return "marbles"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.boundary == marble.BoundaryWrap {
		return "Marbles (Wrap)"
	}
	return "Marbles"
}

// Description returns a one-line summary for lists and menus.
func (g *Game) Description() string {
	if g.boundary == marble.BoundaryWrap {
		return "Balls leaving one edge enter from the opposite edge"
	}
	return "Balls bounce off the walls"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.cfg.World.Boundary = g.boundary.String()
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.state = StatePlaying
	g.score = 0
	g.stats = Stats{}
	g.aim = core.V(0, -1)
	g.world = nil

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	if g.screenTooSmall {
		return
	}

	g.fieldW = runtime.ScreenW
	g.fieldH = runtime.ScreenH - hudRows - statusRows
	g.pointerX = g.fieldW / 2
	g.pointerY = g.fieldH / 2

	p := g.cfg.ToParams(float64(g.fieldW)*CellW, float64(g.fieldH)*CellH)
	p.NewID = sequentialIDs()
	world, err := marble.New(p)
	if err != nil {
		// Validated config and a checked screen size make this unreachable
		logger.Error("cannot create world", "err", err)
		g.screenTooSmall = true
		return
	}
	g.world = world

	g.spawn = newSpawner(runtime.Seed, g.cfg.Balls, g.cfg.Palette())
	for i := 0; i < g.cfg.Balls.Count; i++ {
		g.spawnBall(false)
	}
	g.stats.Remaining = g.world.Len()
}

// loadConfig resolves the config for a run, falling back to defaults when a
// file is unreadable or invalid.
func (g *Game) loadConfig() config.MarblesConfig {
	if g.override != nil {
		return *g.override
	}

	cfg, source, err := config.LoadMarblesWithSource(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultMarblesConfig()
	}

	if difficultyPreset != "" {
		config.ApplyMarblesPreset(&cfg, difficultyPreset)
	}

	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "source", source, "err", err)
		cfg = config.DefaultMarblesConfig()
		if difficultyPreset != "" {
			config.ApplyMarblesPreset(&cfg, difficultyPreset)
		}
	}
	return cfg
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("m%d", n)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.state == StateGameOver {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	g.stats.Ticks++

	pulse := g.handleInput(in)
	g.reinforce()

	result, err := g.world.Step(g.runtime.TickSeconds())
	if pulse {
		g.world.StopSuction()
	}
	if err != nil {
		logger.Error("step failed", "err", err)
		return core.StepResult{State: g.State()}
	}
	g.record(result)

	if g.spawn.exhausted() && g.world.Len() == 0 && g.world.InventoryLen() == 0 {
		g.state = StateGameOver
	}

	return core.StepResult{State: g.State()}
}

// handleInput moves the pointer and drives suction and spit.
// handleInput applies one frame of input. It reports a pulse when a press
// and release arrived in the same frame: suction then runs for this tick
// only and the caller stops it after the world step.
func (g *Game) handleInput(in core.InputFrame) (pulse bool) {
	switch {
	case in.Has(core.ActionLeft):
		g.movePointer(-1, 0)
	case in.Has(core.ActionRight):
		g.movePointer(1, 0)
	case in.Has(core.ActionUp):
		g.movePointer(0, -1)
	case in.Has(core.ActionDown):
		g.movePointer(0, 1)
	}

	if in.HasPointer {
		g.pointerX = core.Clamp(in.Pointer.X, 0, g.fieldW-1)
		g.pointerY = core.Clamp(in.Pointer.Y-hudRows, 0, g.fieldH-1)
	}

	pos := g.PointerWorld()
	start, stop := in.Has(core.ActionSuckStart), in.Has(core.ActionSuckStop)
	switch {
	case start && stop:
		pulse = g.startSuction(pos)
	case start:
		g.startSuction(pos)
	case stop:
		g.world.StopSuction()
	case in.Has(core.ActionSuckToggle):
		if g.world.Suction().Active {
			g.world.StopSuction()
		} else {
			g.startSuction(pos)
		}
	}
	if err := g.world.UpdateSuction(pos); err != nil {
		logger.Error("move suction", "err", err)
	}

	if in.Has(core.ActionSpit) {
		g.spit(pos)
	}
	return pulse
}

// startSuction reports whether suction is running after the call.
func (g *Game) startSuction(pos core.Vec2) bool {
	if err := g.world.StartSuction(pos, g.cfg.SuctionOptions()...); err != nil {
		logger.Error("start suction", "err", err)
		return false
	}
	return true
}

func (g *Game) movePointer(dx, dy int) {
	g.pointerX = core.Clamp(g.pointerX+dx, 0, g.fieldW-1)
	g.pointerY = core.Clamp(g.pointerY+dy, 0, g.fieldH-1)
	g.aim = core.V(float64(dx), float64(dy))
}

// spit releases the oldest held ball along the aim direction. While suction
// is running the ball leaves from just outside the capture radius so it is
// not swallowed again on the same tick.
func (g *Game) spit(pos core.Vec2) {
	from := pos
	if s := g.world.Suction(); s.Active {
		clearance := s.CaptureRadius + g.cfg.Balls.MaxRadius + 1
		from = pos.Add(g.aim.Normalize().Scale(clearance))
	}
	if _, ok := g.world.SpitNext(from, g.aim, g.cfg.Spit.Speed); ok {
		g.stats.Spat++
	}
}

// reinforce drips extra balls in while the spawn budget lasts.
func (g *Game) reinforce() {
	if g.spawn.exhausted() {
		return
	}
	interval := g.difficulty.SpawnInterval(g.cfg.Balls.SpawnEvery, g.score, g.stats.Ticks)
	if g.stats.Ticks%interval == 0 {
		g.spawnBall(true)
	}
}

func (g *Game) spawnBall(fromTop bool) {
	speed := g.difficulty.Speed(g.cfg.Balls.MaxSpeed, g.score, g.stats.Ticks)
	spec, ok := g.spawn.next(g.world, speed, fromTop)
	if !ok {
		return
	}
	if _, err := g.world.AddBall(spec); err != nil {
		logger.Error("spawn failed", "err", err)
		return
	}
	g.stats.Spawned++
}

// record folds one world step into stats and score.
func (g *Game) record(r marble.StepResult) {
	g.stats.Deleted += len(r.Deleted)
	g.stats.Captured += len(r.Captured)
	g.stats.Mixes += len(r.Mixed)
	g.stats.Remaining = g.world.Len() + g.world.InventoryLen()

	g.score = g.stats.Deleted * g.cfg.Scoring.PointsPerDelete
	if g.cfg.Scoring.MixesPerPoint > 0 {
		g.score += g.stats.Mixes / g.cfg.Scoring.MixesPerPoint
	}
}

// PointerWorld returns the pointer cell centre in world units.
func (g *Game) PointerWorld() core.Vec2 {
	return core.V((float64(g.pointerX)+0.5)*CellW, (float64(g.pointerY)+0.5)*CellH)
}

// World exposes the underlying simulation, nil until Reset succeeds.
func (g *Game) World() *marble.World {
	return g.world
}

// Stats returns run counters for persistence.
func (g *Game) Stats() Stats {
	return g.stats
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// RunSummary converts the current run into a storage record.
func (g *Game) RunSummary(source string) storage.RunSummary {
	return storage.RunSummary{
		GameID:    g.ID(),
		Source:    source,
		Seed:      g.runtime.Seed,
		Score:     g.score,
		Deleted:   g.stats.Deleted,
		Captured:  g.stats.Captured,
		Spat:      g.stats.Spat,
		Mixes:     g.stats.Mixes,
		Ticks:     g.stats.Ticks,
		Remaining: g.stats.Remaining,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state == StateGameOver,
		Paused:   g.state == StatePaused,
	}
}
