package marbles

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/marble"
	"github.com/vovakirdan/tui-marbles/internal/registry"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

// testConfig is the default config with progression off, so tests do not
// depend on files in the home directory.
func testConfig() config.MarblesConfig {
	cfg := config.DefaultMarblesConfig()
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, cfg config.MarblesConfig) *Game {
	t.Helper()
	g := NewWithConfig(marble.BoundaryBounce, cfg)
	g.Reset(testRuntime)
	if g.World() == nil {
		t.Fatal("Reset() did not create a world")
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"marbles", "Marbles"},
		{"marbles_wrap", "Marbles (Wrap)"},
	}

	for _, tc := range tests {
		if !registry.Exists(tc.id) {
			t.Errorf("%s is not registered", tc.id)
			continue
		}
		g, err := registry.Create(tc.id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", tc.id, err)
		}
		if g.ID() != tc.id || g.Title() != tc.title {
			t.Errorf("Create(%s) = %s / %s, expected %s / %s", tc.id, g.ID(), g.Title(), tc.id, tc.title)
		}
	}
}

func TestGameReset(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)

	if g.World().Len() != cfg.Balls.Count {
		t.Errorf("Len() = %d, expected %d", g.World().Len(), cfg.Balls.Count)
	}
	if g.Stats().Spawned != cfg.Balls.Count {
		t.Errorf("Spawned = %d, expected %d", g.Stats().Spawned, cfg.Balls.Count)
	}

	// 80x24 screen minus HUD and status rows
	if g.World().Width() != 80*CellW || g.World().Height() != 22*CellH {
		t.Errorf("world = %gx%g, expected %gx%g", g.World().Width(), g.World().Height(), 80*CellW, 22*CellH)
	}

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("unexpected initial state: %+v", state)
	}

	for _, b := range g.World().Balls() {
		if b.Radius() < cfg.Balls.MinRadius || b.Radius() > cfg.Balls.MaxRadius {
			t.Errorf("ball %s radius %g outside config range", b.ID, b.Radius())
		}
	}
}

func TestWrapVariantUsesWrapBoundary(t *testing.T) {
	g := NewWithConfig(marble.BoundaryWrap, testConfig())
	g.Reset(testRuntime)

	if g.World().Boundary() != marble.BoundaryWrap {
		t.Errorf("Boundary() = %v, expected wrap", g.World().Boundary())
	}
	if g.ID() != "marbles_wrap" {
		t.Errorf("ID() = %s, expected marbles_wrap", g.ID())
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 10 || i == 200:
			inputs[i].Set(core.ActionSuckToggle)
		case i == 120:
			inputs[i].Set(core.ActionSpit)
		case i%7 == 0:
			inputs[i].Set(core.ActionLeft)
		case i%11 == 0:
			inputs[i].Set(core.ActionDown)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, testConfig())
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if !reflect.DeepEqual(snap1, snap2) {
		t.Error("Determinism failed: snapshots differ")
	}
	if snap1.Tick == 0 {
		t.Error("game did not advance")
	}
}

func TestSeedChangesLayout(t *testing.T) {
	g1 := newTestGame(t, testConfig())

	g2 := NewWithConfig(marble.BoundaryBounce, testConfig())
	rt := testRuntime
	rt.Seed = 999
	g2.Reset(rt)

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() == s2.Hash() {
		t.Error("different seeds should produce different layouts")
	}
}

func TestPointerKeysAndClamp(t *testing.T) {
	g := newTestGame(t, testConfig())

	startX, startY := g.pointerX, g.pointerY
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionDown))
	if g.pointerX != startX+1 || g.pointerY != startY+1 {
		t.Errorf("pointer = (%d, %d), expected (%d, %d)", g.pointerX, g.pointerY, startX+1, startY+1)
	}
	if g.aim != core.V(0, 1) {
		t.Errorf("aim = %v, expected last direction (0, 1)", g.aim)
	}

	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionLeft))
	}
	if g.pointerX != 0 {
		t.Errorf("pointerX = %d, expected clamp at 0", g.pointerX)
	}
}

func TestMousePointerMapping(t *testing.T) {
	g := newTestGame(t, testConfig())

	in := core.NewInputFrame()
	in.SetPointer(5, 3) // screen row 3 is playfield row 2
	g.Step(in)

	if g.pointerX != 5 || g.pointerY != 2 {
		t.Errorf("pointer = (%d, %d), expected (5, 2)", g.pointerX, g.pointerY)
	}
	if got := g.PointerWorld(); got != core.V(5.5*CellW, 2.5*CellH) {
		t.Errorf("PointerWorld() = %v", got)
	}

	// Status row clicks clamp into the playfield
	in = core.NewInputFrame()
	in.SetPointer(500, 23)
	g.Step(in)
	if g.pointerX != 79 || g.pointerY != 21 {
		t.Errorf("pointer = (%d, %d), expected (79, 21)", g.pointerX, g.pointerY)
	}
}

func TestSuctionToggleAndMouse(t *testing.T) {
	g := newTestGame(t, testConfig())

	g.Step(frame(core.ActionSuckToggle))
	if !g.World().Suction().Active {
		t.Fatal("toggle should start suction")
	}
	if g.World().Suction().Position != g.PointerWorld() {
		t.Errorf("suction at %v, expected pointer %v", g.World().Suction().Position, g.PointerWorld())
	}

	g.Step(frame(core.ActionSuckToggle))
	if g.World().Suction().Active {
		t.Fatal("second toggle should stop suction")
	}

	g.Step(frame(core.ActionSuckStart))
	in := frame()
	in.SetPointer(10, 10)
	g.Step(in)
	if s := g.World().Suction(); !s.Active || s.Position != g.PointerWorld() {
		t.Errorf("suction should follow the pointer while held: %+v", s)
	}
	g.Step(frame(core.ActionSuckStop))
	if g.World().Suction().Active {
		t.Error("SuckStop should stop suction")
	}
}

func TestClickInOneTickPulsesSuction(t *testing.T) {
	cfg := testConfig()
	cfg.Balls.Count = 3
	cfg.Balls.Reinforcements = 0
	cfg.Suction = config.SuctionConfig{Radius: 1e5, Strength: 0, CaptureRadius: 1e5}
	g := newTestGame(t, cfg)

	g.Step(frame(core.ActionSuckStart, core.ActionSuckStop))
	w := g.World()
	if w.Suction().Active {
		t.Error("press and release in one tick should leave suction off")
	}
	if w.InventoryLen() != 3 {
		t.Errorf("held = %d, expected the click to capture all 3", w.InventoryLen())
	}

	g.Step(frame())
	if w.Suction().Active {
		t.Error("suction should stay off on the next tick")
	}
}

func TestCaptureAndSpit(t *testing.T) {
	cfg := testConfig()
	cfg.Balls.Count = 3
	cfg.Balls.Reinforcements = 0
	cfg.Suction = config.SuctionConfig{Radius: 1e5, Strength: 0, CaptureRadius: 1e5}
	g := newTestGame(t, cfg)

	g.Step(frame(core.ActionSuckStart))
	w := g.World()
	if w.Len() != 0 || w.InventoryLen() != 3 {
		t.Fatalf("after capture: active=%d held=%d, expected 0/3", w.Len(), w.InventoryLen())
	}
	if g.Stats().Captured != 3 {
		t.Errorf("Captured = %d, expected 3", g.Stats().Captured)
	}
	if g.State().GameOver {
		t.Fatal("holding balls is not game over")
	}

	g.Step(frame(core.ActionSuckStop, core.ActionSpit))
	if w.Len() != 1 || w.InventoryLen() != 2 {
		t.Errorf("after spit: active=%d held=%d, expected 1/2", w.Len(), w.InventoryLen())
	}
	if !reflect.DeepEqual(w.InventoryIDs(), []string{"m2", "m3"}) {
		t.Errorf("InventoryIDs() = %v, expected oldest spat first", w.InventoryIDs())
	}
	if g.Stats().Spat != 1 {
		t.Errorf("Spat = %d, expected 1", g.Stats().Spat)
	}

	b, ok := w.Ball("m1")
	if !ok {
		t.Fatal("m1 should be active after spit")
	}
	if b.Velocity.Y >= 0 {
		t.Errorf("spat ball should travel up along the default aim, velocity %v", b.Velocity)
	}
}

func TestSpitWhileSuckingClearsCapture(t *testing.T) {
	cfg := testConfig()
	cfg.Balls.Count = 1
	cfg.Balls.Reinforcements = 0
	cfg.Suction = config.SuctionConfig{Radius: 1e5, Strength: 0, CaptureRadius: 20}
	g := newTestGame(t, cfg)

	// Park the pointer on the ball and capture it
	b := g.World().Balls()[0]
	x, y := toCell(b.Position)
	in := frame(core.ActionSuckStart)
	in.SetPointer(x, y)
	g.Step(in)
	if g.World().InventoryLen() != 1 {
		t.Skip("ball drifted out of the capture radius for this seed")
	}

	// Spit from mid-field so the launch point is clear of the walls
	in = frame(core.ActionSpit)
	in.SetPointer(40, 12)
	g.Step(in)
	if g.World().Len() != 1 {
		t.Errorf("spat ball was recaptured on the same tick")
	}
}

func TestGameOverWhenEverythingDeleted(t *testing.T) {
	cfg := testConfig()
	cfg.Balls.Count = 2
	cfg.Balls.Reinforcements = 0
	cfg.World.DeleteZoneSize = 1e5 // covers the whole field
	g := newTestGame(t, cfg)

	result := g.Step(frame())
	if !result.State.GameOver {
		t.Fatal("game should end once every ball is deleted")
	}
	if g.Stats().Deleted != 2 {
		t.Errorf("Deleted = %d, expected 2", g.Stats().Deleted)
	}
	if result.State.Score != 2*cfg.Scoring.PointsPerDelete {
		t.Errorf("Score = %d, expected %d", result.State.Score, 2*cfg.Scoring.PointsPerDelete)
	}

	// Steps after game over are frozen until restart
	ticks := g.Stats().Ticks
	g.Step(frame())
	if g.Stats().Ticks != ticks {
		t.Error("game over should not advance ticks")
	}

	g.Step(frame(core.ActionRestart))
	if g.State().GameOver || g.World().Len() != 2 {
		t.Errorf("restart should respawn: state=%+v balls=%d", g.State(), g.World().Len())
	}
}

func TestReinforcements(t *testing.T) {
	cfg := testConfig()
	cfg.Balls.Count = 0
	cfg.Balls.Reinforcements = 2
	cfg.Balls.SpawnEvery = 30
	g := newTestGame(t, cfg)

	if g.World().Len() != 0 {
		t.Fatalf("Len() = %d, expected 0 before reinforcements", g.World().Len())
	}

	for i := 0; i < 29; i++ {
		if g.Step(frame()).State.GameOver {
			t.Fatal("pending reinforcements must keep the game alive")
		}
	}
	if g.Stats().Spawned != 0 {
		t.Errorf("Spawned = %d before tick 30", g.Stats().Spawned)
	}

	g.Step(frame())
	if g.Stats().Spawned != 1 {
		t.Errorf("Spawned = %d at tick 30, expected 1", g.Stats().Spawned)
	}

	for i := 0; i < 100; i++ {
		g.Step(frame())
	}
	if g.Stats().Spawned != 2 {
		t.Errorf("Spawned = %d, expected budget of 2", g.Stats().Spawned)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, testConfig())

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("ActionPause should pause")
	}
	before := g.Snapshot()
	g.Step(frame(core.ActionRight))
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("paused game should not change")
	}

	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second ActionPause should resume")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testConfig())
	screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected score", screen.Row(0))
	}
	if !strings.Contains(screen.Row(screen.Height()-1), "Held:") {
		t.Errorf("status row = %q, expected inventory label", screen.Row(screen.Height()-1))
	}
	if !strings.Contains(screen.String(), "DEL") {
		t.Error("delete zone label missing")
	}

	colored := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			c := screen.GetCell(x, y)
			if c.Rune == BallChar && c.HasColor {
				colored++
			}
		}
	}
	if colored == 0 {
		t.Error("no coloured balls rendered")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := NewWithConfig(marble.BoundaryBounce, testConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 5, TickRate: 60, Seed: 1})

	result := g.Step(frame(core.ActionSuckToggle))
	if result.State.GameOver {
		t.Error("too-small screen is not game over")
	}

	screen := core.NewScreen(30, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}
	_ = g.Snapshot()
}

func TestRunSummary(t *testing.T) {
	cfg := testConfig()
	cfg.Balls.Count = 3
	cfg.Balls.Reinforcements = 0
	cfg.World.DeleteZoneSize = 1e5
	g := newTestGame(t, cfg)
	g.Step(frame())

	run := g.RunSummary(storage.SourcePlay)
	if run.GameID != "marbles" || run.Source != storage.SourcePlay {
		t.Errorf("RunSummary() ids = %q/%q, expected marbles/play", run.GameID, run.Source)
	}
	if run.Seed != testRuntime.Seed {
		t.Errorf("Seed = %d, expected %d", run.Seed, testRuntime.Seed)
	}
	if run.Deleted != 3 || run.Remaining != 0 || run.Ticks != 1 {
		t.Errorf("RunSummary() = %+v, expected 3 deleted, 0 remaining, 1 tick", run)
	}
	if run.Score != g.State().Score {
		t.Errorf("Score = %d, expected %d", run.Score, g.State().Score)
	}
}

func TestPopulateMatchesReset(t *testing.T) {
	cfg := testConfig()
	g := newTestGame(t, cfg)

	w, err := marble.New(cfg.ToParams(g.World().Width(), g.World().Height()))
	if err != nil {
		t.Fatalf("marble.New() error = %v", err)
	}
	n, err := Populate(w, testRuntime.Seed, cfg)
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if n != cfg.Balls.Count {
		t.Fatalf("Populate() added %d, expected %d", n, cfg.Balls.Count)
	}

	want := g.World().Balls()
	got := w.Balls()
	for i := range want {
		if got[i].Position != want[i].Position || got[i].Velocity != want[i].Velocity {
			t.Errorf("ball %d = %v/%v, expected %v/%v",
				i, got[i].Position, got[i].Velocity, want[i].Position, want[i].Velocity)
		}
	}
}
