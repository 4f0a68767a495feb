package marbles

import "math"

// Snapshot is a flattened view of the game for determinism checks and
// replay comparison. Floats are stored as raw bits so equal snapshots hash
// equally.
type Snapshot struct {
	Tick     int
	Score    int
	State    string
	PointerX int
	PointerY int
	Suction  bool
	Spawned  int

	// Each ball is 7 values: X, Y, VX, VY, R, G, B
	BallCount int
	BallData  []uint64

	// Inventory ids in spit order
	Held []string
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.stats.Ticks,
		Score:    g.score,
		State:    g.state,
		PointerX: g.pointerX,
		PointerY: g.pointerY,
		Spawned:  g.stats.Spawned,
	}
	if g.world == nil {
		return snap
	}

	balls := g.world.Balls()
	snap.Suction = g.world.Suction().Active
	snap.BallCount = len(balls)
	snap.BallData = make([]uint64, 0, len(balls)*7)
	for _, b := range balls {
		snap.BallData = append(snap.BallData,
			math.Float64bits(b.Position.X),
			math.Float64bits(b.Position.Y),
			math.Float64bits(b.Velocity.X),
			math.Float64bits(b.Velocity.Y),
			math.Float64bits(b.Color.R),
			math.Float64bits(b.Color.G),
			math.Float64bits(b.Color.B),
		)
	}
	snap.Held = g.world.InventoryIDs()
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PointerX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PointerY)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Spawned)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCount)     //#nosec G115 -- hash computation
	h = h*31 + hashString(snap.State)
	if snap.Suction {
		h = h*31 + 1
	}

	for _, v := range snap.BallData {
		h = h*31 + v
	}
	for _, id := range snap.Held {
		h = h*31 + hashString(id)
	}
	return h
}

func hashString(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}
