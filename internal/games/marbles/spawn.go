package marbles

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/marble"
)

// placementTries bounds the search for a spawn point outside the delete zone.
const placementTries = 16

// spawner produces seeded ball specs and tracks the spawn budget.
type spawner struct {
	rng     *rand.Rand
	balls   config.BallsConfig
	palette []core.RGB
	budget  int
	used    int
}

func newSpawner(seed int64, balls config.BallsConfig, palette []core.RGB) *spawner {
	if len(palette) == 0 {
		palette = []core.RGB{{R: 1, G: 1, B: 1}}
	}
	return &spawner{
		rng:     rand.New(rand.NewSource(seed)),
		balls:   balls,
		palette: palette,
		budget:  balls.Count + balls.Reinforcements,
	}
}

func (s *spawner) exhausted() bool {
	return s.used >= s.budget
}

// next returns the next ball to add. Balls spawned fromTop enter along the
// upper edge; the rest are scattered across the field away from the delete
// zone.
func (s *spawner) next(w *marble.World, speed float64, fromTop bool) (marble.BallSpec, bool) {
	if s.exhausted() {
		return marble.BallSpec{}, false
	}
	s.used++

	r := s.balls.MinRadius + s.rng.Float64()*(s.balls.MaxRadius-s.balls.MinRadius)
	width, height := w.Width(), w.Height()
	zone := w.DeleteZone()

	var pos core.Vec2
	for try := 0; try < placementTries; try++ {
		x := r + s.rng.Float64()*math.Max(0, width-2*r)
		y := r + s.rng.Float64()*math.Max(0, height-2*r)
		if fromTop {
			y = r
		}
		pos = core.V(x, y)
		if !zone.Contains(pos) {
			break
		}
	}

	angle := s.rng.Float64() * 2 * math.Pi
	v := core.V(math.Cos(angle), math.Sin(angle)).Scale(s.rng.Float64() * speed)
	if fromTop {
		v.Y = math.Abs(v.Y)
	}

	return marble.BallSpec{
		Position: pos,
		Velocity: v,
		Radius:   r,
		Color:    s.palette[s.rng.Intn(len(s.palette))],
	}, true
}

// Populate adds the configured starting balls to w using the same seeded
// placement as the game, and returns how many were added. Headless runs use
// it to reproduce a game's opening layout.
func Populate(w *marble.World, seed int64, cfg config.MarblesConfig) (int, error) {
	sp := newSpawner(seed, cfg.Balls, cfg.Palette())
	added := 0
	for i := 0; i < cfg.Balls.Count; i++ {
		spec, ok := sp.next(w, cfg.Balls.MaxSpeed, false)
		if !ok {
			break
		}
		if _, err := w.AddBall(spec); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
