package marbles

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// Visual characters for rendering
const (
	BallChar         = '●'
	BallFillChar     = '█'
	PointerChar      = '+'
	PointerSuckChar  = '◎'
	SuctionRingChar  = '·'
	suctionRingSteps = 48
)

// HUD and overlay colours.
var (
	zoneColor    = core.RGB{R: 0.85, G: 0.2, B: 0.25}
	suctionColor = core.RGB{R: 0.3, G: 0.8, B: 0.9}
	pointerColor = core.RGB{R: 0.95, G: 0.95, B: 0.95}
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall || g.world == nil {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.renderHUD(dst)
	g.renderDeleteZone(dst)
	g.renderSuction(dst)
	g.renderBalls(dst)
	g.renderPointer(dst)
	g.renderStatus(dst)
	g.renderOverlay(dst)
}

// toCell converts a world position to screen cell coordinates.
func toCell(p core.Vec2) (int, int) {
	return int(math.Floor(p.X / CellW)), int(math.Floor(p.Y/CellH)) + hudRows
}

// renderHUD draws score, ball counts and the boundary mode.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(0, fmt.Sprintf("Balls: %d  Held: %d", g.world.Len(), g.world.InventoryLen()))

	mode := g.world.Boundary().String()
	dst.DrawText(dst.Width()-len(mode)-1, 0, mode)
}

// renderDeleteZone outlines the delete zone, clipped to the playfield.
func (g *Game) renderDeleteZone(dst *core.Screen) {
	zone := g.world.DeleteZone()
	x0, y0 := toCell(core.V(zone.X, zone.Y))
	x1, y1 := toCell(core.V(zone.X+zone.Width, zone.Y+zone.Height))

	x0 = core.Clamp(x0, 0, g.fieldW-1)
	x1 = core.Clamp(x1, 0, g.fieldW-1)
	y0 = core.Clamp(y0, hudRows, hudRows+g.fieldH-1)
	y1 = core.Clamp(y1, hudRows, hudRows+g.fieldH-1)
	if x1-x0 < 1 || y1-y0 < 1 {
		return
	}

	dst.DrawBoxColored(core.NewRect(x0, y0, x1-x0+1, y1-y0+1), zoneColor)
	if x1-x0 >= 4 && y1-y0 >= 2 {
		label := "DEL"
		lx := x0 + (x1-x0+1-len(label))/2
		for i, r := range label {
			dst.SetColored(lx+i, (y0+y1)/2, r, zoneColor)
		}
	}
}

// renderSuction traces the influence radius of an active suction field.
func (g *Game) renderSuction(dst *core.Screen) {
	s := g.world.Suction()
	if !s.Active {
		return
	}
	for i := 0; i < suctionRingSteps; i++ {
		angle := float64(i) / suctionRingSteps * 2 * math.Pi
		p := s.Position.Add(core.V(math.Cos(angle), math.Sin(angle)).Scale(s.Radius))
		x, y := toCell(p)
		if g.inField(x, y) && dst.Get(x, y) == ' ' {
			dst.SetColored(x, y, SuctionRingChar, suctionColor)
		}
	}
}

// renderBalls draws each ball as a disc of cells in its own colour. Balls
// smaller than a cell still occupy their centre cell.
func (g *Game) renderBalls(dst *core.Screen) {
	for _, b := range g.world.Balls() {
		cx, cy := toCell(b.Position)
		r := b.Radius()
		spanX := int(math.Ceil(r / CellW))
		spanY := int(math.Ceil(r / CellH))

		for dy := -spanY; dy <= spanY; dy++ {
			for dx := -spanX; dx <= spanX; dx++ {
				x, y := cx+dx, cy+dy
				if !g.inField(x, y) {
					continue
				}
				if dx == 0 && dy == 0 {
					dst.SetColored(x, y, BallChar, b.Color)
					continue
				}
				centre := core.V((float64(x)+0.5)*CellW, (float64(y-hudRows)+0.5)*CellH)
				if centre.Dist(b.Position) <= r {
					dst.SetColored(x, y, BallFillChar, b.Color)
				}
			}
		}
	}
}

func (g *Game) renderPointer(dst *core.Screen) {
	ch := PointerChar
	if g.world.Suction().Active {
		ch = PointerSuckChar
	}
	dst.SetColored(g.pointerX, g.pointerY+hudRows, ch, pointerColor)
}

// renderStatus lists the inventory in spit order along the bottom row.
func (g *Game) renderStatus(dst *core.Screen) {
	y := dst.Height() - 1
	label := "Held: "
	dst.DrawText(1, y, label)

	x := 1 + len(label)
	held := g.world.Inventory()
	for i, b := range held {
		if x >= dst.Width()-4 {
			dst.DrawText(x, y, fmt.Sprintf("+%d", len(held)-i))
			break
		}
		dst.SetColored(x, y, BallChar, b.Color)
		x += 2
	}
	if len(held) == 0 {
		dst.DrawText(x, y, "-")
	}
}

// renderOverlay draws pause and game over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	centerY := hudRows + g.fieldH/2

	switch g.state {
	case StatePaused:
		dst.DrawTextCentered(centerY, "PAUSED")
		dst.DrawTextCentered(centerY+1, "Press P to resume")
	case StateGameOver:
		dst.DrawTextCentered(centerY-1, "ALL MARBLES CLEARED")
		dst.DrawTextCentered(centerY, fmt.Sprintf("Score: %d  Mixes: %d", g.score, g.stats.Mixes))
		dst.DrawTextCentered(centerY+1, "R restart  ESC menu")
	}
}

func (g *Game) inField(x, y int) bool {
	return x >= 0 && x < g.fieldW && y >= hudRows && y < hudRows+g.fieldH
}
