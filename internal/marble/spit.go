package marble

import "github.com/vovakirdan/tui-marbles/internal/core"

// SpitNext releases the oldest captured ball at pos, moving along dir at
// speed. It returns the released id, or false when the inventory is empty
// or any of pos, dir and speed is not finite. Rejected input leaves the
// inventory untouched, so InventoryLen tells the two cases apart.
func (w *World) SpitNext(pos, dir core.Vec2, speed float64) (string, bool) {
	if !validLaunch(pos, dir, speed) {
		return "", false
	}
	b := w.inventory.PopFront()
	if b == nil {
		return "", false
	}
	w.launch(b, pos, dir, speed)
	return b.ID, true
}

// SpitSpecific releases the captured ball id. It returns false if id is not
// in the inventory or the input is not finite; the active set is never
// searched.
func (w *World) SpitSpecific(id string, pos, dir core.Vec2, speed float64) bool {
	if !validLaunch(pos, dir, speed) {
		return false
	}
	b := w.inventory.Remove(id)
	if b == nil {
		return false
	}
	w.launch(b, pos, dir, speed)
	return true
}

func validLaunch(pos, dir core.Vec2, speed float64) bool {
	return pos.IsFinite() && dir.IsFinite() && core.IsFinite(speed)
}

// launch re-inserts b into the active set with new kinematics. A zero
// direction releases the ball at rest.
func (w *World) launch(b *Ball, pos, dir core.Vec2, speed float64) {
	b.Position = pos
	b.Velocity = dir.Normalize().Scale(speed)
	w.balls.Push(b)
}
