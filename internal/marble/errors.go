package marble

import "errors"

// Sentinel errors returned by World operations. Callers match them with errors.Is;
// the returned errors carry context (ids, values) wrapped around these.
var (
	// ErrConfiguration reports non-positive world dimensions or ball radius.
	ErrConfiguration = errors.New("marble: invalid configuration")

	// ErrIDCollision reports an AddBall id already held by the active set or inventory.
	ErrIDCollision = errors.New("marble: ball id already in use")

	// ErrInvalidInput reports a non-finite time step, position, velocity or radius.
	ErrInvalidInput = errors.New("marble: invalid input")
)
