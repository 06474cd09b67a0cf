// pkg/scroll/direction.go
// Package scroll defines the physical scroll directions used by gesture
// calls and swipe actions.
package scroll

// Direction is the physical direction of a scroll gesture: the direction
// the finger moves, so scrolling Up reveals content further down.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Horizontal reports whether the gesture moves along the x axis.
func (d Direction) Horizontal() bool { return d == Left || d == Right }
