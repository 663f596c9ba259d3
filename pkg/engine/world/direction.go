package world

import (
	"fmt"
	"strings"
)

// Direction represents a cardinal direction
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AutoDirection asks a doorway to take the first free direction in DoorwayOrder.
const AutoDirection Direction = -1

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// DoorwayOrder is the order in which an unregistered doorway picks its direction:
// deltas (+1,0), (-1,0), (0,+1), (0,-1).
func DoorwayOrder() []Direction {
	return []Direction{South, North, East, West}
}

// ParseDirection maps a (dx, dy) unit vector to its Direction.
func ParseDirection(dx, dy int) (Direction, error) {
	switch {
	case dx == -1 && dy == 0:
		return North, nil
	case dx == 1 && dy == 0:
		return South, nil
	case dx == 0 && dy == 1:
		return East, nil
	case dx == 0 && dy == -1:
		return West, nil
	default:
		return AutoDirection, fmt.Errorf("%w: illegal action (%d, %d), expected one of %v", ErrValidation, dx, dy, actionVectors())
	}
}

// ParseDirectionName maps a direction name ("north", "S", "east", ...) to its Direction.
// The empty string and "auto" map to AutoDirection.
func ParseDirectionName(name string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return AutoDirection, nil
	case "north", "n":
		return North, nil
	case "south", "s":
		return South, nil
	case "east", "e":
		return East, nil
	case "west", "w":
		return West, nil
	default:
		return AutoDirection, fmt.Errorf("%w: unknown direction %q", ErrValidation, name)
	}
}

func actionVectors() [][2]int {
	out := make([][2]int, 0, 4)
	for _, d := range DoorwayOrder() {
		dx, dy := d.Delta()
		out = append(out, [2]int{dx, dy})
	}
	return out
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case AutoDirection:
		return "Auto"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction. x grows southward, y eastward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// Vector returns Delta as a two-element slice, the wire form of an action.
func (d Direction) Vector() []int {
	dx, dy := d.Delta()
	return []int{dx, dy}
}
