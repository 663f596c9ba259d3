// Package world provides the coordinate space and topology store of a grid world:
// packed cell coordinates, cardinal directions and an undirected adjacency graph
// with degree, connectivity and bridge queries.
package world

import (
	"fmt"
)

// Packing layout of a Key: 20 bits of area, then 22 bits each of biased x and y.
const (
	areaBits  = 20
	axisBits  = 22
	axisBias  = 1 << (axisBits - 1)
	axisMask  = 1<<axisBits - 1
	areaShift = 2 * axisBits

	// MaxArea is the largest encodable area id.
	MaxArea = 1<<areaBits - 1
	// MinAxis and MaxAxis bound x and y, including virtual coordinates.
	MinAxis = -axisBias
	MaxAxis = axisBias - 1
)

// Coord addresses one cell as (area, x, y). Virtual coordinates (one step
// outside an area's lattice) may carry x or y of -1.
type Coord struct {
	Area int
	X    int
	Y    int
}

// Key is a Coord packed into one integer. Keys order by area, then x, then y.
type Key uint64

// Origin is the fixed first cell of area 0.
var Origin = Coord{}

// C is shorthand for Coord{area, x, y}.
func C(area, x, y int) Coord {
	return Coord{Area: area, X: x, Y: y}
}

// ParseCoord builds a Coord from exactly three integers.
func ParseCoord(v []int) (Coord, error) {
	if len(v) != 3 {
		return Coord{}, fmt.Errorf("%w: coordinate of length 3 expected, got %d", ErrValidation, len(v))
	}
	c := C(v[0], v[1], v[2])
	if err := c.Validate(); err != nil {
		return Coord{}, err
	}
	return c, nil
}

// Validate checks that c fits the Key encoding.
func (c Coord) Validate() error {
	if c.Area < 0 || c.Area > MaxArea {
		return fmt.Errorf("%w: area %d out of range [0, %d]", ErrValidation, c.Area, MaxArea)
	}
	if c.X < MinAxis || c.X > MaxAxis || c.Y < MinAxis || c.Y > MaxAxis {
		return fmt.Errorf("%w: coordinate %v out of encodable range", ErrValidation, c)
	}
	return nil
}

// Key packs c. The result is only meaningful for a c that passes Validate.
func (c Coord) Key() Key {
	return Key(uint64(c.Area)<<areaShift |
		uint64(c.X+axisBias)&axisMask<<axisBits |
		uint64(c.Y+axisBias)&axisMask)
}

// Coord unpacks k.
func (k Key) Coord() Coord {
	return Coord{
		Area: int(k >> areaShift),
		X:    int(k>>axisBits&axisMask) - axisBias,
		Y:    int(k&axisMask) - axisBias,
	}
}

// Area returns the area id of k without a full unpack.
func (k Key) Area() int {
	return int(k >> areaShift)
}

// Add returns the coordinate one step from c in direction d, inside the same area.
func (c Coord) Add(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{Area: c.Area, X: c.X + dx, Y: c.Y + dy}
}

// InArea returns c relabelled into area.
func (c Coord) InArea(area int) Coord {
	return Coord{Area: area, X: c.X, Y: c.Y}
}

// Less orders coordinates by area, x, y.
func (c Coord) Less(o Coord) bool {
	if c.Area != o.Area {
		return c.Area < o.Area
	}
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// Ints returns c as an (area, x, y) slice.
func (c Coord) Ints() []int {
	return []int{c.Area, c.X, c.Y}
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.Area, c.X, c.Y)
}

// Shape is the (rows, cols) extent of an area. Rows index x, cols index y.
type Shape struct {
	Rows int
	Cols int
}

// ParseShape builds a Shape from exactly two integers.
func ParseShape(v []int) (Shape, error) {
	if len(v) != 2 {
		return Shape{}, fmt.Errorf("%w: shape of length 2 expected, got %d", ErrValidation, len(v))
	}
	s := Shape{Rows: v[0], Cols: v[1]}
	if err := s.Validate(); err != nil {
		return Shape{}, err
	}
	return s, nil
}

// Validate checks that both dimensions are positive and encodable.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: shape %v must be positive", ErrValidation, s)
	}
	if s.Rows > MaxAxis || s.Cols > MaxAxis {
		return fmt.Errorf("%w: shape %v too large", ErrValidation, s)
	}
	return nil
}

// Contains reports whether (x, y) lies inside the shape.
func (s Shape) Contains(x, y int) bool {
	return x >= 0 && x < s.Rows && y >= 0 && y < s.Cols
}

// Size is the number of cells.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}
