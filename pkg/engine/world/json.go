package world

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes c as [area, x, y].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Ints())
}

// UnmarshalJSON decodes [area, x, y].
func (c *Coord) UnmarshalJSON(b []byte) error {
	var v []int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseCoord(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalJSON encodes d as its [dx, dy] action vector.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Vector())
}

// UnmarshalJSON decodes a [dx, dy] action vector. Only cardinal unit vectors are accepted.
func (d *Direction) UnmarshalJSON(b []byte) error {
	var v []int
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseAction(v)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseAction maps an action vector of length 2 to its Direction.
func ParseAction(v []int) (Direction, error) {
	if len(v) != 2 {
		return AutoDirection, fmt.Errorf("%w: action of length 2 expected, got %d", ErrValidation, len(v))
	}
	return ParseDirection(v[0], v[1])
}
