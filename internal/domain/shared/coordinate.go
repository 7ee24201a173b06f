package shared

import "fmt"

// Coordinate is a 1-based cell on a bounded grid (continents and settlement plots)
type Coordinate struct {
	X int
	Y int
}

// NewCoordinate creates a Coordinate value object
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// Within reports whether the coordinate lies on a width×height grid
func (c Coordinate) Within(width, height int) bool {
	return c.X >= 1 && c.X <= width && c.Y >= 1 && c.Y <= height
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
