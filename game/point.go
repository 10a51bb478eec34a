package game

import "fmt"

// Point is a 1-based (column, row) coordinate on the map.
type Point struct {
	X int
	Y int
}

// Compare orders points in reading order: top-to-bottom, then left-to-right.
// It returns -1, 0 or +1.
func (p Point) Compare(o Point) int {
	switch {
	case p.Y < o.Y:
		return -1
	case p.Y > o.Y:
		return 1
	case p.X < o.X:
		return -1
	case p.X > o.X:
		return 1
	}
	return 0
}

func (p Point) Less(o Point) bool {
	return p.Compare(o) < 0
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Offsets of the orthogonal neighbours in reading order.
var offsets = [...]Point{
	{X: 0, Y: -1}, // up
	{X: -1, Y: 0}, // left
	{X: 1, Y: 0},  // right
	{X: 0, Y: 1},  // down
}
