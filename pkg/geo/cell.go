package geo

// Cell is an integer grid coordinate. X grows rightward, Y downward.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Center returns the pixel-space center of the cell for the given cell size.
func (c Cell) Center(cellSize float64) Point {
	return Point{
		X: (float64(c.X) + 0.5) * cellSize,
		Y: (float64(c.Y) + 0.5) * cellSize,
	}
}

// InBounds reports whether the cell lies on a width x height grid.
func (c Cell) InBounds(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// Chebyshev returns the Chebyshev distance to o: the number of moves a
// chess king needs between the two cells.
func (c Cell) Chebyshev(o Cell) int {
	dx := absInt(c.X - o.X)
	dy := absInt(c.Y - o.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
