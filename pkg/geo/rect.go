package geo

// Rect is an axis-aligned rectangle anchored at the origin, typically the
// pixel bounds of the whole map.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Corners returns the four corners in clockwise screen order starting at
// the origin.
func (r Rect) Corners() []Point {
	return []Point{
		{0, 0},
		{r.Width, 0},
		{r.Width, r.Height},
		{0, r.Height},
	}
}

// Edges returns the four boundary segments as solid walls, so rays always
// have something to terminate on.
func (r Rect) Edges() []Segment {
	c := r.Corners()
	return []Segment{
		{A: c[0], B: c[1], Kind: KindSolid},
		{A: c[1], B: c[2], Kind: KindSolid},
		{A: c[2], B: c[3], Kind: KindSolid},
		{A: c[3], B: c[0], Kind: KindSolid},
	}
}

// ContainsPoint reports whether the point lies inside the rectangle,
// boundary included.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= 0 && p.X <= r.Width && p.Y >= 0 && p.Y <= r.Height
}
