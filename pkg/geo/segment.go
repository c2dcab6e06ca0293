package geo

import "math"

// SegmentKind tags what a wall segment is made of.
type SegmentKind string

// Wall segment kinds.
const (
	KindSolid  SegmentKind = "solid"
	KindDoor   SegmentKind = "door"
	KindWindow SegmentKind = "window"
)

// Segment is a wall segment between two points. Doors carry an Open flag;
// the flag has no effect on the other kinds.
type Segment struct {
	A    Point       `json:"a"`
	B    Point       `json:"b"`
	Kind SegmentKind `json:"kind"`
	Open bool        `json:"open,omitempty"`
}

// BlocksSight reports whether the segment stops line of sight.
// Solid walls always do, doors only while closed, windows never.
// Unknown kinds are treated as solid.
func (s Segment) BlocksSight() bool {
	switch s.Kind {
	case KindSolid:
		return true
	case KindDoor:
		return !s.Open
	case KindWindow:
		return false
	}
	return true
}

// BlocksMovement reports whether the segment stops movement across it.
// Windows block movement even though they pass light; an open door blocks
// neither.
func (s Segment) BlocksMovement() bool {
	switch s.Kind {
	case KindSolid, KindWindow:
		return true
	case KindDoor:
		return !s.Open
	}
	return true
}

// Scale returns the segment with both endpoints scaled by f, converting
// between grid and pixel space.
func (s Segment) Scale(f float64) Segment {
	s.A = s.A.Scale(f)
	s.B = s.B.Scale(f)
	return s
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// parallelEps is the determinant threshold below which two directions are
// treated as parallel.
const parallelEps = 1e-12

// RaySegment intersects the ray origin + t*dir (t >= 0) with the segment.
// It returns the hit point, the ray parameter t, and whether a hit exists.
func RaySegment(origin, dir Point, seg Segment) (Point, float64, bool) {
	d := seg.B.Sub(seg.A)
	denom := dir.Cross(d)
	if math.Abs(denom) < parallelEps {
		return Point{}, 0, false
	}
	ao := seg.A.Sub(origin)
	t := ao.Cross(d) / denom
	u := ao.Cross(dir) / denom
	if t < 0 || u < 0 || u > 1 {
		return Point{}, 0, false
	}
	return origin.Add(dir.Scale(t)), t, true
}

// SegmentsIntersect reports whether segments p1-p2 and q1-q2 intersect,
// endpoints included. Touching a wall tip counts as crossing.
func SegmentsIntersect(p1, p2, q1, q2 Point) bool {
	d1 := orient(q1, q2, p1)
	d2 := orient(q1, q2, p2)
	d3 := orient(p1, p2, q1)
	d4 := orient(p1, p2, q2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	if d1 == 0 && onSegment(q1, q2, p1) {
		return true
	}
	if d2 == 0 && onSegment(q1, q2, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, q1) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, q2) {
		return true
	}
	return false
}

// orient returns the cross product of (b-a) and (c-a). The sign gives the
// side of line a-b that c lies on.
func orient(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// onSegment reports whether c, already known to be collinear with a-b,
// lies within the segment's bounding box.
func onSegment(a, b, c Point) bool {
	return math.Min(a.X, b.X) <= c.X && c.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= c.Y && c.Y <= math.Max(a.Y, b.Y)
}
