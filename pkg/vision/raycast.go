package vision

import (
	"math"
	"sort"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
)

// Tolerances of the ray caster.
const (
	// mergeTol is the coordinate distance below which two segment
	// endpoints, or two adjacent polygon vertices, count as the same point.
	mergeTol = 1e-4
	// peekAngle is the angular offset of the two extra rays cast around
	// each endpoint ray. A ray aimed exactly at a corner is ambiguous about
	// which side of the corner it grazes; the offset rays resolve both
	// sides. Rounding near tangency favors visibility.
	peekAngle = 1e-3
)

// Visibility is the region visible from Origin: a polygon whose vertices
// are in angular order around the origin. It is empty on total occlusion.
type Visibility struct {
	Origin  geo.Point   `json:"origin"`
	Polygon geo.Polygon `json:"polygon"`
}

// ComputeVisibility casts rays from origin against every sight-blocking
// wall and returns the visibility polygon. Windows and open doors never
// occlude and are dropped up front. With nothing blocking, the polygon is
// the four bounds corners.
func ComputeVisibility(origin geo.Point, walls []geo.Segment, bounds geo.Rect) Visibility {
	blocking := make([]geo.Segment, 0, len(walls)+4)
	for _, w := range walls {
		if w.BlocksSight() {
			blocking = append(blocking, w)
		}
	}
	if len(blocking) == 0 {
		return Visibility{Origin: origin, Polygon: geo.Polygon{Vertices: bounds.Corners()}}
	}

	// The boundary participates so every ray terminates somewhere.
	blocking = append(blocking, bounds.Edges()...)

	type hit struct {
		angle float64
		pt    geo.Point
	}
	endpoints := uniqueEndpoints(blocking)
	hits := make([]hit, 0, len(endpoints)*3)
	for _, ep := range endpoints {
		base := origin.AngleTo(ep)
		for _, angle := range [3]float64{base - peekAngle, base, base + peekAngle} {
			dir := geo.Pt(math.Cos(angle), math.Sin(angle))
			if pt, ok := nearestHit(origin, dir, blocking); ok {
				hits = append(hits, hit{angle: angle, pt: pt})
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].angle < hits[j].angle })

	verts := make([]geo.Point, 0, len(hits))
	for _, h := range hits {
		if len(verts) > 0 && verts[len(verts)-1].Distance(h.pt) < mergeTol {
			continue
		}
		verts = append(verts, h.pt)
	}
	return Visibility{Origin: origin, Polygon: geo.Polygon{Vertices: verts}}
}

// IsPointVisible reports whether the point lies inside the visibility
// polygon.
func IsPointVisible(v Visibility, pt geo.Point) bool {
	return v.Polygon.Contains(pt)
}

// nearestHit returns the closest intersection of the ray with any of the
// segments.
func nearestHit(origin, dir geo.Point, segs []geo.Segment) (geo.Point, bool) {
	var best geo.Point
	bestT := math.Inf(1)
	found := false
	for _, s := range segs {
		if pt, t, ok := geo.RaySegment(origin, dir, s); ok && t < bestT {
			best, bestT = pt, t
			found = true
		}
	}
	return best, found
}

// uniqueEndpoints returns the segment endpoints deduplicated by
// coordinate, quantized to the merge tolerance.
func uniqueEndpoints(segs []geo.Segment) []geo.Point {
	seen := make(map[[2]int64]struct{}, len(segs)*2)
	pts := make([]geo.Point, 0, len(segs)*2)
	add := func(p geo.Point) {
		key := [2]int64{
			int64(math.Round(p.X / mergeTol)),
			int64(math.Round(p.Y / mergeTol)),
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		pts = append(pts, p)
	}
	for _, s := range segs {
		add(s.A)
		add(s.B)
	}
	return pts
}
