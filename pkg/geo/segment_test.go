package geo

import "testing"

// --- Blocking predicate tests ---

func TestSegmentBlocking(t *testing.T) {
	cases := []struct {
		name     string
		seg      Segment
		sight    bool
		movement bool
	}{
		{"solid", Segment{Kind: KindSolid}, true, true},
		{"closed door", Segment{Kind: KindDoor}, true, true},
		{"open door", Segment{Kind: KindDoor, Open: true}, false, false},
		{"window", Segment{Kind: KindWindow}, false, true},
		{"open window", Segment{Kind: KindWindow, Open: true}, false, true},
		{"open solid", Segment{Kind: KindSolid, Open: true}, true, true},
	}
	for _, c := range cases {
		if got := c.seg.BlocksSight(); got != c.sight {
			t.Errorf("%s: BlocksSight = %v, want %v", c.name, got, c.sight)
		}
		if got := c.seg.BlocksMovement(); got != c.movement {
			t.Errorf("%s: BlocksMovement = %v, want %v", c.name, got, c.movement)
		}
	}
}

func TestSegmentScale(t *testing.T) {
	s := Segment{A: Pt(1, 2), B: Pt(3, 4), Kind: KindDoor, Open: true}
	scaled := s.Scale(50)
	if !approxEqual(scaled.A.X, 50, tolerance) || !approxEqual(scaled.B.Y, 200, tolerance) {
		t.Errorf("unexpected scaled endpoints: %v %v", scaled.A, scaled.B)
	}
	if scaled.Kind != KindDoor || !scaled.Open {
		t.Error("scaling should preserve kind and open state")
	}
}

// --- Ray intersection tests ---

func TestRaySegmentHit(t *testing.T) {
	seg := Segment{A: Pt(5, -5), B: Pt(5, 5)}
	pt, dist, ok := RaySegment(Pt(0, 0), Pt(1, 0), seg)
	if !ok {
		t.Fatal("expected hit")
	}
	if !approxEqual(pt.X, 5, tolerance) || !approxEqual(pt.Y, 0, tolerance) {
		t.Errorf("expected hit at (5,0), got (%f,%f)", pt.X, pt.Y)
	}
	if !approxEqual(dist, 5, tolerance) {
		t.Errorf("expected ray parameter 5, got %f", dist)
	}
}

func TestRaySegmentBehindOrigin(t *testing.T) {
	seg := Segment{A: Pt(-5, -5), B: Pt(-5, 5)}
	if _, _, ok := RaySegment(Pt(0, 0), Pt(1, 0), seg); ok {
		t.Error("segment behind the ray origin should not hit")
	}
}

func TestRaySegmentMiss(t *testing.T) {
	seg := Segment{A: Pt(5, 2), B: Pt(5, 8)}
	if _, _, ok := RaySegment(Pt(0, 0), Pt(1, 0), seg); ok {
		t.Error("ray passing outside the segment span should not hit")
	}
}

func TestRaySegmentParallel(t *testing.T) {
	seg := Segment{A: Pt(0, 5), B: Pt(10, 5)}
	if _, _, ok := RaySegment(Pt(0, 0), Pt(1, 0), seg); ok {
		t.Error("parallel ray should not hit")
	}
}

func TestRaySegmentNonUnitDir(t *testing.T) {
	// The ray parameter is in units of the direction vector length.
	seg := Segment{A: Pt(6, -1), B: Pt(6, 1)}
	_, param, ok := RaySegment(Pt(0, 0), Pt(2, 0), seg)
	if !ok {
		t.Fatal("expected hit")
	}
	if !approxEqual(param, 3, tolerance) {
		t.Errorf("expected parameter 3 for dir of length 2, got %f", param)
	}
}

// --- Segment intersection tests ---

func TestSegmentsIntersectCrossing(t *testing.T) {
	if !SegmentsIntersect(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0)) {
		t.Error("expected crossing segments to intersect")
	}
}

func TestSegmentsIntersectDisjoint(t *testing.T) {
	if SegmentsIntersect(Pt(0, 0), Pt(1, 1), Pt(5, 5), Pt(6, 5)) {
		t.Error("expected disjoint segments not to intersect")
	}
}

func TestSegmentsIntersectTouchingEndpoint(t *testing.T) {
	// Endpoint of one segment lies on the other: counts as intersecting.
	if !SegmentsIntersect(Pt(0, 0), Pt(10, 0), Pt(5, 0), Pt(5, 5)) {
		t.Error("expected touching segments to intersect")
	}
}

func TestSegmentsIntersectCollinearOverlap(t *testing.T) {
	if !SegmentsIntersect(Pt(0, 0), Pt(10, 0), Pt(5, 0), Pt(15, 0)) {
		t.Error("expected overlapping collinear segments to intersect")
	}
	if SegmentsIntersect(Pt(0, 0), Pt(4, 0), Pt(5, 0), Pt(15, 0)) {
		t.Error("expected separated collinear segments not to intersect")
	}
}

// --- Radius clipping tests ---

func TestClipToRadiusInsideUnchanged(t *testing.T) {
	poly := NewPolygon(Pt(1, 0), Pt(0, 1), Pt(-1, 0), Pt(0, -1))
	clipped := ClipToRadius(poly, Origin, 10)
	if clipped.Len() != 4 {
		t.Fatalf("expected 4 vertices, got %d", clipped.Len())
	}
	for i, v := range clipped.Vertices {
		if !approxEqual(v.X, poly.Vertices[i].X, tolerance) ||
			!approxEqual(v.Y, poly.Vertices[i].Y, tolerance) {
			t.Errorf("vertex %d moved: %v -> %v", i, poly.Vertices[i], v)
		}
	}
}

func TestClipToRadiusProjectsOutside(t *testing.T) {
	poly := NewPolygon(Pt(100, 0), Pt(0, 100), Pt(-100, 0), Pt(0, -100))
	clipped := ClipToRadius(poly, Origin, 10)
	for i, v := range clipped.Vertices {
		if !approxEqual(v.Distance(Origin), 10, tolerance) {
			t.Errorf("vertex %d at distance %f, expected on circle of radius 10",
				i, v.Distance(Origin))
		}
	}
	// Angular order must be preserved.
	if !approxEqual(clipped.Vertices[0].X, 10, tolerance) {
		t.Errorf("first vertex should project to (10,0), got %v", clipped.Vertices[0])
	}
}

func TestClipToRadiusZeroRadius(t *testing.T) {
	poly := NewPolygon(Pt(1, 0), Pt(0, 1), Pt(-1, 0))
	if !ClipToRadius(poly, Origin, 0).IsEmpty() {
		t.Error("zero radius should yield an empty polygon")
	}
	if !ClipToRadius(poly, Origin, -5).IsEmpty() {
		t.Error("negative radius should yield an empty polygon")
	}
}

// --- Rect tests ---

func TestRectCorners(t *testing.T) {
	r := Rect{Width: 100, Height: 50}
	c := r.Corners()
	want := []Point{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	if len(c) != 4 {
		t.Fatalf("expected 4 corners, got %d", len(c))
	}
	for i := range want {
		if !approxEqual(c[i].X, want[i].X, tolerance) || !approxEqual(c[i].Y, want[i].Y, tolerance) {
			t.Errorf("corner %d = %v, want %v", i, c[i], want[i])
		}
	}
}

func TestRectEdgesBlockSight(t *testing.T) {
	r := Rect{Width: 100, Height: 50}
	edges := r.Edges()
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(edges))
	}
	total := 0.0
	for _, e := range edges {
		if !e.BlocksSight() {
			t.Error("boundary edge must block sight")
		}
		total += e.Length()
	}
	if !approxEqual(total, 300, tolerance) {
		t.Errorf("expected total edge length 300, got %f", total)
	}
}

func TestRectContainsPoint(t *testing.T) {
	r := Rect{Width: 100, Height: 50}
	if !r.ContainsPoint(Pt(50, 25)) {
		t.Error("expected interior point inside")
	}
	if !r.ContainsPoint(Pt(0, 0)) || !r.ContainsPoint(Pt(100, 50)) {
		t.Error("boundary should count as inside")
	}
	if r.ContainsPoint(Pt(101, 25)) || r.ContainsPoint(Pt(50, -1)) {
		t.Error("expected exterior points outside")
	}
}

func TestRectDiagonal(t *testing.T) {
	r := Rect{Width: 30, Height: 40}
	d := r.Corners()[0].Distance(r.Corners()[2])
	if !approxEqual(d, 50, tolerance) {
		t.Errorf("expected diagonal 50, got %f", d)
	}
}
