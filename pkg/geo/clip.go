package geo

// ClipToRadius clips a polygon around center to the given radius. Vertices
// farther out are pulled radially onto the circle, which preserves angular
// order and vertex count. A radius of zero or less yields an empty polygon.
func ClipToRadius(poly Polygon, center Point, radius float64) Polygon {
	if radius <= 0 || poly.IsEmpty() {
		return Polygon{}
	}
	out := make([]Point, len(poly.Vertices))
	for i, v := range poly.Vertices {
		d := v.Sub(center)
		if d.Length() > radius {
			v = center.Add(d.Normalize().Scale(radius))
		}
		out[i] = v
	}
	return Polygon{Vertices: out}
}
