package lighting

import (
	"github.com/EvilPatrick06/battlemap/pkg/geo"
	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
	"github.com/EvilPatrick06/battlemap/pkg/vision"
)

// Level classifies illumination at a point.
type Level string

// Light levels, brightest first.
const (
	Bright   Level = "bright"
	Dim      Level = "dim"
	Darkness Level = "darkness"
)

// ParseLevel maps a document string to a Level. Empty and unknown strings
// read as bright; schema validation flags unknown values.
func ParseLevel(s string) Level {
	switch s {
	case "bright":
		return Bright
	case "dim":
		return Dim
	case "darkness", "dark":
		return Darkness
	}
	return Bright
}

// LitArea is the illuminated region of one light source: the visibility
// polygon from the source clipped to the bright radius, and again to the
// combined bright+dim radius. Dim always encloses Bright.
type LitArea struct {
	Source mapspec.Light `json:"source"`
	Bright geo.Polygon   `json:"bright"`
	Dim    geo.Polygon   `json:"dim"`
}

// ComputeLitAreas computes the lit area of every source, in input order.
// Walls shape the polygons through occlusion; the radii cap their reach.
// A zero radius yields an empty polygon for that tier.
func ComputeLitAreas(lights []mapspec.Light, walls []geo.Segment, bounds geo.Rect, cellSize float64) []LitArea {
	areas := make([]LitArea, len(lights))
	for i, l := range lights {
		pos := l.Position(cellSize)
		vis := vision.ComputeVisibility(pos, walls, bounds)
		areas[i] = LitArea{
			Source: l,
			Bright: geo.ClipToRadius(vis.Polygon, pos, l.Bright*cellSize),
			Dim:    geo.ClipToRadius(vis.Polygon, pos, (l.Bright+l.Dim)*cellSize),
		}
	}
	return areas
}

// LevelAt classifies illumination at a pixel-space point against an
// ambient baseline. Distance to each source is straight-line; the lit
// polygons, not this check, carry wall occlusion. Ambient bright is never
// downgraded, and in ambient darkness the dim ring adds nothing: only a
// bright radius lifts the level there.
func LevelAt(pt geo.Point, lights []mapspec.Light, cellSize float64, ambient Level) Level {
	for _, l := range lights {
		if pt.Distance(l.Position(cellSize)) <= l.Bright*cellSize {
			return Bright
		}
	}
	if ambient == Bright {
		return Bright
	}
	if ambient != Darkness {
		for _, l := range lights {
			if pt.Distance(l.Position(cellSize)) <= (l.Bright+l.Dim)*cellSize {
				return Dim
			}
		}
	}
	return ambient
}
