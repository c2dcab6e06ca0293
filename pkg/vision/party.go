package vision

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
)

// PartyVision is the union of what every viewer sees: one polygon per
// viewer, plus the grid cells whose center falls inside at least one of
// them. Cells is in row-major order; Set answers membership in O(1).
type PartyVision struct {
	Polygons []Visibility
	Cells    []geo.Cell
	Set      mapset.Set[geo.Cell]
}

// ComputePartyVision computes one visibility polygon per viewer token,
// anchored at the token's footprint center, and derives the party's
// visible-cell set. One viewer seeing a cell reveals it for the whole
// party. No viewers yields empty results.
func ComputePartyVision(m *mapspec.BattleMap, viewers []mapspec.Token) PartyVision {
	pv := PartyVision{Set: mapset.New[geo.Cell]()}
	if len(viewers) == 0 {
		return pv
	}

	walls := m.PixelSegments()
	bounds := m.Bounds()
	for _, tok := range viewers {
		origin := tok.CenterPx(m.Grid.CellSize)
		pv.Polygons = append(pv.Polygons, ComputeVisibility(origin, walls, bounds))
	}

	// Each cell is sampled once, at its center. Partial overlap near
	// polygon edges does not count.
	for y := 0; y < m.Grid.Height; y++ {
		for x := 0; x < m.Grid.Width; x++ {
			cell := geo.Cell{X: x, Y: y}
			center := cell.Center(m.Grid.CellSize)
			for _, v := range pv.Polygons {
				if v.Polygon.Contains(center) {
					pv.Cells = append(pv.Cells, cell)
					break
				}
			}
		}
	}
	pv.Set = BuildVisionSet(pv.Cells)
	return pv
}

// BuildVisionSet indexes visible cells for O(1) membership tests.
func BuildVisionSet(cells []geo.Cell) mapset.Set[geo.Cell] {
	set := mapset.New[geo.Cell]()
	for _, c := range cells {
		set.Put(c)
	}
	return set
}

// IsTokenVisibleToParty tests the token's footprint center against the
// party polygons.
func IsTokenVisibleToParty(pv PartyVision, tok mapspec.Token, cellSize float64) bool {
	center := tok.CenterPx(cellSize)
	for _, v := range pv.Polygons {
		if v.Polygon.Contains(center) {
			return true
		}
	}
	return false
}

// TokenInVisionSet reports whether any cell of the token's footprint is in
// the visible set. This is looser than the center test on purpose: a large
// creature stays visible while any part of its body is, even when its
// center cell is occluded.
func TokenInVisionSet(set mapset.Set[geo.Cell], tok mapspec.Token) bool {
	for _, c := range tok.Footprint() {
		if set.Has(c) {
			return true
		}
	}
	return false
}
