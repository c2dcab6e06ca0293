package overlay

import (
	"fmt"
	"testing"

	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
	"github.com/EvilPatrick06/battlemap/pkg/validation"
)

// mapForSize builds a square dungeon scaled to the given grid width:
// vertical walls every 8 columns with a central door, a torch in each
// corridor, rubble near the doors, and a four-player party.
func mapForSize(n int) *mapspec.BattleMap {
	m := &mapspec.BattleMap{
		Name:    fmt.Sprintf("bench-%d", n),
		Grid:    mapspec.GridDef{Width: n, Height: n, CellSize: 50},
		Ambient: "darkness",
	}
	mid := float64(n / 2)

	for x := 8; x < n; x += 8 {
		fx := float64(x)
		m.Walls = append(m.Walls,
			mapspec.WallDef{X1: fx, Y1: 0, X2: fx, Y2: mid - 1, Kind: "solid"},
			mapspec.WallDef{X1: fx, Y1: mid - 1, X2: fx, Y2: mid + 1, Kind: "door", Open: x%16 == 0},
			mapspec.WallDef{X1: fx, Y1: mid + 1, X2: fx, Y2: float64(n), Kind: "solid"},
		)
	}
	for x := 4; x < n; x += 8 {
		m.Lights = append(m.Lights, mapspec.Light{X: float64(x), Y: mid, Bright: 3, Dim: 3})
	}
	for x := 2; x < n; x += 8 {
		m.Terrain = append(m.Terrain, mapspec.TerrainCell{X: x, Y: n/2 + 1, Type: "rubble", Cost: 2})
	}
	for i := 0; i < 4; i++ {
		m.Tokens = append(m.Tokens, mapspec.Token{
			ID:    fmt.Sprintf("pc-%d", i+1),
			X:     1 + i,
			Y:     n / 2,
			Type:  mapspec.TokenPlayer,
			Speed: 30,
		})
	}
	return m
}

func runFullPipeline(t testing.TB, n int) *Snapshot {
	t.Helper()
	m := mapForSize(n)

	schema := validation.ValidateSchema(m)
	if !schema.Valid {
		t.Fatalf("schema validation failed for %dx%d map: %s", n, n, schema.Summary)
	}

	snap := Assemble(m)

	spatial := ValidateSnapshot(m, snap)
	if !spatial.Valid {
		t.Fatalf("snapshot validation failed for %dx%d map: %s", n, n, spatial.Summary)
	}
	return snap
}

func TestLargeMap100(t *testing.T) {
	snap := runFullPipeline(t, 100)
	if len(snap.Vision.VisibleCells) == 0 {
		t.Fatal("expected visible cells on a 100x100 map")
	}
	t.Logf("100x100 map: %d visible cells, %d lit areas, %d movement ranges",
		len(snap.Vision.VisibleCells), len(snap.Lighting), len(snap.Movement))

	for _, mr := range snap.Movement {
		t.Logf("  %s: %d reachable cells", mr.TokenID, len(mr.Cells))
	}
}

func BenchmarkAssemble20(b *testing.B) {
	for b.Loop() {
		runFullPipeline(b, 20)
	}
}

func BenchmarkAssemble50(b *testing.B) {
	for b.Loop() {
		runFullPipeline(b, 50)
	}
}

func BenchmarkAssemble100(b *testing.B) {
	for b.Loop() {
		runFullPipeline(b, 100)
	}
}
