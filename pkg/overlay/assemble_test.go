package overlay

import (
	"testing"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
	"github.com/EvilPatrick06/battlemap/pkg/lighting"
	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
)

func testMap() *mapspec.BattleMap {
	return &mapspec.BattleMap{
		Name:    "Overlay Test",
		Grid:    mapspec.GridDef{Width: 10, Height: 10, CellSize: 50},
		Ambient: "darkness",
		Walls: []mapspec.WallDef{
			{X1: 5, Y1: 0, X2: 5, Y2: 10, Kind: "solid"},
		},
		Terrain: []mapspec.TerrainCell{
			{X: 3, Y: 5, Type: "rubble", Cost: 2},
		},
		Tokens: []mapspec.Token{
			{ID: "pc-1", Name: "Aria", X: 2, Y: 5, Type: mapspec.TokenPlayer, Species: "elf", Speed: 30},
			{ID: "mon-1", Name: "Ogre", X: 7, Y: 5, Type: mapspec.TokenMonster},
			{ID: "npc-1", X: 3, Y: 2, Type: mapspec.TokenNPC},
		},
		Lights: []mapspec.Light{
			{X: 2, Y: 2, Bright: 2, Dim: 2},
		},
	}
}

func tokenStatus(t *testing.T, snap *Snapshot, id string) TokenStatus {
	t.Helper()
	for _, ts := range snap.Tokens {
		if ts.ID == id {
			return ts
		}
	}
	t.Fatalf("no token status for %q", id)
	return TokenStatus{}
}

func TestAssembleProducesSnapshot(t *testing.T) {
	snap := Assemble(testMap())
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Metadata.MapName != "Overlay Test" {
		t.Errorf("map name = %q, want Overlay Test", snap.Metadata.MapName)
	}
	if snap.Metadata.Ambient != lighting.Darkness {
		t.Errorf("ambient = %q, want darkness", snap.Metadata.Ambient)
	}
	if snap.Metadata.GeneratedAt == "" {
		t.Error("generated_at is empty")
	}
	if len(snap.Vision.Polygons) != 1 {
		t.Errorf("vision polygons = %d, want 1 (one player)", len(snap.Vision.Polygons))
	}
	if len(snap.Lighting) != 1 {
		t.Errorf("lit areas = %d, want 1", len(snap.Lighting))
	}
}

func TestAssembleFogStopsAtWall(t *testing.T) {
	snap := Assemble(testMap())
	if len(snap.Vision.VisibleCells) != 50 {
		t.Errorf("visible cells = %d, want 50 (full left half)", len(snap.Vision.VisibleCells))
	}
	for _, c := range snap.Vision.VisibleCells {
		if c.X >= 5 {
			t.Errorf("cell (%d,%d) is visible beyond the wall", c.X, c.Y)
			break
		}
	}
}

func TestAssembleTokenVisibility(t *testing.T) {
	snap := Assemble(testMap())
	if len(snap.Tokens) != 3 {
		t.Fatalf("token statuses = %d, want 3", len(snap.Tokens))
	}
	if !tokenStatus(t, snap, "pc-1").VisibleToParty {
		t.Error("pc-1 should see itself")
	}
	if !tokenStatus(t, snap, "npc-1").VisibleToParty {
		t.Error("npc-1 stands on the lit side of the wall and should be visible")
	}
	if tokenStatus(t, snap, "mon-1").VisibleToParty {
		t.Error("mon-1 hides behind the wall and should not be visible")
	}
}

func TestAssembleTokenDarkvision(t *testing.T) {
	snap := Assemble(testMap())
	if !tokenStatus(t, snap, "pc-1").Darkvision {
		t.Error("the elf should have darkvision")
	}
	if tokenStatus(t, snap, "npc-1").Darkvision {
		t.Error("a token without a species should not have darkvision")
	}
}

func TestAssembleTokenLightLevels(t *testing.T) {
	snap := Assemble(testMap())

	// npc-1's center is inside the torch's bright radius.
	if got := tokenStatus(t, snap, "npc-1").Light; got != lighting.Bright {
		t.Errorf("npc-1 light = %q, want bright", got)
	}
	// pc-1 is within dim range, but dim light cannot lift darkness.
	if got := tokenStatus(t, snap, "pc-1").Light; got != lighting.Darkness {
		t.Errorf("pc-1 light = %q, want darkness", got)
	}
}

func TestAssembleMovementForPlayersOnly(t *testing.T) {
	snap := Assemble(testMap())
	if len(snap.Movement) != 1 {
		t.Fatalf("movement ranges = %d, want 1 (one player)", len(snap.Movement))
	}
	mr := snap.Movement[0]
	if mr.TokenID != "pc-1" {
		t.Errorf("movement token = %q, want pc-1", mr.TokenID)
	}
	if mr.Budget != 30 {
		t.Errorf("budget = %v, want 30", mr.Budget)
	}

	foundOrigin := false
	for _, rc := range mr.Cells {
		if rc.Cell.X >= 5 {
			t.Errorf("cell (%d,%d) is reachable through the wall", rc.Cell.X, rc.Cell.Y)
		}
		if rc.Cost > mr.Budget {
			t.Errorf("cell (%d,%d) costs %v, past the budget", rc.Cell.X, rc.Cell.Y, rc.Cost)
		}
		if rc.Cell == (geo.Cell{X: 2, Y: 5}) && rc.Cost == 0 {
			foundOrigin = true
		}
	}
	if !foundOrigin {
		t.Error("movement range should include the token's own cell at cost 0")
	}
}

func TestAssembleMovementChargesTerrain(t *testing.T) {
	snap := Assemble(testMap())
	for _, rc := range snap.Movement[0].Cells {
		if rc.Cell == (geo.Cell{X: 3, Y: 5}) {
			if rc.Cost != 10 {
				t.Errorf("rubble cell cost = %v, want 10", rc.Cost)
			}
			return
		}
	}
	t.Error("rubble cell next to the token should be reachable")
}

func TestAssembleEmptyMap(t *testing.T) {
	m := &mapspec.BattleMap{
		Name: "Bare",
		Grid: mapspec.GridDef{Width: 5, Height: 5, CellSize: 50},
	}
	snap := Assemble(m)
	if len(snap.Vision.Polygons) != 0 || len(snap.Vision.VisibleCells) != 0 {
		t.Error("map without players should have empty vision")
	}
	if len(snap.Tokens) != 0 || len(snap.Movement) != 0 {
		t.Error("map without tokens should have no statuses or movement")
	}
}
