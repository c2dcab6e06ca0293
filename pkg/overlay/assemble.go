package overlay

import (
	"time"

	"github.com/EvilPatrick06/battlemap/pkg/lighting"
	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
	"github.com/EvilPatrick06/battlemap/pkg/pathfind"
	"github.com/EvilPatrick06/battlemap/pkg/vision"
)

// Assemble computes the full overlay for the current map state. Nothing
// is cached; every call recomputes vision, lighting, and movement from
// the document, so a door toggle or token move only needs a reassemble.
func Assemble(m *mapspec.BattleMap) *Snapshot {
	pv := vision.ComputePartyVision(m, m.Viewers())
	lit := lighting.ComputeLitAreas(m.Lights, m.PixelSegments(), m.Bounds(), m.Grid.CellSize)
	ambient := lighting.ParseLevel(m.Ambient)

	return &Snapshot{
		Metadata: Metadata{
			MapName:     m.Name,
			GridWidth:   m.Grid.Width,
			GridHeight:  m.Grid.Height,
			CellSize:    m.Grid.CellSize,
			Ambient:     ambient,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Vision: VisionOut{
			Polygons:     pv.Polygons,
			VisibleCells: pv.Cells,
		},
		Lighting: lit,
		Tokens:   assembleTokens(m, pv, ambient),
		Movement: assembleMovement(m),
	}
}

func assembleTokens(m *mapspec.BattleMap, pv vision.PartyVision, ambient lighting.Level) []TokenStatus {
	out := make([]TokenStatus, 0, len(m.Tokens))
	for _, tok := range m.Tokens {
		center := tok.CenterPx(m.Grid.CellSize)
		out = append(out, TokenStatus{
			ID:             tok.ID,
			Name:           tok.Name,
			Type:           tok.Type,
			Cells:          tok.Footprint(),
			Center:         center,
			VisibleToParty: vision.TokenInVisionSet(pv.Set, tok),
			Light:          lighting.LevelAt(center, m.Lights, m.Grid.CellSize, ambient),
			Darkvision:     vision.HasDarkvision(tok.Species),
		})
	}
	return out
}

func assembleMovement(m *mapspec.BattleMap) []MovementRange {
	walls := m.Segments()
	terrain := pathfind.Costs(m.TerrainCosts())

	players := m.Viewers()
	out := make([]MovementRange, 0, len(players))
	for _, tok := range players {
		budget := tok.MovementBudget()
		out = append(out, MovementRange{
			TokenID: tok.ID,
			Budget:  budget,
			Cells:   pathfind.ReachableCells(tok.Anchor(), budget, m.Grid.Width, m.Grid.Height, walls, terrain),
		})
	}
	return out
}
