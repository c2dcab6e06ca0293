package overlay

import (
	"github.com/EvilPatrick06/battlemap/pkg/geo"
	"github.com/EvilPatrick06/battlemap/pkg/lighting"
	"github.com/EvilPatrick06/battlemap/pkg/pathfind"
	"github.com/EvilPatrick06/battlemap/pkg/vision"
)

// Snapshot is the complete computed overlay for one map state: party
// vision, lit areas, per-token status, and player movement ranges. It is
// what a table renderer consumes.
type Snapshot struct {
	Metadata Metadata           `json:"metadata"`
	Vision   VisionOut          `json:"vision"`
	Lighting []lighting.LitArea `json:"lighting"`
	Tokens   []TokenStatus      `json:"tokens"`
	Movement []MovementRange    `json:"movement"`
}

// Metadata holds map-level summary data.
type Metadata struct {
	MapName     string         `json:"map_name"`
	GridWidth   int            `json:"grid_width"`
	GridHeight  int            `json:"grid_height"`
	CellSize    float64        `json:"cell_size"`
	Ambient     lighting.Level `json:"ambient"`
	GeneratedAt string         `json:"generated_at"`
}

// VisionOut is the party's aggregated sight: one polygon per player plus
// the union of visible cells for fog of war.
type VisionOut struct {
	Polygons     []vision.Visibility `json:"polygons"`
	VisibleCells []geo.Cell          `json:"visible_cells"`
}

// TokenStatus is the per-token overlay state. Darkvision tells the
// renderer how this creature reads dim and dark cells; it never changes
// the computed geometry.
type TokenStatus struct {
	ID             string         `json:"id"`
	Name           string         `json:"name,omitempty"`
	Type           string         `json:"type"`
	Cells          []geo.Cell     `json:"cells"`
	Center         geo.Point      `json:"center"`
	VisibleToParty bool           `json:"visible_to_party"`
	Light          lighting.Level `json:"light"`
	Darkvision     bool           `json:"darkvision"`
}

// MovementRange is where one player token can move on its speed.
type MovementRange struct {
	TokenID string                   `json:"token_id"`
	Budget  float64                  `json:"budget"`
	Cells   []pathfind.ReachableCell `json:"cells"`
}
