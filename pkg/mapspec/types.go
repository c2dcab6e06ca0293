package mapspec

import "github.com/EvilPatrick06/battlemap/pkg/geo"

// BattleMap is the top-level map document: the grid, the wall geometry,
// terrain overrides, tokens, and light sources. It is the only long-lived
// owner of state; every computation takes a snapshot of its fields and
// returns fresh values.
type BattleMap struct {
	Name    string        `yaml:"name" json:"name"`
	Grid    GridDef       `yaml:"grid" json:"grid"`
	Ambient string        `yaml:"ambient" json:"ambient"`
	Walls   []WallDef     `yaml:"walls" json:"walls"`
	Terrain []TerrainCell `yaml:"terrain" json:"terrain"`
	Tokens  []Token       `yaml:"tokens" json:"tokens"`
	Lights  []Light       `yaml:"lights" json:"lights"`
}

// GridDef describes the cell grid. CellSize is the pixel size of one cell
// and is the only bridge between grid and pixel coordinates.
type GridDef struct {
	Width    int     `yaml:"width" json:"width"`
	Height   int     `yaml:"height" json:"height"`
	CellSize float64 `yaml:"cell_size" json:"cell_size"`
}

// WallDef is a wall segment with endpoints in grid coordinates (cell
// units, not pixels). Fractional coordinates are allowed, walls usually
// run along cell edges.
type WallDef struct {
	X1   float64 `yaml:"x1" json:"x1"`
	Y1   float64 `yaml:"y1" json:"y1"`
	X2   float64 `yaml:"x2" json:"x2"`
	Y2   float64 `yaml:"y2" json:"y2"`
	Kind string  `yaml:"kind" json:"kind"`
	Open bool    `yaml:"open,omitempty" json:"open,omitempty"`
}

// Segment converts the wall to a grid-space geometry segment.
func (w WallDef) Segment() geo.Segment {
	return geo.Segment{
		A:    geo.Pt(w.X1, w.Y1),
		B:    geo.Pt(w.X2, w.Y2),
		Kind: geo.SegmentKind(w.Kind),
		Open: w.Open,
	}
}

// TerrainCell overrides the movement cost of one cell. Cost is a
// multiplier on the base step cost; difficult terrain is 2.
type TerrainCell struct {
	X    int     `yaml:"x" json:"x"`
	Y    int     `yaml:"y" json:"y"`
	Type string  `yaml:"type,omitempty" json:"type,omitempty"`
	Cost float64 `yaml:"cost" json:"cost"`
}

// Token types. Only player tokens contribute to party vision.
const (
	TokenPlayer  = "player"
	TokenNPC     = "npc"
	TokenMonster = "monster"
)

// defaultSpeed is the movement budget in feet for tokens that do not
// declare one.
const defaultSpeed = 30

// Token is a creature or object standing on the grid. X, Y is the
// top-left cell of its footprint; Width and Height are in cells and
// default to 1 when omitted.
type Token struct {
	ID      string  `yaml:"id" json:"id"`
	Name    string  `yaml:"name,omitempty" json:"name,omitempty"`
	X       int     `yaml:"x" json:"x"`
	Y       int     `yaml:"y" json:"y"`
	Width   int     `yaml:"width,omitempty" json:"width,omitempty"`
	Height  int     `yaml:"height,omitempty" json:"height,omitempty"`
	Type    string  `yaml:"type" json:"type"`
	Species string  `yaml:"species,omitempty" json:"species,omitempty"`
	Speed   float64 `yaml:"speed,omitempty" json:"speed,omitempty"`
}

// FootprintSize returns the token's width and height in cells, treating
// zero as 1 so a bare x,y token occupies a single cell.
func (t Token) FootprintSize() (int, int) {
	w, h := t.Width, t.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Footprint returns every cell the token occupies.
func (t Token) Footprint() []geo.Cell {
	w, h := t.FootprintSize()
	cells := make([]geo.Cell, 0, w*h)
	for y := t.Y; y < t.Y+h; y++ {
		for x := t.X; x < t.X+w; x++ {
			cells = append(cells, geo.Cell{X: x, Y: y})
		}
	}
	return cells
}

// Anchor returns the token's top-left cell.
func (t Token) Anchor() geo.Cell {
	return geo.Cell{X: t.X, Y: t.Y}
}

// CenterPx returns the pixel-space center of the token's footprint, the
// point multi-cell actors see from.
func (t Token) CenterPx(cellSize float64) geo.Point {
	w, h := t.FootprintSize()
	return geo.Point{
		X: (float64(t.X) + float64(w)/2) * cellSize,
		Y: (float64(t.Y) + float64(h)/2) * cellSize,
	}
}

// MovementBudget returns the token's speed in feet, defaulting to 30.
func (t Token) MovementBudget() float64 {
	if t.Speed <= 0 {
		return defaultSpeed
	}
	return t.Speed
}

// Light is a point light source at a grid-space position (cell units,
// fractional allowed). Bright is the radius of full illumination in cells;
// Dim extends that many cells beyond Bright.
type Light struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Bright float64 `yaml:"bright" json:"bright"`
	Dim    float64 `yaml:"dim" json:"dim"`
	Color  string  `yaml:"color,omitempty" json:"color,omitempty"`
}

// Position returns the pixel-space position of the light.
func (l Light) Position(cellSize float64) geo.Point {
	return geo.Pt(l.X*cellSize, l.Y*cellSize)
}
