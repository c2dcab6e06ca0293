package mapspec

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
)

// Load reads a battle map from a YAML file.
func Load(path string) (*BattleMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}

	var m BattleMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing map YAML: %w", err)
	}

	return &m, nil
}

// LoadProject loads a battle map from a project directory.
// It looks for battlemap.yaml in the given directory.
func LoadProject(projectDir string) (*BattleMap, error) {
	mapPath := filepath.Join(projectDir, "battlemap.yaml")
	return Load(mapPath)
}

// Segments returns the wall list as geometry segments in grid space.
func (m *BattleMap) Segments() []geo.Segment {
	segs := make([]geo.Segment, len(m.Walls))
	for i, w := range m.Walls {
		segs[i] = w.Segment()
	}
	return segs
}

// PixelSegments returns the wall list scaled to pixel space.
func (m *BattleMap) PixelSegments() []geo.Segment {
	segs := m.Segments()
	for i := range segs {
		segs[i] = segs[i].Scale(m.Grid.CellSize)
	}
	return segs
}

// Bounds returns the pixel-space bounds of the map.
func (m *BattleMap) Bounds() geo.Rect {
	return geo.Rect{
		Width:  float64(m.Grid.Width) * m.Grid.CellSize,
		Height: float64(m.Grid.Height) * m.Grid.CellSize,
	}
}

// TerrainCosts returns the sparse terrain overrides as a cost map keyed
// by cell. Cells without an entry move at the default cost.
func (m *BattleMap) TerrainCosts() map[geo.Cell]float64 {
	costs := make(map[geo.Cell]float64, len(m.Terrain))
	for _, tc := range m.Terrain {
		costs[geo.Cell{X: tc.X, Y: tc.Y}] = tc.Cost
	}
	return costs
}

// Viewers returns the player tokens, the ones whose sight feeds party
// vision.
func (m *BattleMap) Viewers() []Token {
	var viewers []Token
	for _, t := range m.Tokens {
		if t.Type == TokenPlayer {
			viewers = append(viewers, t)
		}
	}
	return viewers
}

// TokenByID returns the token with the given id, or nil.
func (m *BattleMap) TokenByID(id string) *Token {
	for i := range m.Tokens {
		if m.Tokens[i].ID == id {
			return &m.Tokens[i]
		}
	}
	return nil
}

// Doors returns the indices of door walls, in wall-list order.
func (m *BattleMap) Doors() []int {
	var doors []int
	for i, w := range m.Walls {
		if geo.SegmentKind(w.Kind) == geo.KindDoor {
			doors = append(doors, i)
		}
	}
	return doors
}

// SetDoorOpen opens or closes the door at the given wall index. The map
// owns the wall list; callers recompute vision and lighting afterwards.
func (m *BattleMap) SetDoorOpen(index int, open bool) error {
	if index < 0 || index >= len(m.Walls) {
		return fmt.Errorf("wall index %d out of range", index)
	}
	if geo.SegmentKind(m.Walls[index].Kind) != geo.KindDoor {
		return fmt.Errorf("wall %d is %q, not a door", index, m.Walls[index].Kind)
	}
	m.Walls[index].Open = open
	return nil
}

// ParseCell parses the "x,y" cell notation used in URLs and CLI flags.
func ParseCell(s string) (geo.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geo.Cell{}, fmt.Errorf("cell %q must be x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return geo.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return geo.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	return geo.Cell{X: x, Y: y}, nil
}
