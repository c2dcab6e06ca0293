package validation

import (
	"fmt"

	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
)

// ValidateSchema performs schema validation on a parsed map document.
// It checks structural correctness before any geometry is computed.
func ValidateSchema(m *mapspec.BattleMap) *Report {
	r := NewReport()

	validateGrid(m, r)
	validateAmbient(m, r)
	validateWalls(m, r)
	validateTerrain(m, r)
	validateTokens(m, r)
	validateLights(m, r)

	return r
}

func validateGrid(m *mapspec.BattleMap, r *Report) {
	if m.Grid.Width < 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "grid width must be at least 1",
			Path:        "grid.width",
			ActualValue: m.Grid.Width,
			Expected:    ">= 1",
		})
	}
	if m.Grid.Height < 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "grid height must be at least 1",
			Path:        "grid.height",
			ActualValue: m.Grid.Height,
			Expected:    ">= 1",
		})
	}
	if m.Grid.CellSize <= 0 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "grid cell_size must be greater than 0",
			Path:        "grid.cell_size",
			ActualValue: m.Grid.CellSize,
			Expected:    "> 0",
		})
	}
}

func validateAmbient(m *mapspec.BattleMap, r *Report) {
	switch m.Ambient {
	case "", "bright", "dim", "darkness", "dark":
	default:
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("unknown ambient light level %q", m.Ambient),
			Path:        "ambient",
			ActualValue: m.Ambient,
			Expected:    "bright, dim, or darkness",
		})
	}
}

func validateWalls(m *mapspec.BattleMap, r *Report) {
	w := float64(m.Grid.Width)
	h := float64(m.Grid.Height)

	for i, wall := range m.Walls {
		switch wall.Kind {
		case "solid", "door", "window":
		case "":
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("walls[%d] has no kind and is treated as solid", i),
				Path:        fmt.Sprintf("walls[%d].kind", i),
				Suggestions: []string{"Set kind to solid, door, or window"},
			})
		default:
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("walls[%d] has unknown kind %q", i, wall.Kind),
				Path:        fmt.Sprintf("walls[%d].kind", i),
				ActualValue: wall.Kind,
				Expected:    "solid, door, or window",
			})
		}

		if wall.X1 < 0 || wall.X1 > w || wall.X2 < 0 || wall.X2 > w ||
			wall.Y1 < 0 || wall.Y1 > h || wall.Y2 < 0 || wall.Y2 > h {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("walls[%d] endpoints (%.1f,%.1f)-(%.1f,%.1f) fall outside the %dx%d grid", i, wall.X1, wall.Y1, wall.X2, wall.Y2, m.Grid.Width, m.Grid.Height),
				Path:        fmt.Sprintf("walls[%d]", i),
				ActualValue: fmt.Sprintf("(%.1f,%.1f)-(%.1f,%.1f)", wall.X1, wall.Y1, wall.X2, wall.Y2),
				Expected:    fmt.Sprintf("within 0-%d x 0-%d", m.Grid.Width, m.Grid.Height),
			})
		}

		if wall.X1 == wall.X2 && wall.Y1 == wall.Y2 {
			r.AddWarning(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("walls[%d] has zero length and blocks nothing", i),
				Path:    fmt.Sprintf("walls[%d]", i),
			})
		}

		if wall.Open && wall.Kind != "door" {
			r.AddWarning(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("walls[%d] sets open but only doors can open", i),
				Path:    fmt.Sprintf("walls[%d].open", i),
			})
		}
	}
}

func validateTerrain(m *mapspec.BattleMap, r *Report) {
	seen := make(map[[2]int]int)
	for i, cell := range m.Terrain {
		if cell.X < 0 || cell.X >= m.Grid.Width || cell.Y < 0 || cell.Y >= m.Grid.Height {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("terrain[%d] cell (%d,%d) falls outside the %dx%d grid", i, cell.X, cell.Y, m.Grid.Width, m.Grid.Height),
				Path:        fmt.Sprintf("terrain[%d]", i),
				ActualValue: fmt.Sprintf("(%d,%d)", cell.X, cell.Y),
			})
		}
		if cell.Cost <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("terrain[%d] cost must be greater than 0", i),
				Path:        fmt.Sprintf("terrain[%d].cost", i),
				ActualValue: cell.Cost,
				Expected:    "> 0",
			})
		} else if cell.Cost < 1 {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("terrain[%d] cost below 1 makes movement cheaper than open ground; the pathfinder may return longer routes than necessary", i),
				Path:        fmt.Sprintf("terrain[%d].cost", i),
				ActualValue: cell.Cost,
				Expected:    ">= 1",
			})
		}
		key := [2]int{cell.X, cell.Y}
		if prev, ok := seen[key]; ok {
			r.AddWarning(Result{
				Level:        LevelSchema,
				Message:      fmt.Sprintf("terrain[%d] repeats cell (%d,%d); the last entry wins", i, cell.X, cell.Y),
				Path:         fmt.Sprintf("terrain[%d]", i),
				ConflictWith: fmt.Sprintf("terrain[%d]", prev),
			})
		}
		seen[key] = i
	}
}

func validateTokens(m *mapspec.BattleMap, r *Report) {
	ids := make(map[string]int)
	players := 0

	for i, tok := range m.Tokens {
		if tok.ID == "" {
			r.AddError(Result{
				Level:    LevelSchema,
				Message:  fmt.Sprintf("tokens[%d] is missing an id", i),
				Path:     fmt.Sprintf("tokens[%d].id", i),
				Expected: "non-empty id",
			})
		} else if prev, ok := ids[tok.ID]; ok {
			r.AddError(Result{
				Level:        LevelSchema,
				Message:      fmt.Sprintf("tokens[%d] reuses id %q", i, tok.ID),
				Path:         fmt.Sprintf("tokens[%d].id", i),
				ActualValue:  tok.ID,
				ConflictWith: fmt.Sprintf("tokens[%d]", prev),
			})
		} else {
			ids[tok.ID] = i
		}

		if tok.Width < 0 || tok.Height < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("tokens[%d] size %dx%d must not be negative", i, tok.Width, tok.Height),
				Path:        fmt.Sprintf("tokens[%d]", i),
				ActualValue: fmt.Sprintf("%dx%d", tok.Width, tok.Height),
				Expected:    ">= 0 (0 means 1)",
			})
		}

		fw, fh := tok.FootprintSize()
		if tok.X < 0 || tok.Y < 0 || tok.X+fw > m.Grid.Width || tok.Y+fh > m.Grid.Height {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("tokens[%d] (%s) footprint falls outside the %dx%d grid", i, tok.ID, m.Grid.Width, m.Grid.Height),
				Path:        fmt.Sprintf("tokens[%d]", i),
				ActualValue: fmt.Sprintf("(%d,%d) %dx%d", tok.X, tok.Y, fw, fh),
			})
		}

		switch tok.Type {
		case mapspec.TokenPlayer:
			players++
		case mapspec.TokenNPC, mapspec.TokenMonster:
		default:
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("tokens[%d] has unknown type %q and will not contribute to party vision", i, tok.Type),
				Path:        fmt.Sprintf("tokens[%d].type", i),
				ActualValue: tok.Type,
				Expected:    "player, npc, or monster",
			})
		}

		if tok.Speed < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("tokens[%d] speed must not be negative", i),
				Path:        fmt.Sprintf("tokens[%d].speed", i),
				ActualValue: tok.Speed,
				Expected:    ">= 0",
			})
		}
	}

	if players == 0 && len(m.Tokens) > 0 {
		r.AddWarning(Result{
			Level:   LevelSchema,
			Message: "no player tokens; party vision will be empty",
			Path:    "tokens",
		})
	}
}

func validateLights(m *mapspec.BattleMap, r *Report) {
	w := float64(m.Grid.Width)
	h := float64(m.Grid.Height)

	for i, light := range m.Lights {
		if light.X < 0 || light.X > w || light.Y < 0 || light.Y > h {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("lights[%d] position (%.1f,%.1f) falls outside the %dx%d grid", i, light.X, light.Y, m.Grid.Width, m.Grid.Height),
				Path:        fmt.Sprintf("lights[%d]", i),
				ActualValue: fmt.Sprintf("(%.1f,%.1f)", light.X, light.Y),
			})
		}
		if light.Bright < 0 || light.Dim < 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("lights[%d] radii must not be negative", i),
				Path:        fmt.Sprintf("lights[%d]", i),
				ActualValue: fmt.Sprintf("bright %.1f, dim %.1f", light.Bright, light.Dim),
				Expected:    ">= 0",
			})
		}
		if light.Bright == 0 && light.Dim == 0 {
			r.AddWarning(Result{
				Level:   LevelSchema,
				Message: fmt.Sprintf("lights[%d] has no radius and lights nothing", i),
				Path:    fmt.Sprintf("lights[%d]", i),
			})
		}
	}

	if len(m.Lights) > 0 && m.Ambient == "bright" {
		r.AddInfo(Result{
			Level:   LevelSchema,
			Message: "ambient light is already bright; light sources change nothing",
			Path:    "lights",
		})
	}
}
