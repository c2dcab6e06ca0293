package overlay

import (
	"fmt"

	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
	"github.com/EvilPatrick06/battlemap/pkg/validation"
)

// ValidateSnapshot performs structural validation on an assembled
// snapshot. It checks that the computed geometry stays inside the map,
// that lit areas are coherent, and that token and movement entries line
// up with the document.
func ValidateSnapshot(m *mapspec.BattleMap, snap *Snapshot) *validation.Report {
	r := validation.NewReport()

	if snap == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "snapshot is nil",
		})
		return r
	}

	validateVisionBounds(m, snap, r)
	validateLitAreas(m, snap, r)
	validateTokenStatuses(m, snap, r)
	validateMovementRanges(m, snap, r)

	return r
}

func validateVisionBounds(m *mapspec.BattleMap, snap *Snapshot, r *validation.Report) {
	bounds := m.Bounds()
	tolerance := 1.0

	for i, vis := range snap.Vision.Polygons {
		for _, v := range vis.Polygon.Vertices {
			if v.X < -tolerance || v.X > bounds.Width+tolerance ||
				v.Y < -tolerance || v.Y > bounds.Height+tolerance {
				r.AddWarning(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("vision polygon %d has vertex (%.1f, %.1f) outside map bounds %.0fx%.0f", i, v.X, v.Y, bounds.Width, bounds.Height),
					Path:        fmt.Sprintf("vision.polygons[%d]", i),
					ActualValue: fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y),
				})
				break
			}
		}
	}

	for _, c := range snap.Vision.VisibleCells {
		if !c.InBounds(m.Grid.Width, m.Grid.Height) {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("visible cell (%d,%d) lies outside the %dx%d grid", c.X, c.Y, m.Grid.Width, m.Grid.Height),
				Path:        "vision.visible_cells",
				ActualValue: fmt.Sprintf("(%d,%d)", c.X, c.Y),
			})
			break
		}
	}
}

func validateLitAreas(m *mapspec.BattleMap, snap *Snapshot, r *validation.Report) {
	tolerance := 1.0

	for i, area := range snap.Lighting {
		pos := area.Source.Position(m.Grid.CellSize)
		brightRadius := area.Source.Bright * m.Grid.CellSize
		brightReach := area.Bright.MaxDistanceTo(pos)

		if brightReach > brightRadius+tolerance {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("lighting[%d] bright polygon reaches %.1fpx, past its %.1fpx radius", i, brightReach, brightRadius),
				Path:        fmt.Sprintf("lighting[%d].bright", i),
				ActualValue: brightReach,
				Expected:    fmt.Sprintf("<= %.1f", brightRadius),
			})
		}

		dimReach := area.Dim.MaxDistanceTo(pos)
		if dimReach+tolerance < brightReach {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("lighting[%d] dim polygon reaches %.1fpx, short of its bright polygon at %.1fpx", i, dimReach, brightReach),
				Path:        fmt.Sprintf("lighting[%d].dim", i),
				ActualValue: dimReach,
				Expected:    fmt.Sprintf(">= %.1f", brightReach),
			})
		}
	}

	if len(snap.Lighting) != len(m.Lights) {
		r.AddError(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("snapshot has %d lit areas for %d lights", len(snap.Lighting), len(m.Lights)),
			Path:        "lighting",
			ActualValue: len(snap.Lighting),
			Expected:    fmt.Sprintf("%d", len(m.Lights)),
		})
	}
}

func validateTokenStatuses(m *mapspec.BattleMap, snap *Snapshot, r *validation.Report) {
	seen := make(map[string]int, len(snap.Tokens))
	for i, ts := range snap.Tokens {
		if ts.ID == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelSpatial,
				Message:  fmt.Sprintf("token status at index %d has empty ID", i),
				Path:     fmt.Sprintf("tokens[%d].id", i),
				Expected: "non-empty string",
			})
			continue
		}
		if prev, exists := seen[ts.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("duplicate token status %q at indices %d and %d", ts.ID, prev, i),
				Path:        fmt.Sprintf("tokens[%d].id", i),
				ActualValue: ts.ID,
			})
		}
		seen[ts.ID] = i
	}

	for _, tok := range m.Tokens {
		if _, ok := seen[tok.ID]; !ok {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("snapshot is missing a status for token %q", tok.ID),
				Path:        "tokens",
				ActualValue: tok.ID,
			})
		}
	}
}

func validateMovementRanges(m *mapspec.BattleMap, snap *Snapshot, r *validation.Report) {
	tolerance := 0.01

	players := make(map[string]mapspec.Token)
	for _, tok := range m.Viewers() {
		players[tok.ID] = tok
	}

	covered := make(map[string]bool, len(snap.Movement))
	for i, mr := range snap.Movement {
		tok, ok := players[mr.TokenID]
		if !ok {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("movement[%d] references %q, which is not a player token", i, mr.TokenID),
				Path:        fmt.Sprintf("movement[%d].token_id", i),
				ActualValue: mr.TokenID,
				Expected:    "player token id",
			})
			continue
		}
		covered[mr.TokenID] = true

		originAtZero := false
		for _, rc := range mr.Cells {
			if !rc.Cell.InBounds(m.Grid.Width, m.Grid.Height) {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("movement[%d] cell (%d,%d) lies outside the %dx%d grid", i, rc.Cell.X, rc.Cell.Y, m.Grid.Width, m.Grid.Height),
					Path:        fmt.Sprintf("movement[%d].cells", i),
					ActualValue: fmt.Sprintf("(%d,%d)", rc.Cell.X, rc.Cell.Y),
				})
				break
			}
			if rc.Cost > mr.Budget+tolerance {
				r.AddError(validation.Result{
					Level:       validation.LevelSpatial,
					Message:     fmt.Sprintf("movement[%d] cell (%d,%d) costs %.1f, past the %.1f budget", i, rc.Cell.X, rc.Cell.Y, rc.Cost, mr.Budget),
					Path:        fmt.Sprintf("movement[%d].cells", i),
					ActualValue: rc.Cost,
					Expected:    fmt.Sprintf("<= %.1f", mr.Budget),
				})
				break
			}
			if rc.Cell == tok.Anchor() && rc.Cost == 0 {
				originAtZero = true
			}
		}
		if !originAtZero {
			r.AddError(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("movement[%d] does not include %q's own cell at cost 0", i, mr.TokenID),
				Path:    fmt.Sprintf("movement[%d].cells", i),
			})
		}
	}

	for id := range players {
		if !covered[id] {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("snapshot is missing a movement range for player %q", id),
				Path:        "movement",
				ActualValue: id,
			})
		}
	}
}
