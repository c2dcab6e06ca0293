package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
	"github.com/EvilPatrick06/battlemap/pkg/overlay"
	"github.com/EvilPatrick06/battlemap/pkg/pathfind"
	"github.com/EvilPatrick06/battlemap/pkg/validation"
)

// loadAndValidate loads the map and runs schema validation.
func loadAndValidate(projectPath string) (*mapspec.BattleMap, *validation.Report, error) {
	m, err := mapspec.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading map: %w", err)
	}
	schemaReport := validation.ValidateSchema(m)
	return m, schemaReport, nil
}

func runValidate(projectPath string) error {
	m, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	// Spatial validation needs the computed overlays.
	report.Merge(overlay.ValidateSnapshot(m, overlay.Assemble(m)))

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runSnapshot(projectPath string, ascii bool) error {
	m, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("map has validation errors; fix before computing overlays")
	}

	snap := overlay.Assemble(m)
	report.Merge(overlay.ValidateSnapshot(m, snap))
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("computed overlays failed spatial validation")
	}

	if ascii {
		fmt.Print(renderFog(m, snap))
		return nil
	}

	output := map[string]any{
		"validation": report,
		"snapshot":   snap,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func runPath(projectPath, from, to string, budget float64, ascii bool) error {
	m, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("map has validation errors")
	}

	start, err := mapspec.ParseCell(from)
	if err != nil {
		return fmt.Errorf("--from: %w", err)
	}
	goal, err := mapspec.ParseCell(to)
	if err != nil {
		return fmt.Errorf("--to: %w", err)
	}

	res := pathfind.FindPath(start, goal, m.Grid.Width, m.Grid.Height,
		m.Segments(), pathfind.Costs(m.TerrainCosts()), budget)

	if ascii {
		if !res.ReachedGoal {
			return fmt.Errorf("no route from %s to %s within budget", from, to)
		}
		fmt.Print(renderPath(m.Grid.Width, m.Grid.Height, res))
		fmt.Printf("cost %v over %d cells\n", res.TotalCost, len(res.Path))
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func runReach(projectPath, token, from string, budget float64) error {
	m, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("map has validation errors")
	}

	var origin geo.Cell
	switch {
	case token != "":
		tok := m.TokenByID(token)
		if tok == nil {
			return fmt.Errorf("no token %q in map", token)
		}
		origin = tok.Anchor()
		if budget < 0 {
			budget = tok.MovementBudget()
		}
	case from != "":
		origin, err = mapspec.ParseCell(from)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
	default:
		return fmt.Errorf("either --token or --from is required")
	}

	cells := pathfind.ReachableCells(origin, budget, m.Grid.Width, m.Grid.Height,
		m.Segments(), pathfind.Costs(m.TerrainCosts()))

	output := map[string]any{
		"origin": origin,
		"budget": budget,
		"cells":  cells,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
