package main

import (
	"fmt"
	"strings"

	"github.com/EvilPatrick06/battlemap/pkg/geo"
	"github.com/EvilPatrick06/battlemap/pkg/mapspec"
	"github.com/EvilPatrick06/battlemap/pkg/overlay"
	"github.com/EvilPatrick06/battlemap/pkg/pathfind"
	"github.com/EvilPatrick06/battlemap/pkg/validation"
)

func printValidationReport(r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  [%s] %s\n", e.Level, e.Message)
			if e.Path != "" {
				fmt.Printf("    -> %s = %v\n", e.Path, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
			if e.ConflictWith != "" {
				fmt.Printf("    conflicts with: %s\n", e.ConflictWith)
			}
			for _, s := range e.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  [%s] %s\n", w.Level, w.Message)
			if w.Path != "" {
				fmt.Printf("    -> %s = %v\n", w.Path, w.ActualValue)
			}
			if w.Expected != "" {
				fmt.Printf("    expected: %s\n", w.Expected)
			}
			for _, s := range w.Suggestions {
				fmt.Printf("    * %s\n", s)
			}
		}
		fmt.Println()
	}

	if len(r.Info) > 0 {
		fmt.Printf("INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Printf("  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

// renderFog draws the party's view of the map: '.' for visible floor,
// a blank for fog, and a letter for each token the party can see.
func renderFog(m *mapspec.BattleMap, snap *overlay.Snapshot) string {
	glyphs := make(map[geo.Cell]rune, len(snap.Vision.VisibleCells))
	for _, c := range snap.Vision.VisibleCells {
		glyphs[c] = '.'
	}
	for _, ts := range snap.Tokens {
		if !ts.VisibleToParty {
			continue
		}
		g := tokenGlyph(ts.Type)
		for _, c := range ts.Cells {
			glyphs[c] = g
		}
	}

	var b strings.Builder
	for y := 0; y < m.Grid.Height; y++ {
		for x := 0; x < m.Grid.Width; x++ {
			if g, ok := glyphs[geo.Cell{X: x, Y: y}]; ok {
				b.WriteRune(g)
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func tokenGlyph(tokenType string) rune {
	switch tokenType {
	case mapspec.TokenPlayer:
		return '@'
	case mapspec.TokenMonster:
		return 'M'
	case mapspec.TokenNPC:
		return 'N'
	}
	return '?'
}

// renderPath draws a route as 'S' start, 'G' goal, '*' steps between.
func renderPath(width, height int, res pathfind.PathResult) string {
	glyphs := make(map[geo.Cell]rune, len(res.Path))
	for _, c := range res.Path {
		glyphs[c] = '*'
	}
	if len(res.Path) > 0 {
		glyphs[res.Path[0]] = 'S'
		glyphs[res.Path[len(res.Path)-1]] = 'G'
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if g, ok := glyphs[geo.Cell{X: x, Y: y}]; ok {
				b.WriteRune(g)
			} else {
				b.WriteRune('.')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}
