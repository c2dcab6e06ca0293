package vision

import "strings"

// darkvisionSpecies are the species that see in darkness. The lookup only
// informs how consumers read dim and darkness cells for these creatures;
// it never changes the geometry.
var darkvisionSpecies = map[string]bool{
	"dwarf":     true,
	"duergar":   true,
	"elf":       true,
	"drow":      true,
	"half-elf":  true,
	"half-orc":  true,
	"gnome":     true,
	"tiefling":  true,
	"orc":       true,
	"goblin":    true,
	"hobgoblin": true,
	"bugbear":   true,
	"kobold":    true,
}

// HasDarkvision reports whether the species can see in darkness.
// Matching is case-insensitive.
func HasDarkvision(species string) bool {
	return darkvisionSpecies[strings.ToLower(species)]
}
