// Package music provides the generative-music side of SpaceMusic: prompt
// construction from hand positions and the streaming engine behind the
// music WebSocket.
package music

import "strings"

// BuildPrompt expands a base style prompt with modifier vocabulary driven
// by a hand position. The X axis (0-1) controls complexity, the Y axis
// (0-1) controls intensity.
func BuildPrompt(base string, modifierX, modifierY float64) string {
	parts := []string{base}

	// Y axis: intensity
	switch {
	case modifierY > 0.7:
		parts = append(parts, "intense", "powerful", "energetic", "loud")
	case modifierY > 0.5:
		parts = append(parts, "medium energy", "driving")
	case modifierY < 0.3:
		parts = append(parts, "soft", "gentle", "ambient", "quiet")
	default:
		parts = append(parts, "moderate", "balanced")
	}

	// X axis: complexity
	switch {
	case modifierX > 0.7:
		parts = append(parts, "complex", "syncopated", "varied", "intricate")
	case modifierX > 0.5:
		parts = append(parts, "moderately complex")
	case modifierX < 0.3:
		parts = append(parts, "simple", "minimal", "steady", "repetitive")
	default:
		parts = append(parts, "balanced rhythm")
	}

	return strings.Join(parts, ", ")
}
