package llm

import (
	"fmt"
	"strings"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// SceneContext renders the player's surroundings as prompt context for
// Narrate. Hidden items stay out of the description so the model cannot
// leak them.
func SceneContext(gs *types.GameState) string {
	loc, ok := gs.World.Locations[gs.Player.CurrentLocation]
	if !ok {
		return "The player is currently in an unknown place."
	}

	var characters []string
	for _, id := range loc.Characters {
		if ch, ok := gs.World.Characters[id]; ok {
			characters = append(characters, ch.Name)
		}
	}
	var items []string
	for _, id := range loc.Items {
		if item, ok := gs.World.Items[id]; ok && !item.Hidden {
			items = append(items, item.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The player is currently at: %s (%s)\n\n", loc.Name, loc.JapaneseName)
	fmt.Fprintf(&b, "Location description: %s\n\n", loc.Description)
	fmt.Fprintf(&b, "Characters present: %s\n\n", strings.Join(characters, ", "))
	fmt.Fprintf(&b, "Items visible: %s", strings.Join(items, ", "))
	return b.String()
}

// salvageJSON pulls the first JSON object out of model output, tolerating
// markdown fences and leading or trailing prose.
func salvageJSON(text string) string {
	text = strings.TrimSpace(text)
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(text[start : end+1])
}
