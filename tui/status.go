package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// current location, exits, and learning progress.
func (m Model) renderStatusBar() string {
	gs := m.gs

	locName := gs.Player.CurrentLocation
	var dirs []string
	if loc, ok := gs.World.Locations[gs.Player.CurrentLocation]; ok {
		if loc.Name != "" {
			locName = loc.Name
		}
		if loc.JapaneseName != "" {
			locName += " " + loc.JapaneseName
		}
		for dir := range loc.Connections {
			dirs = append(dirs, dir)
		}
		sort.Strings(dirs)
	}

	left := fmt.Sprintf(" %s | Exits: %s", locName, strings.Join(dirs, ","))
	right := fmt.Sprintf("語彙:%d | Quests:%d | Moves:%d ",
		gs.Player.Stats.VocabularyLearned,
		gs.QuestLog.Active.Len(),
		gs.Player.Stats.Moves,
	)

	// Show inventory names if they fit alongside the counters.
	if len(gs.Player.Inventory) > 0 {
		var names []string
		for _, id := range gs.Player.Inventory {
			name := id
			if item, ok := gs.World.Items[id]; ok && item.Name != "" {
				name = item.Name
			}
			names = append(names, name)
		}
		candidate := fmt.Sprintf("Inv: %s | %s", strings.Join(names, ", "), right)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv:%d | %s", len(gs.Player.Inventory), right)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
