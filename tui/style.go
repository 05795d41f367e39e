package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleExits = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleQuest = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleVocab = lipgloss.NewStyle().
			Foreground(lipgloss.Color("120"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindYouSee
	kindExits
	kindQuest
	kindVocab
	kindError
)

// classifyLine determines what kind of output line this is, keyed off the
// fixed prefixes the command interpreter emits.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "You see:"),
		strings.HasPrefix(line, "Characters:"):
		return kindYouSee
	case strings.HasPrefix(line, "Exits:"),
		strings.HasPrefix(line, "There are no obvious exits."):
		return kindExits
	case strings.HasPrefix(line, "Quest"),
		strings.HasPrefix(line, "New quest"),
		strings.HasPrefix(line, "Active Quests:"),
		strings.HasPrefix(line, "Available Quests:"),
		strings.HasPrefix(line, "Completed Quests:"),
		strings.HasPrefix(line, "Grammar"):
		return kindQuest
	case strings.HasPrefix(line, "[Vocabulary]"),
		strings.HasPrefix(line, "- "):
		return kindVocab
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "You don't"),
		strings.HasPrefix(line, "You need"),
		strings.HasPrefix(line, "I don't understand"):
		return kindError
	default:
		return kindNarrative
	}
}

// styledYouSee renders "You see: coin, old key." with the item names bold.
func styledYouSee(line string) string {
	for _, prefix := range []string{"You see: ", "Characters: "} {
		if strings.HasPrefix(line, prefix) {
			return styleNarrative.Render(prefix) + styleYouSee.Render(line[len(prefix):])
		}
	}
	return styleNarrative.Render(line)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
