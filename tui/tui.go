package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Acolyte-Luu/jp-mud/engine"
	"github.com/Acolyte-Luu/jp-mud/save"
	"github.com/Acolyte-Luu/jp-mud/types"
)

// Narrator interprets commands the parser rejected. Optional.
type Narrator interface {
	Narrate(ctx context.Context, input, scene string) (string, error)
}

// SceneFunc renders prompt context for the narrator from the current state.
type SceneFunc func(*types.GameState) string

// rawLine stores an unstyled output line with its classification, so we can
// re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // echoed player input
	isSystem bool // meta-command output
}

// Model is the Bubble Tea model for the game.
type Model struct {
	gs       *types.GameState
	store    *save.Store
	narrator Narrator
	scene    SceneFunc

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine
	chat     []save.Message

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for the opening look)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model for the given state. store may be nil to disable
// saving; narrator and scene may be nil to disable model narration.
func New(gs *types.GameState, store *save.Store, narrator Narrator, scene SceneFunc) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		gs:       gs,
		store:    store,
		narrator: narrator,
		scene:    scene,
		input:    ti,
		history:  NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(gs *types.GameState, store *save.Store, narrator Narrator, scene SceneFunc) error {
	m := New(gs, store, narrator, scene)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the banner and first look.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		lines := []string{
			"Japanese Text Adventure (日本語テキストアドベンチャー)",
			"Type 'help' for commands, /help for system commands.",
			"",
		}
		reply := engine.Process("look", m.gs)
		lines = append(lines, strings.Split(reply.Text, "\n")...)
		return gameOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// "again" / "g" repeats the last game command.
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else {
		m.lastCmd = input
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Game command.
	text := m.step(input)
	m = m.appendOutput(gameOutputMsg{input: input, lines: strings.Split(text, "\n")})
	return m, nil
}

// step runs one game command and records the exchange in the chat history.
func (m *Model) step(input string) string {
	reply := engine.Process(input, m.gs)
	text := reply.Text

	if reply.Unrecognized && m.narrator != nil && m.scene != nil {
		narrated, err := m.narrator.Narrate(context.Background(), input, m.scene(m.gs))
		if err == nil {
			text = "Command not recognized. " + narrated
		}
	}

	m.chat = append(m.chat,
		save.Message{Role: "user", Content: input},
		save.Message{Role: "assistant", Content: text},
	)
	return text
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindYouSee:
		return styledYouSee(line)
	case kindExits:
		return styleExits.Render(line)
	case kindQuest:
		return styleQuest.Render(line)
	case kindVocab:
		return styleVocab.Render(line)
	case kindError:
		return styleError.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// wordWrap wraps text at word boundaries to fit within width.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye. さようなら。"}, true

	case "/save":
		return m.cmdSave(), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/saves":
		return m.cmdSaves(), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdSave() []string {
	if m.store == nil {
		return []string{"Saving is not available."}
	}
	gameID, err := m.store.Save(m.gs, m.chat)
	if err != nil {
		return []string{fmt.Sprintf("Save failed: %v", err)}
	}
	return []string{fmt.Sprintf("Game saved. ID: %s", gameID)}
}

func (m *Model) cmdLoad(gameID string) []string {
	if m.store == nil {
		return []string{"Saving is not available."}
	}
	if gameID == "" {
		return []string{"Usage: /load <game-id>. Use /saves to list saved games."}
	}

	data, err := m.store.Load(gameID)
	if err != nil {
		return []string{fmt.Sprintf("Load failed: %v", err)}
	}

	*m.gs = *data.State
	m.chat = data.ChatHistory

	output := []string{fmt.Sprintf("Game loaded from %s.", gameID)}
	reply := engine.Process("look", m.gs)
	output = append(output, strings.Split(reply.Text, "\n")...)
	return output
}

func (m *Model) cmdSaves() []string {
	if m.store == nil {
		return []string{"Saving is not available."}
	}
	summaries, err := m.store.List()
	if err != nil {
		return []string{fmt.Sprintf("Listing saves failed: %v", err)}
	}
	if len(summaries) == 0 {
		return []string{"No saved games."}
	}
	var output []string
	for _, s := range summaries {
		output = append(output, fmt.Sprintf("%s  %s  %s", s.GameID, s.Timestamp, s.Location))
	}
	return output
}

func (m *Model) cmdHelp() []string {
	return []string{
		"System:",
		"  /save           — Save game (prints the new game id)",
		"  /load <id>      — Load a saved game",
		"  /saves          — List saved games",
		"  /quit           — Exit game",
		"  /help           — Show this help",
		"  /state          — Debug: dump current state",
		"",
		"Game commands: type 'help' for the in-game bilingual command list.",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	}
}

func (m *Model) cmdState() []string {
	gs := m.gs
	return []string{
		fmt.Sprintf("Location: %s", gs.Player.CurrentLocation),
		fmt.Sprintf("Moves: %d", gs.Player.Stats.Moves),
		fmt.Sprintf("Inventory: %v", gs.Player.Inventory),
		fmt.Sprintf("Active quests: %v", gs.QuestLog.Active.Items()),
		fmt.Sprintf("Words learned: %d", gs.Player.Stats.VocabularyLearned),
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
