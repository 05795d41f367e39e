// Package cli provides terminal I/O and meta-command dispatch for playing
// the game without the web client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Acolyte-Luu/jp-mud/engine"
	"github.com/Acolyte-Luu/jp-mud/save"
	"github.com/Acolyte-Luu/jp-mud/types"
)

// Narrator interprets commands the parser rejected. Optional; without one
// the player sees the parser's own message.
type Narrator interface {
	Narrate(ctx context.Context, input, scene string) (string, error)
}

// SceneFunc renders prompt context for the narrator from the current state.
type SceneFunc func(*types.GameState) string

// CLI runs the game loop against a terminal or a script file.
type CLI struct {
	GS        *types.GameState
	Store     *save.Store
	Narrator  Narrator
	Scene     SceneFunc
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)

	lastCmd string // for "again"/"g" repeat
	history []save.Message
}

// New creates a CLI for the given state. store may be nil to disable
// /save and /load.
func New(gs *types.GameState, store *save.Store) *CLI {
	return &CLI{
		GS:    gs,
		Store: store,
		In:    os.Stdin,
		Out:   os.Stdout,
	}
}

// Run starts the game loop: banner, opening look, then prompt → input →
// dispatch → output until EOF or /quit.
func (c *CLI) Run() {
	c.printLine("Japanese Text Adventure (日本語テキストアドベンチャー)")
	c.printLine("Type 'help' for commands, /help for system commands.")
	c.printLine("")

	c.printReply(engine.Process("look", c.GS))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		c.step(input)
	}
}

// step runs one game command, narrating unrecognized input when a narrator
// is available, and records the exchange in the chat history.
func (c *CLI) step(input string) {
	reply := engine.Process(input, c.GS)
	text := reply.Text

	if reply.Unrecognized && c.Narrator != nil && c.Scene != nil {
		narrated, err := c.Narrator.Narrate(context.Background(), input, c.Scene(c.GS))
		if err == nil {
			text = "Command not recognized. " + narrated
		}
	}

	c.printLine(text)
	c.history = append(c.history,
		save.Message{Role: "user", Content: input},
		save.Message{Role: "assistant", Content: text},
	)
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye. さようなら。")
		return true

	case "/save":
		c.cmdSave()

	case "/load":
		c.cmdLoad(arg)

	case "/saves":
		c.cmdSaves()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave() {
	if c.Store == nil {
		c.printSystem("Saving is not available.")
		return
	}
	gameID, err := c.Store.Save(c.GS, c.history)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game saved. ID: %s", gameID))
}

func (c *CLI) cmdLoad(gameID string) {
	if c.Store == nil {
		c.printSystem("Saving is not available.")
		return
	}
	if gameID == "" {
		c.printSystem("Usage: /load <game-id>. Use /saves to list saved games.")
		return
	}

	data, err := c.Store.Load(gameID)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	*c.GS = *data.State
	c.history = data.ChatHistory
	c.printSystem(fmt.Sprintf("Game loaded from %s.", gameID))

	c.printReply(engine.Process("look", c.GS))
}

func (c *CLI) cmdSaves() {
	if c.Store == nil {
		c.printSystem("Saving is not available.")
		return
	}
	summaries, err := c.Store.List()
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return
	}
	if len(summaries) == 0 {
		c.printSystem("No saved games.")
		return
	}
	for _, s := range summaries {
		c.printLine(fmt.Sprintf("%s  %s  %s", s.GameID, s.Timestamp, s.Location))
	}
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save           — Save game (prints the new game id)",
		"  /load <id>      — Load a saved game",
		"  /saves          — List saved games",
		"  /quit           — Exit game",
		"  /help           — Show this help",
		"  /state          — Debug: dump current state",
		"",
		"Game commands: type 'help' for the in-game bilingual command list.",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	gs := c.GS
	c.printSystem(fmt.Sprintf("Location: %s", gs.Player.CurrentLocation))
	c.printSystem(fmt.Sprintf("Moves: %d", gs.Player.Stats.Moves))
	c.printSystem(fmt.Sprintf("Inventory: %v", gs.Player.Inventory))
	c.printSystem(fmt.Sprintf("Active quests: %v", gs.QuestLog.Active.Items()))
	c.printSystem(fmt.Sprintf("Words learned: %d", gs.Player.Stats.VocabularyLearned))
}

func (c *CLI) printReply(reply engine.Reply) {
	c.printLine(reply.Text)
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
