// jp-mud is a text adventure for learning Japanese.
// Usage: jpmud [--version] [--serve] [--plain] [--script <file>] [world_directory]
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Acolyte-Luu/jp-mud/cli"
	"github.com/Acolyte-Luu/jp-mud/config"
	"github.com/Acolyte-Luu/jp-mud/llm"
	"github.com/Acolyte-Luu/jp-mud/loader"
	"github.com/Acolyte-Luu/jp-mud/save"
	"github.com/Acolyte-Luu/jp-mud/server"
	"github.com/Acolyte-Luu/jp-mud/tui"
	"github.com/Acolyte-Luu/jp-mud/turnlog"
	"github.com/Acolyte-Luu/jp-mud/types"
	"github.com/Acolyte-Luu/jp-mud/world"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	serve := false
	plain := false
	var worldDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("jpmud %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--serve":
			serve = true
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		default:
			if worldDir == "" {
				worldDir = args[i]
			}
		}
	}

	cfg := config.Load()
	if worldDir == "" {
		worldDir = cfg.WorldDir
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	gs := loadWorld(worldDir)

	store, err := save.NewStore(cfg.SaveDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening save directory: %v\n", err)
		os.Exit(1)
	}

	model := llm.New(llm.Config{
		BaseURL:       cfg.LLMBaseURL,
		APIKey:        cfg.LLMAPIKey,
		WorldModel:    cfg.WorldModel,
		GameModel:     cfg.GameModel,
		JapaneseModel: cfg.JapaneseModel,
		Timeout:       cfg.LLMTimeout,
	})

	if serve {
		turns, err := turnlog.Open(cfg.TurnLogPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening turn log: %v\n", err)
			os.Exit(1)
		}
		defer turns.Close()

		srv := server.New(store, model, turns)
		slog.Info("starting server", "addr", cfg.Addr)
		if err := srv.Router().Run(cfg.Addr); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Script mode: open file, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := cli.New(gs, store)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use the plain CLI if --plain or stdout is not a terminal.
	if plain || !isTerminal() {
		c := cli.New(gs, store)
		c.Narrator = model
		c.Scene = llm.SceneContext
		c.Run()
		return
	}

	if err := tui.Run(gs, store, model, llm.SceneContext); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadWorld compiles the Lua world templates and builds the starting state.
func loadWorld(dir string) *types.GameState {
	raw, err := loader.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading world: %v\n", err)
		os.Exit(1)
	}

	gs, issues := world.Build(raw)
	for _, issue := range issues {
		slog.Warn("world issue", "section", issue.Section, "ref", issue.Ref, "err", issue.Err)
	}
	return gs
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
