// Package engine interprets player commands against the game state. Every
// command mutates the state in place and returns the narration to show the
// player; unrecognized input is tagged so callers can hand it to the LLM
// narrator instead.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Acolyte-Luu/jp-mud/engine/quest"
	"github.com/Acolyte-Luu/jp-mud/engine/vocab"
	"github.com/Acolyte-Luu/jp-mud/types"
	"github.com/Acolyte-Luu/jp-mud/world"
)

// Reply is the result of processing one command.
type Reply struct {
	Text         string
	Unrecognized bool
}

// directionSynonyms maps a command's first token to a canonical direction.
var directionSynonyms = map[string]string{
	"n": types.North, "s": types.South, "e": types.East, "w": types.West,
	"u": types.Up, "d": types.Down,
	"north": types.North, "south": types.South,
	"east": types.East, "west": types.West,
	"up": types.Up, "down": types.Down,
	"inside": types.In, "outside": types.Out,
	"enter": types.In, "exit": types.Out,
	"北": types.North, "南": types.South, "東": types.East, "西": types.West,
	"上": types.Up, "下": types.Down,
}

// actionSynonyms maps a command's first token to a canonical action.
var actionSynonyms = map[string]string{}

func init() {
	actions := map[string][]string{
		"look":      {"look", "examine", "inspect", "check", "見る", "調べる"},
		"take":      {"take", "get", "grab", "pick", "持つ", "取る", "拾う"},
		"drop":      {"drop", "leave", "put", "置く", "捨てる"},
		"inventory": {"inventory", "items", "belongings", "i", "持ち物", "インベントリー"},
		"use":       {"use", "activate", "apply", "使う", "使用する"},
		"talk":      {"talk", "speak", "chat", "converse", "ask", "話す", "聞く", "質問"},
		"help":      {"help", "commands", "助け", "ヘルプ", "コマンド"},
		"quests":    {"quests", "quest", "missions", "tasks", "クエスト", "任務"},
		"grammar":   {"grammar", "practice", "文法", "練習"},
	}
	for action, synonyms := range actions {
		for _, syn := range synonyms {
			actionSynonyms[syn] = action
		}
	}
}

// Process interprets one player command and updates the game state.
func Process(command string, gs *types.GameState) Reply {
	if strings.TrimSpace(command) == "" {
		return Reply{Text: "What would you like to do?"}
	}

	command = strings.ToLower(strings.TrimSpace(command))
	gs.Player.Stats.Moves++
	gs.Player.LastCommand = command
	gs.Player.LastCommandTime = time.Now().UTC().Format(time.RFC3339)

	fields := strings.Fields(command)
	first := fields[0]

	if dir, ok := directionSynonyms[first]; ok {
		return Reply{Text: movePlayer(dir, gs)}
	}

	if action, ok := actionSynonyms[first]; ok {
		arg := strings.TrimSpace(strings.TrimPrefix(command, first))
		switch action {
		case "look":
			return Reply{Text: lookCommand(gs, arg)}
		case "take":
			return Reply{Text: takeCommand(arg, gs)}
		case "drop":
			return Reply{Text: dropCommand(arg, gs)}
		case "inventory":
			return Reply{Text: inventoryCommand(gs)}
		case "use":
			return Reply{Text: useCommand(arg, gs)}
		case "talk":
			return Reply{Text: talkCommand(arg, gs)}
		case "help":
			return Reply{Text: helpText}
		case "quests":
			return Reply{Text: quest.Info(gs, arg)}
		case "grammar":
			return Reply{Text: grammarCommand(arg, gs)}
		}
	}

	if gs.ActiveChallenge != nil {
		return Reply{Text: processGrammarAnswer(command, gs)}
	}

	slog.Debug("unrecognized command", "command", command)
	return Reply{
		Text:         fmt.Sprintf("I don't understand '%s'. Type 'help' for a list of commands.", command),
		Unrecognized: true,
	}
}

// movePlayer moves the player one step and narrates the new location
// together with any quest activity the move set off.
func movePlayer(dir string, gs *types.GameState) string {
	current := world.EnsureLocation(gs, gs.Player.CurrentLocation)

	targetID, ok := current.Connections[dir]
	if !ok {
		return fmt.Sprintf("You can't go %s from here.", dir)
	}

	target := world.EnsureLocation(gs, targetID)
	if target.Hidden {
		return fmt.Sprintf("That path seems to be blocked. You can't go %s from here.", dir)
	}
	if target.RequiresKey != "" && !inInventory(gs, target.RequiresKey) {
		keyName := "a key"
		if key, ok := gs.World.Items[target.RequiresKey]; ok {
			keyName = key.Name
		}
		return fmt.Sprintf("You need %s to enter this area.", keyName)
	}

	gs.Player.CurrentLocation = targetID

	var questMessages []string
	if !target.Visited {
		target.Visited = true
		gs.VisitedLocations.Add(targetID)
		gs.Player.Stats.LocationsVisited.Add(targetID)

		questMessages = append(questMessages,
			quest.CheckTriggers(gs, quest.ActionVisitLocation, targetID)...)
		progress := quest.UpdateProgress(gs, quest.ActionVisitLocation, targetID, "")
		questMessages = append(questMessages, progress.Messages...)
	}

	text := locationDescription(gs)
	if len(questMessages) > 0 {
		text += "\n\n" + strings.Join(questMessages, "\n")
	}
	return text
}

// locationDescription narrates the player's current location: name,
// description, exits, visible items, and present characters.
func locationDescription(gs *types.GameState) string {
	loc := gs.World.Locations[gs.Player.CurrentLocation]
	if loc == nil {
		slog.Error("player location missing", "location", gs.Player.CurrentLocation)
		return "You are lost in a void. Something is terribly wrong."
	}

	var parts []string
	head := fmt.Sprintf("You are in %s", loc.Name)
	if loc.JapaneseName != "" {
		head += fmt.Sprintf(" (%s)", loc.JapaneseName)
	}
	parts = append(parts, head+".")
	parts = append(parts, loc.Description)
	if loc.JapaneseDescription != "" {
		parts = append(parts, fmt.Sprintf("(%s)", loc.JapaneseDescription))
	}

	var exits []string
	for _, dir := range sortedDirections(loc.Connections) {
		target := gs.World.Locations[loc.Connections[dir]]
		if target == nil {
			slog.Warn("connection to unknown location", "from", loc.ID, "direction", dir)
			continue
		}
		if target.Hidden {
			continue
		}
		name := target.Name
		if name == "" {
			name = target.ID
		}
		exits = append(exits, fmt.Sprintf("%s (%s)", capitalize(dir), name))
	}
	if len(exits) > 0 {
		parts = append(parts, fmt.Sprintf("Exits: %s.", strings.Join(exits, ", ")))
	} else {
		parts = append(parts, "There are no obvious exits.")
	}

	var items []string
	for _, itemID := range loc.Items {
		item := gs.World.Items[itemID]
		if item == nil || item.Hidden {
			continue
		}
		name := item.Name
		if item.JapaneseName != "" {
			name += fmt.Sprintf(" (%s)", item.JapaneseName)
		}
		items = append(items, name)
	}
	if len(items) > 0 {
		parts = append(parts, fmt.Sprintf("You see: %s.", strings.Join(items, ", ")))
	}

	var chars []string
	for _, charID := range loc.Characters {
		char := gs.World.Characters[charID]
		if char == nil {
			continue
		}
		name := char.Name
		if char.JapaneseName != "" {
			name += fmt.Sprintf(" (%s)", char.JapaneseName)
		}
		chars = append(chars, name)
	}
	if len(chars) > 0 {
		parts = append(parts, fmt.Sprintf("Characters: %s.", strings.Join(chars, ", ")))
	}

	return strings.Join(parts, "\n")
}

func inInventory(gs *types.GameState, itemID string) bool {
	for _, id := range gs.Player.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// sortedDirections orders connection keys compass-first so narration is
// stable across runs.
var directionOrder = map[string]int{
	types.North: 0, types.South: 1, types.East: 2, types.West: 3,
	types.Up: 4, types.Down: 5, types.In: 6, types.Out: 7,
}

func sortedDirections(connections map[string]string) []string {
	dirs := make([]string, 0, len(connections))
	for dir := range connections {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		oi, iok := directionOrder[dirs[i]]
		oj, jok := directionOrder[dirs[j]]
		if iok && jok {
			return oi < oj
		}
		if iok != jok {
			return iok
		}
		return dirs[i] < dirs[j]
	})
	return dirs
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// encounterVocabulary routes a word list through the vocabulary tracker and
// returns the formatted block for newly learned words.
func encounterVocabulary(gs *types.GameState, words []types.WordRef, sourceID string) string {
	return vocab.Encounter(gs, words, sourceID)
}
