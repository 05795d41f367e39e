package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/Acolyte-Luu/jp-mud/save"
	"github.com/Acolyte-Luu/jp-mud/types"
	"github.com/Acolyte-Luu/jp-mud/world"
)

func testState(t *testing.T) *types.GameState {
	t.Helper()
	gs, issues := world.Build(world.Raw{
		Locations: []world.RawLocation{
			{ID: "start", Name: "Village Square", JapaneseName: "村の広場",
				Description: "A quiet square.",
				Connections: map[string]world.Target{"north": {ID: "forest"}}},
			{ID: "forest", Name: "Forest", Description: "Tall trees."},
		},
	})
	if len(issues) != 0 {
		t.Fatalf("fixture issues: %v", issues)
	}
	return gs
}

func TestHistory_Navigation(t *testing.T) {
	h := NewHistory(3)
	h.Push("look")
	h.Push("north")
	h.Push("north") // consecutive duplicate dropped
	h.Push("take coin")

	if got, _ := h.Prev(); got != "take coin" {
		t.Errorf("Prev = %q", got)
	}
	if got, _ := h.Prev(); got != "north" {
		t.Errorf("Prev = %q", got)
	}
	if got, _ := h.Next(); got != "take coin" {
		t.Errorf("Next = %q", got)
	}
	if _, ok := h.Next(); ok {
		t.Error("Next past newest should return false")
	}
	// Cursor reset: Prev starts from the newest again.
	if got, _ := h.Prev(); got != "take coin" {
		t.Errorf("Prev after reset = %q", got)
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c")
	if got, _ := h.Prev(); got != "c" {
		t.Errorf("Prev = %q", got)
	}
	if got, _ := h.Prev(); got != "b" {
		t.Errorf("Prev = %q", got)
	}
	if got, _ := h.Prev(); got != "b" {
		t.Errorf("Prev at oldest = %q", got)
	}
}

func TestClassifyLine(t *testing.T) {
	cases := []struct {
		line string
		want lineKind
	}{
		{"You are in Village Square (村の広場).", kindNarrative},
		{"You see: coin, old key", kindYouSee},
		{"Characters: Elder", kindYouSee},
		{"Exits: North (Forest)", kindExits},
		{"There are no obvious exits.", kindExits},
		{"Quest started: First Steps", kindQuest},
		{"New quest available: First Steps", kindQuest},
		{"Active Quests:", kindQuest},
		{"Grammar Challenge: Ask politely", kindQuest},
		{"[Vocabulary]", kindVocab},
		{"- 森 (もり): forest", kindVocab},
		{"You can't go north from here.", kindError},
		{"You don't see that here.", kindError},
		{"I don't understand 'xyzzy'. Type 'help' for a list of commands.", kindError},
	}
	for _, tc := range cases {
		if got := classifyLine(tc.line); got != tc.want {
			t.Errorf("classifyLine(%q) = %d, want %d", tc.line, got, tc.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	wrapped := wordWrap("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if short := wordWrap("short", 80); short != "short" {
		t.Errorf("short text altered: %q", short)
	}
}

func TestStep_RunsEngineAndRecordsChat(t *testing.T) {
	m := New(testState(t), nil, nil, nil)
	text := m.step("north")
	if !strings.Contains(text, "Forest") {
		t.Errorf("text = %q", text)
	}
	if len(m.chat) != 2 || m.chat[0].Role != "user" || m.chat[1].Role != "assistant" {
		t.Errorf("chat = %v", m.chat)
	}
}

type stubNarrator struct{ text string }

func (s stubNarrator) Narrate(ctx context.Context, input, scene string) (string, error) {
	return s.text, nil
}

func TestStep_NarratesUnrecognized(t *testing.T) {
	narrator := stubNarrator{text: "You hum quietly. 歌 (うた) means song."}
	m := New(testState(t), nil, narrator, func(*types.GameState) string { return "scene" })

	text := m.step("hum a melody")
	if !strings.HasPrefix(text, "Command not recognized. ") || !strings.Contains(text, "歌") {
		t.Errorf("text = %q", text)
	}
}

func TestMeta_SaveAndLoad(t *testing.T) {
	store, err := save.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	m := New(testState(t), store, nil, nil)
	m.step("north")

	output, quit := m.handleMeta("/save")
	if quit || len(output) != 1 || !strings.HasPrefix(output[0], "Game saved. ID: ") {
		t.Fatalf("save output = %v", output)
	}
	gameID := strings.TrimPrefix(output[0], "Game saved. ID: ")

	fresh := New(testState(t), store, nil, nil)
	output, _ = fresh.handleMeta("/load " + gameID)
	if fresh.gs.Player.CurrentLocation != "forest" {
		t.Errorf("loaded location = %q", fresh.gs.Player.CurrentLocation)
	}
	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "Game loaded from "+gameID) ||
		!strings.Contains(joined, "You are in Forest") {
		t.Errorf("load output:\n%s", joined)
	}
}

func TestMeta_QuitAndUnknown(t *testing.T) {
	m := New(testState(t), nil, nil, nil)

	output, quit := m.handleMeta("/quit")
	if !quit || !strings.Contains(output[0], "さようなら") {
		t.Errorf("quit = %v %v", output, quit)
	}

	output, quit = m.handleMeta("/jump")
	if quit || !strings.Contains(output[0], "Unknown command: /jump") {
		t.Errorf("unknown = %v %v", output, quit)
	}
}

func TestMeta_StateDump(t *testing.T) {
	m := New(testState(t), nil, nil, nil)
	output, _ := m.handleMeta("/state")
	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "Location: start") ||
		!strings.Contains(joined, "Words learned: 0") {
		t.Errorf("state output:\n%s", joined)
	}
}

func TestRenderStatusBar(t *testing.T) {
	m := New(testState(t), nil, nil, nil)
	m.width = 120

	bar := m.renderStatusBar()
	if !strings.Contains(bar, "Village Square 村の広場") ||
		!strings.Contains(bar, "Exits: north") ||
		!strings.Contains(bar, "Moves:0") {
		t.Errorf("bar = %q", bar)
	}
}
