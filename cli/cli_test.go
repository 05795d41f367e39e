package cli

import (
	"bytes"
	"context"
	"errors"
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
			{ID: "start", Name: "Village Square", Description: "A quiet square.",
				Connections: map[string]world.Target{"north": {ID: "forest"}}},
			{ID: "forest", Name: "Forest", Description: "Tall trees loom overhead."},
		},
	})
	if len(issues) != 0 {
		t.Fatalf("fixture issues: %v", issues)
	}
	return gs
}

// run feeds script lines to a CLI and returns everything it printed.
func run(t *testing.T, gs *types.GameState, store *save.Store, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	c := New(gs, store)
	c.In = strings.NewReader(strings.Join(script, "\n") + "\n")
	c.Out = &out
	c.Run()
	return out.String()
}

func TestRun_OpeningLook(t *testing.T) {
	output := run(t, testState(t), nil, "/quit")
	if !strings.Contains(output, "Japanese Text Adventure") {
		t.Errorf("banner missing:\n%s", output)
	}
	if !strings.Contains(output, "You are in Village Square") {
		t.Errorf("opening look missing:\n%s", output)
	}
	if !strings.Contains(output, "さようなら") {
		t.Errorf("quit message missing:\n%s", output)
	}
}

func TestRun_MovementAndAgain(t *testing.T) {
	gs := testState(t)
	output := run(t, gs, nil, "north", "again", "/quit")
	if gs.Player.CurrentLocation != "forest" {
		t.Errorf("location = %q", gs.Player.CurrentLocation)
	}
	// Repeating "north" from the forest fails politely.
	if !strings.Contains(output, "You can't go north from here.") {
		t.Errorf("repeat output missing:\n%s", output)
	}
	// Opening look plus two movement commands.
	if gs.Player.Stats.Moves != 3 {
		t.Errorf("moves = %d", gs.Player.Stats.Moves)
	}
}

func TestRun_AgainWithNothingToRepeat(t *testing.T) {
	output := run(t, testState(t), nil, "again", "/quit")
	if !strings.Contains(output, "Nothing to repeat.") {
		t.Errorf("output:\n%s", output)
	}
}

func TestRun_CommentsAndBlankLinesSkipped(t *testing.T) {
	gs := testState(t)
	run(t, gs, nil, "# a note", "", "north", "/quit")
	// Opening look plus the single movement command.
	if gs.Player.Stats.Moves != 2 {
		t.Errorf("moves = %d", gs.Player.Stats.Moves)
	}
}

func TestMeta_SaveLoadRoundTrip(t *testing.T) {
	store, err := save.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	gs := testState(t)
	output := run(t, gs, store, "north", "/save", "/quit")
	if !strings.Contains(output, "Game saved. ID: ") {
		t.Fatalf("save output:\n%s", output)
	}

	summaries, err := store.List()
	if err != nil || len(summaries) != 1 {
		t.Fatalf("summaries = %v, err %v", summaries, err)
	}
	gameID := summaries[0].GameID

	fresh := testState(t)
	output = run(t, fresh, store, "/load "+gameID, "/quit")
	if fresh.Player.CurrentLocation != "forest" {
		t.Errorf("loaded location = %q", fresh.Player.CurrentLocation)
	}
	if !strings.Contains(output, "You are in Forest") {
		t.Errorf("post-load look missing:\n%s", output)
	}
}

func TestMeta_SavesListing(t *testing.T) {
	store, err := save.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	output := run(t, testState(t), store, "/saves", "/quit")
	if !strings.Contains(output, "No saved games.") {
		t.Errorf("output:\n%s", output)
	}

	output = run(t, testState(t), store, "/save", "/saves", "/quit")
	if !strings.Contains(output, "Village Square") {
		t.Errorf("listing missing location:\n%s", output)
	}
}

func TestMeta_LoadRequiresID(t *testing.T) {
	store, err := save.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	output := run(t, testState(t), store, "/load", "/quit")
	if !strings.Contains(output, "Usage: /load <game-id>") {
		t.Errorf("output:\n%s", output)
	}
}

func TestMeta_Unknown(t *testing.T) {
	output := run(t, testState(t), nil, "/dance", "/quit")
	if !strings.Contains(output, "Unknown command: /dance") {
		t.Errorf("output:\n%s", output)
	}
}

func TestMeta_SaveWithoutStore(t *testing.T) {
	output := run(t, testState(t), nil, "/save", "/quit")
	if !strings.Contains(output, "Saving is not available.") {
		t.Errorf("output:\n%s", output)
	}
}

type stubNarrator struct {
	text string
	err  error
}

func (s stubNarrator) Narrate(ctx context.Context, input, scene string) (string, error) {
	return s.text, s.err
}

func TestStep_NarratorHandlesUnrecognized(t *testing.T) {
	gs := testState(t)
	var out bytes.Buffer
	c := New(gs, nil)
	c.Out = &out
	c.Narrator = stubNarrator{text: "You admire the scenery. 景色 (けしき) means scenery."}
	c.Scene = func(*types.GameState) string { return "scene" }

	c.step("admire the view")
	if !strings.Contains(out.String(), "Command not recognized. You admire the scenery.") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestStep_NarratorErrorFallsBackToParserMessage(t *testing.T) {
	gs := testState(t)
	var out bytes.Buffer
	c := New(gs, nil)
	c.Out = &out
	c.Narrator = stubNarrator{err: errors.New("offline")}
	c.Scene = func(*types.GameState) string { return "scene" }

	c.step("admire the view")
	if !strings.Contains(out.String(), "I don't understand") {
		t.Errorf("output:\n%s", out.String())
	}
}
