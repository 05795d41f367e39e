package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Acolyte-Luu/jp-mud/types"
	"github.com/Acolyte-Luu/jp-mud/world"
)

func testState(t *testing.T) *types.GameState {
	t.Helper()
	gs, issues := world.Build(world.Raw{
		Locations: []world.RawLocation{
			{ID: "start", Name: "Village Square", Description: "A quiet square.",
				Connections: map[string]world.Target{"north": {ID: "forest"}}},
			{ID: "forest", Name: "Forest", Description: "Tall trees."},
		},
	})
	if len(issues) != 0 {
		t.Fatalf("fixture issues: %v", issues)
	}
	return gs
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	gs := testState(t)
	gs.Player.Inventory = append(gs.Player.Inventory, "coin")
	gs.VisitedLocations.Add("start")
	history := []Message{
		{Role: "user", Content: "look"},
		{Role: "assistant", Content: "You are in Village Square."},
	}

	gameID, err := store.Save(gs, history)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(gameID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Timestamp == "" {
		t.Error("timestamp missing")
	}
	if len(loaded.ChatHistory) != 2 || loaded.ChatHistory[1].Role != "assistant" {
		t.Errorf("chat history = %v", loaded.ChatHistory)
	}
	if loaded.State.Player.CurrentLocation != "start" {
		t.Errorf("location = %q", loaded.State.Player.CurrentLocation)
	}
	if len(loaded.State.Player.Inventory) != 1 || loaded.State.Player.Inventory[0] != "coin" {
		t.Errorf("inventory = %v", loaded.State.Player.Inventory)
	}
	if !loaded.State.VisitedLocations.Has("start") {
		t.Error("visited locations lost")
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load("10000000-2000-4000-8000-300000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	// A non-uuid id must not be treated as a path.
	if _, err := store.Load("../escape"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_LoadNormalizesNilCollections(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	gameID, err := store.Save(testState(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	// Strip optional fields the way an older save might.
	path := filepath.Join(dir, gameID+".json")
	if err := os.WriteFile(path, []byte(`{"state":{"player":{"current_location":"start"}}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(gameID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.State.World == nil || loaded.State.World.Locations == nil {
		t.Error("world not normalized")
	}
	if loaded.State.Player.Inventory == nil || loaded.State.Flags == nil {
		t.Error("player collections not normalized")
	}
	if loaded.ChatHistory == nil {
		t.Error("chat history not normalized")
	}
}

func TestStore_List(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected no saves, got %d", len(summaries))
	}

	gs := testState(t)
	gs.Player.Stats.Moves = 7
	if _, err := store.Save(gs, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(testState(t), nil); err != nil {
		t.Fatal(err)
	}

	summaries, err = store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	for _, summary := range summaries {
		if summary.Location != "Village Square" {
			t.Errorf("location = %q", summary.Location)
		}
		if summary.GameID == "" || summary.Timestamp == "" {
			t.Errorf("summary incomplete: %+v", summary)
		}
	}
}

func TestStore_ListSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(testState(t), nil); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "not-a-save.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Errorf("summaries = %d, want 1", len(summaries))
	}
}
