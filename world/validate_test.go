package world

import (
	"strings"
	"testing"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// validWorld returns a small world that passes validation unchanged.
func validWorld() *types.World {
	return &types.World{
		Locations: map[string]*types.Location{
			"start": {
				ID:          "start",
				Name:        "Starting Point",
				Description: "The beginning.",
				Connections: map[string]string{"north": "forest"},
				Characters:  []string{},
				Items:       []string{},
			},
			"forest": {
				ID:          "forest",
				Name:        "Forest",
				Description: "Tall trees.",
				Connections: map[string]string{"south": "start"},
				Characters:  []string{},
				Items:       []string{},
			},
		},
		Characters: map[string]*types.Character{},
		Items:      map[string]*types.Item{},
		Vocabulary: map[string]*types.VocabularyEntry{},
		Quests:     map[string]*types.Quest{},
	}
}

func TestValidate_ValidWorldUnchanged(t *testing.T) {
	w := validWorld()
	report := Validate(w)
	if report.Count() != 0 {
		t.Fatalf("expected no fixes for a valid world, got: %v", report.Fixes)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	w := &types.World{
		Locations: map[string]*types.Location{
			"cave": {ID: "cave", Connections: map[string]string{"east": "lake"}},
		},
	}
	first := Validate(w)
	if first.Count() == 0 {
		t.Fatal("expected fixes on first pass")
	}
	second := Validate(w)
	if second.Count() != 0 {
		t.Fatalf("second pass should be a no-op, got: %v", second.Fixes)
	}
}

func TestValidate_FillsMissingFields(t *testing.T) {
	w := &types.World{
		Locations: map[string]*types.Location{
			"cave": {},
		},
	}
	Validate(w)

	cave := w.Locations["cave"]
	if cave.ID != "cave" {
		t.Errorf("id not reconciled with map key, got %q", cave.ID)
	}
	if cave.Name != "Unnamed Area (cave)" {
		t.Errorf("unexpected default name %q", cave.Name)
	}
	if cave.Description != "An undefined area." {
		t.Errorf("unexpected default description %q", cave.Description)
	}
	if cave.Connections == nil || cave.Items == nil || cave.Characters == nil {
		t.Error("nil collections not initialized")
	}
}

func TestValidate_PlaceholderForMissingTarget(t *testing.T) {
	w := validWorld()
	w.Locations["forest"].Connections["east"] = "lake"

	Validate(w)

	lake, ok := w.Locations["lake"]
	if !ok {
		t.Fatal("placeholder for missing target not created")
	}
	if lake.Name != "Unknown Area (lake)" {
		t.Errorf("unexpected placeholder name %q", lake.Name)
	}
	if lake.Description != "This area seems incomplete or lost to time." {
		t.Errorf("unexpected placeholder description %q", lake.Description)
	}
	if lake.Connections["west"] != "forest" {
		t.Errorf("reverse connection not wired, got %v", lake.Connections)
	}
}

func TestValidate_AddsReverseConnection(t *testing.T) {
	w := validWorld()
	delete(w.Locations["forest"].Connections, "south")

	Validate(w)

	if got := w.Locations["forest"].Connections["south"]; got != "start" {
		t.Errorf("reverse connection = %q, want %q", got, "start")
	}
}

func TestValidate_CorrectsWrongReverseConnection(t *testing.T) {
	w := validWorld()
	w.Locations["forest"].Connections["south"] = "forest"

	Validate(w)

	if got := w.Locations["forest"].Connections["south"]; got != "start" {
		t.Errorf("reverse connection = %q, want %q", got, "start")
	}
}

func TestValidate_CreatesStart(t *testing.T) {
	w := &types.World{
		Locations: map[string]*types.Location{
			"cave": {ID: "cave", Name: "Cave", Description: "Dark.", Connections: map[string]string{}},
		},
	}
	Validate(w)

	start, ok := w.Locations["start"]
	if !ok {
		t.Fatal("start location not created")
	}
	if start.Name != "Starting Point" || start.JapaneseName != "開始地点" {
		t.Errorf("unexpected start naming: %q / %q", start.Name, start.JapaneseName)
	}
	if len(start.Connections) == 0 {
		t.Error("start left without connections")
	}
}

func TestValidate_EmptyWorldGetsDefaultNeighborhood(t *testing.T) {
	w := &types.World{}
	Validate(w)

	start := w.Locations["start"]
	if start == nil {
		t.Fatal("start not created for empty world")
	}
	want := map[string]string{"north": "forest", "east": "shop", "west": "house", "south": "river"}
	for dir, target := range want {
		if start.Connections[dir] != target {
			t.Errorf("start.Connections[%q] = %q, want %q", dir, start.Connections[dir], target)
		}
		neighbor := w.Locations[target]
		if neighbor == nil {
			t.Fatalf("default neighbor %q not created", target)
			continue
		}
		if neighbor.Connections[Opposite(dir)] != "start" {
			t.Errorf("%q missing reciprocal connection back to start", target)
		}
	}
}

func TestValidate_RemovesDanglingRefs(t *testing.T) {
	w := validWorld()
	w.Items["sword"] = &types.Item{ID: "sword", Name: "Sword"}
	w.Locations["forest"].Items = []string{"sword", "ghost_item"}
	w.Locations["forest"].Characters = []string{"ghost_char"}

	Validate(w)

	forest := w.Locations["forest"]
	if len(forest.Items) != 1 || forest.Items[0] != "sword" {
		t.Errorf("items = %v, want [sword]", forest.Items)
	}
	if len(forest.Characters) != 0 {
		t.Errorf("characters = %v, want empty", forest.Characters)
	}
}

func TestValidate_ReconnectsOrphans(t *testing.T) {
	w := validWorld()
	w.Locations["island"] = &types.Location{
		ID: "island", Name: "Island", Description: "Isolated.",
		Connections: map[string]string{},
	}

	Validate(w)

	start := w.Locations["start"]
	island := w.Locations["island"]
	// North is taken by forest, so the island claims east.
	if start.Connections["east"] != "island" {
		t.Errorf("start connections = %v, want east -> island", start.Connections)
	}
	if island.Connections["west"] != "start" {
		t.Errorf("island connections = %v, want west -> start", island.Connections)
	}
}

func TestValidate_OrphanSlotDeterministic(t *testing.T) {
	build := func() *types.World {
		w := validWorld()
		w.Locations["isle_a"] = &types.Location{ID: "isle_a", Name: "A", Description: "a", Connections: map[string]string{}}
		w.Locations["isle_b"] = &types.Location{ID: "isle_b", Name: "B", Description: "b", Connections: map[string]string{}}
		return w
	}
	w1, w2 := build(), build()
	Validate(w1)
	Validate(w2)
	for dir, target := range w1.Locations["start"].Connections {
		if w2.Locations["start"].Connections[dir] != target {
			t.Fatalf("orphan reconnection not deterministic: %v vs %v",
				w1.Locations["start"].Connections, w2.Locations["start"].Connections)
		}
	}
}

func TestValidate_ReportMentionsRepairs(t *testing.T) {
	w := &types.World{
		Locations: map[string]*types.Location{"cave": {}},
	}
	report := Validate(w)
	found := false
	for _, fix := range report.Fixes {
		if strings.Contains(fix, "cave") {
			found = true
		}
	}
	if !found {
		t.Errorf("report does not mention repaired location: %v", report.Fixes)
	}
}

func TestOpposite(t *testing.T) {
	cases := map[string]string{
		"north": "south", "south": "north",
		"east": "west", "west": "east",
		"up": "down", "down": "up",
		"in": "out", "out": "in",
		"sideways": "south",
	}
	for dir, want := range cases {
		if got := Opposite(dir); got != want {
			t.Errorf("Opposite(%q) = %q, want %q", dir, got, want)
		}
	}
}
