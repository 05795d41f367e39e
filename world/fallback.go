package world

import (
	"fmt"
	"strings"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// StartID is the id the player always begins at. Validation guarantees the
// location exists.
const StartID = "start"

func startLocation() *types.Location {
	return &types.Location{
		ID:                  StartID,
		Name:                "Starting Point",
		JapaneseName:        "開始地点",
		Description:         "The beginning of your adventure.",
		JapaneseDescription: "冒険の始まり。",
		Connections:         map[string]string{},
		Characters:          []string{},
		Items:               []string{},
	}
}

// placeholder stands in for a location that was referenced but never
// defined by the generator.
func placeholder(id string) *types.Location {
	return &types.Location{
		ID:                  id,
		Name:                fmt.Sprintf("Unknown Area (%s)", id),
		JapaneseName:        fmt.Sprintf("不明なエリア (%s)", id),
		Description:         "This area seems incomplete or lost to time.",
		JapaneseDescription: "不完全か、時の流れに失われたようなエリアです。",
		Connections:         map[string]string{},
		Characters:          []string{},
		Items:               []string{},
	}
}

// defaultNeighbor backs one of the stock connections wired to an otherwise
// isolated start location.
func defaultNeighbor(id string) *types.Location {
	title := id
	if len(id) > 0 {
		title = strings.ToUpper(id[:1]) + id[1:]
	}
	return &types.Location{
		ID:          id,
		Name:        title,
		Description: fmt.Sprintf("The %s area.", id),
		Connections: map[string]string{},
		Characters:  []string{},
		Items:       []string{},
	}
}

// FallbackLocation is the runtime stand-in for a location id that turns up
// dangling after initialization, for example in a hand-edited save.
func FallbackLocation(id string) *types.Location {
	if id == StartID {
		return startLocation()
	}
	return &types.Location{
		ID:                  id,
		Name:                fmt.Sprintf("Area %s", id),
		JapaneseName:        fmt.Sprintf("エリア %s", id),
		Description:         "This area seems incomplete or lost to time.",
		JapaneseDescription: "不完全か、時の流れに失われたようなエリアです。",
		Connections:         map[string]string{},
		Characters:          []string{},
		Items:               []string{},
	}
}

// EnsureLocation resolves id in the world, synthesizing and registering a
// fallback if the id dangles. Never returns nil.
func EnsureLocation(gs *types.GameState, id string) *types.Location {
	if loc, ok := gs.World.Locations[id]; ok && loc != nil {
		return loc
	}
	loc := FallbackLocation(id)
	gs.World.Locations[id] = loc
	return loc
}
