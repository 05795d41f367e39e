// Package world builds and repairs game worlds. The validator is a total
// function: every structural defect in generated content is repaired in
// place and logged, never reported as a fatal error, because the upstream
// generator is an LLM and its output is routinely incomplete.
package world

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// Report collects the repairs a validation pass performed. A second pass
// over an already-valid world produces an empty report.
type Report struct {
	Fixes []string
}

// Count returns the number of repairs performed.
func (r *Report) Count() int { return len(r.Fixes) }

func (r *Report) fix(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.Fixes = append(r.Fixes, msg)
	slog.Warn("world repair", "fix", msg)
}

var opposites = map[string]string{
	types.North: types.South,
	types.South: types.North,
	types.East:  types.West,
	types.West:  types.East,
	types.Up:    types.Down,
	types.Down:  types.Up,
	types.In:    types.Out,
	types.Out:   types.In,
}

// Opposite returns the reverse of a direction. Unknown directions reverse
// to south.
func Opposite(dir string) string {
	if opp, ok := opposites[dir]; ok {
		return opp
	}
	return types.South
}

// Order in which free slots on "start" are claimed when reconnecting
// orphaned locations.
var slotPriority = []string{
	types.North, types.East, types.West, types.South,
	types.Up, types.Down, types.In, types.Out,
}

// Default neighbors wired to a connectionless start location.
var startDefaults = []struct{ dir, target string }{
	{types.North, "forest"},
	{types.East, "shop"},
	{types.West, "house"},
	{types.South, "river"},
}

// Validate repairs the world in place and returns a report of what changed.
// Each step is idempotent; validating an already-valid world is a no-op.
func Validate(w *types.World) *Report {
	r := &Report{}
	ensureMaps(w)

	referenced := map[string]bool{}

	// Step 1: per-location field defaults, id-key reconciliation, and
	// collection of every id referenced as a connection target.
	for _, id := range sortedKeys(w.Locations) {
		loc := w.Locations[id]
		if loc == nil {
			r.fix("removed nil location entry %q", id)
			delete(w.Locations, id)
			continue
		}
		if loc.ID != id {
			r.fix("location key %q did not match id %q", id, loc.ID)
			loc.ID = id
		}
		if loc.Name == "" {
			r.fix("location %q missing name", id)
			loc.Name = fmt.Sprintf("Unnamed Area (%s)", id)
		}
		if loc.Description == "" {
			r.fix("location %q missing description", id)
			loc.Description = "An undefined area."
		}
		if loc.Connections == nil {
			loc.Connections = map[string]string{}
		}
		if loc.Items == nil {
			loc.Items = []string{}
		}
		if loc.Characters == nil {
			loc.Characters = []string{}
		}
		for _, target := range loc.Connections {
			referenced[target] = true
		}
	}

	// Step 2: synthesize placeholders for referenced-but-missing locations.
	for _, id := range sortedBoolKeys(referenced) {
		if _, ok := w.Locations[id]; ok {
			continue
		}
		r.fix("created placeholder for missing location %q", id)
		w.Locations[id] = placeholder(id)
	}

	// Step 3: make every connection bidirectional. The reverse edge is
	// created when absent and corrected when it points elsewhere.
	for _, id := range sortedKeys(w.Locations) {
		loc := w.Locations[id]
		for _, dir := range sortedMapKeys(loc.Connections) {
			target := w.Locations[loc.Connections[dir]]
			if target == nil {
				// Placeholder creation above should prevent this.
				r.fix("removed connection %s -%s-> %s to unknown target", id, dir, loc.Connections[dir])
				delete(loc.Connections, dir)
				continue
			}
			opp := Opposite(dir)
			if target.Connections == nil {
				target.Connections = map[string]string{}
			}
			if back, ok := target.Connections[opp]; !ok {
				r.fix("added reverse connection %s -%s-> %s", target.ID, opp, id)
				target.Connections[opp] = id
			} else if back != id && target.ID != id {
				r.fix("corrected reverse connection %s -%s-> %s (was %s)", target.ID, opp, id, back)
				target.Connections[opp] = id
			}
		}
	}

	// Step 4: guarantee a connected start location.
	if _, ok := w.Locations[StartID]; !ok {
		r.fix("created missing start location")
		w.Locations[StartID] = startLocation()
	}
	start := w.Locations[StartID]
	if len(start.Connections) == 0 {
		wired := false
		for _, def := range startDefaults {
			if _, ok := w.Locations[def.target]; !ok {
				r.fix("created placeholder %q for default start connection", def.target)
				w.Locations[def.target] = defaultNeighbor(def.target)
			}
			start.Connections[def.dir] = def.target
			target := w.Locations[def.target]
			if target.Connections == nil {
				target.Connections = map[string]string{}
			}
			opp := Opposite(def.dir)
			if _, ok := target.Connections[opp]; !ok {
				target.Connections[opp] = StartID
			}
			wired = true
		}
		if !wired && len(w.Locations) > 1 {
			for _, id := range sortedKeys(w.Locations) {
				if id == StartID {
					continue
				}
				r.fix("connected start to %q", id)
				start.Connections[types.North] = id
				w.Locations[id].Connections[types.South] = StartID
				break
			}
		}
	}

	// Step 5: drop item/character references that resolve to nothing.
	for _, id := range sortedKeys(w.Locations) {
		loc := w.Locations[id]
		loc.Items = pruneRefs(loc.Items, w.Items, func(ref string) {
			r.fix("location %q referenced unknown item %q", id, ref)
		})
		loc.Characters = pruneRefs(loc.Characters, w.Characters, func(ref string) {
			r.fix("location %q referenced unknown character %q", id, ref)
		})
	}

	// Step 6: final safety net. Any non-start location still without
	// connections is wired to start through the first free slot in a fixed
	// priority order (north slot is overwritten if everything is taken).
	for _, id := range sortedKeys(w.Locations) {
		loc := w.Locations[id]
		if id == StartID || len(loc.Connections) > 0 {
			continue
		}
		dir := types.North
		for _, candidate := range slotPriority {
			if _, taken := start.Connections[candidate]; !taken {
				dir = candidate
				break
			}
		}
		r.fix("connected orphaned location %q to start via %s", id, dir)
		start.Connections[dir] = id
		loc.Connections[Opposite(dir)] = StartID
	}

	if r.Count() > 0 {
		slog.Info("world validation completed", "fixes", r.Count())
	}
	return r
}

func ensureMaps(w *types.World) {
	if w.Locations == nil {
		w.Locations = map[string]*types.Location{}
	}
	if w.Characters == nil {
		w.Characters = map[string]*types.Character{}
	}
	if w.Items == nil {
		w.Items = map[string]*types.Item{}
	}
	if w.Vocabulary == nil {
		w.Vocabulary = map[string]*types.VocabularyEntry{}
	}
	if w.Quests == nil {
		w.Quests = map[string]*types.Quest{}
	}
}

func pruneRefs[T any](refs []string, owned map[string]T, onDrop func(string)) []string {
	kept := refs[:0]
	for _, ref := range refs {
		if _, ok := owned[ref]; ok {
			kept = append(kept, ref)
		} else {
			onDrop(ref)
		}
	}
	return kept
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
