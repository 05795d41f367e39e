package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/Acolyte-Luu/jp-mud/types"
	"github.com/Acolyte-Luu/jp-mud/world"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// toGoValue converts a Lua value to a Go value recursively.
func toGoValue(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f)
		}
		return f
	case *lua.LNilType:
		return nil
	case lua.LString:
		return string(val)
	case *lua.LTable:
		maxN := val.MaxN()
		if maxN > 0 {
			arr := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				arr = append(arr, toGoValue(val.RawGetInt(i)))
			}
			return arr
		}
		m := map[string]any{}
		val.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				m[string(ks)] = toGoValue(v)
			}
		})
		return m
	default:
		return nil
	}
}

func toStringMap(tbl *lua.LTable) map[string]string {
	if tbl == nil {
		return nil
	}
	m := map[string]string{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			if vs, ok := v.(lua.LString); ok {
				m[string(ks)] = string(vs)
			}
		}
	})
	return m
}

func toAnyMap(tbl *lua.LTable) map[string]any {
	if tbl == nil {
		return nil
	}
	m := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		if ks, ok := k.(lua.LString); ok {
			m[string(ks)] = toGoValue(v)
		}
	})
	return m
}

func toStringSlice(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

func toWordRefs(tbl *lua.LTable) []types.WordRef {
	if tbl == nil {
		return nil
	}
	var out []types.WordRef
	for i := 1; i <= tbl.MaxN(); i++ {
		wordTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		out = append(out, types.WordRef{
			Japanese:        getString(wordTbl, "japanese"),
			English:         getString(wordTbl, "english"),
			Reading:         getString(wordTbl, "reading"),
			PartOfSpeech:    getString(wordTbl, "part_of_speech"),
			ExampleSentence: getString(wordTbl, "example_sentence"),
			Notes:           getString(wordTbl, "notes"),
		})
	}
	return out
}

func toDialogueLine(tbl *lua.LTable) *types.DialogueLine {
	if tbl == nil {
		return nil
	}
	return &types.DialogueLine{
		Response:         getString(tbl, "response"),
		JapaneseResponse: getString(tbl, "japanese_response"),
	}
}

func toDialogues(tbl *lua.LTable) map[string]types.DialogueLine {
	if tbl == nil {
		return nil
	}
	m := map[string]types.DialogueLine{}
	tbl.ForEach(func(k, v lua.LValue) {
		topic, ok := k.(lua.LString)
		if !ok {
			return
		}
		if lineTbl, ok := v.(*lua.LTable); ok {
			if line := toDialogueLine(lineTbl); line != nil {
				m[string(topic)] = *line
			}
		}
	})
	return m
}

func toQuestDialogues(tbl *lua.LTable) map[string]map[string]types.DialogueLine {
	if tbl == nil {
		return nil
	}
	m := map[string]map[string]types.DialogueLine{}
	tbl.ForEach(func(k, v lua.LValue) {
		questID, ok := k.(lua.LString)
		if !ok {
			return
		}
		if stateTbl, ok := v.(*lua.LTable); ok {
			m[string(questID)] = toDialogues(stateTbl)
		}
	})
	return m
}

// compile converts collected Lua tables into the raw world payload.
// Duplicate ids within a section are a template authoring error.
func compile(coll *collector) (world.Raw, error) {
	var raw world.Raw

	if err := checkDuplicates(coll); err != nil {
		return raw, err
	}

	for _, def := range coll.locations {
		tbl := def.table
		conns := map[string]world.Target{}
		for dir, target := range toStringMap(getTable(tbl, "connections")) {
			conns[dir] = world.Target{ID: target}
		}
		raw.Locations = append(raw.Locations, world.RawLocation{
			ID:                  def.id,
			Name:                getString(tbl, "name"),
			JapaneseName:        getString(tbl, "japanese_name"),
			Description:         getString(tbl, "description"),
			JapaneseDescription: getString(tbl, "japanese_description"),
			Connections:         conns,
			Vocabulary:          toWordRefs(getTable(tbl, "vocabulary")),
			RequiresKey:         getString(tbl, "requires_key"),
			QuestTriggers:       toStringSlice(getTable(tbl, "quest_triggers")),
			Hidden:              getBool(tbl, "hidden", false),
		})
	}

	for _, def := range coll.characters {
		tbl := def.table
		raw.Characters = append(raw.Characters, world.RawCharacter{
			ID:                  def.id,
			Name:                getString(tbl, "name"),
			JapaneseName:        getString(tbl, "japanese_name"),
			Description:         getString(tbl, "description"),
			JapaneseDescription: getString(tbl, "japanese_description"),
			Location:            getString(tbl, "location"),
			Dialogues:           toDialogues(getTable(tbl, "dialogues")),
			Vocabulary:          toWordRefs(getTable(tbl, "vocabulary")),
			Items:               toStringSlice(getTable(tbl, "items")),
			QuestIDs:            toStringSlice(getTable(tbl, "quest_ids")),
			QuestDialogues:      toQuestDialogues(getTable(tbl, "quest_dialogues")),
		})
	}

	for _, def := range coll.items {
		tbl := def.table
		canBeTaken := getBool(tbl, "can_be_taken", true)
		raw.Items = append(raw.Items, world.RawItem{
			ID:                  def.id,
			Name:                getString(tbl, "name"),
			JapaneseName:        getString(tbl, "japanese_name"),
			Description:         getString(tbl, "description"),
			JapaneseDescription: getString(tbl, "japanese_description"),
			Type:                getString(tbl, "type"),
			Location:            getString(tbl, "location"),
			Properties:          toAnyMap(getTable(tbl, "properties")),
			Vocabulary:          toWordRefs(getTable(tbl, "vocabulary")),
			CanBeTaken:          &canBeTaken,
			Hidden:              getBool(tbl, "hidden", false),
			RelatedQuestID:      getString(tbl, "related_quest_id"),
		})
	}

	for _, def := range coll.vocabulary {
		tbl := def.table
		raw.Vocabulary = append(raw.Vocabulary, world.RawVocab{
			ID:              def.id,
			Japanese:        getString(tbl, "japanese"),
			English:         getString(tbl, "english"),
			Reading:         getString(tbl, "reading"),
			PartOfSpeech:    getString(tbl, "part_of_speech"),
			ExampleSentence: getString(tbl, "example_sentence"),
			Notes:           getString(tbl, "notes"),
			JLPTLevel:       getInt(tbl, "jlpt_level"),
		})
	}

	for _, def := range coll.quests {
		tbl := def.table
		raw.Quests = append(raw.Quests, world.RawQuest{
			ID:                  def.id,
			Title:               getString(tbl, "title"),
			JapaneseTitle:       getString(tbl, "japanese_title"),
			Description:         getString(tbl, "description"),
			JapaneseDescription: getString(tbl, "japanese_description"),
			Objectives:          compileObjectives(getTable(tbl, "objectives")),
			Rewards:             compileRewards(getTable(tbl, "rewards")),
			PrerequisiteQuests:  toStringSlice(getTable(tbl, "prerequisite_quests")),
			StartLocation:       getString(tbl, "start_location"),
			CompletionLocation:  getString(tbl, "completion_location"),
			StartDialogue:       toDialogueLine(getTable(tbl, "start_dialogue")),
			CompletionDialogue:  toDialogueLine(getTable(tbl, "completion_dialogue")),
			Difficulty:          getInt(tbl, "difficulty"),
			JLPTLevel:           getInt(tbl, "jlpt_level"),
			Hidden:              getBool(tbl, "hidden", false),
		})
	}

	return raw, nil
}

func compileObjectives(tbl *lua.LTable) []world.RawObjective {
	if tbl == nil {
		return nil
	}
	var out []world.RawObjective
	for i := 1; i <= tbl.MaxN(); i++ {
		objTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		out = append(out, world.RawObjective{
			ID:                  getString(objTbl, "id"),
			Type:                getString(objTbl, "type"),
			Description:         getString(objTbl, "description"),
			JapaneseDescription: getString(objTbl, "japanese_description"),
			TargetID:            getString(objTbl, "target_id"),
			Count:               getInt(objTbl, "count"),
			Hints:               toStringSlice(getTable(objTbl, "hints")),
			JapaneseHints:       toStringSlice(getTable(objTbl, "japanese_hints")),
			Vocabulary:          toWordRefs(getTable(objTbl, "vocabulary")),
			Properties:          toAnyMap(getTable(objTbl, "properties")),
		})
	}
	return out
}

func compileRewards(tbl *lua.LTable) []world.RawReward {
	if tbl == nil {
		return nil
	}
	var out []world.RawReward
	for i := 1; i <= tbl.MaxN(); i++ {
		rewardTbl, ok := tbl.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		out = append(out, world.RawReward{
			Type:                getString(rewardTbl, "type"),
			Description:         getString(rewardTbl, "description"),
			JapaneseDescription: getString(rewardTbl, "japanese_description"),
			TargetID:            getString(rewardTbl, "target_id"),
			Quantity:            getInt(rewardTbl, "quantity"),
			Vocabulary:          toWordRefs(getTable(rewardTbl, "vocabulary")),
		})
	}
	return out
}

func checkDuplicates(coll *collector) error {
	sections := []struct {
		name string
		defs []rawDef
	}{
		{"location", coll.locations},
		{"character", coll.characters},
		{"item", coll.items},
		{"vocab", coll.vocabulary},
		{"quest", coll.quests},
	}
	for _, section := range sections {
		seen := map[string]bool{}
		for _, def := range section.defs {
			if seen[def.id] {
				return fmt.Errorf("duplicate %s id %q", section.name, def.id)
			}
			seen[def.id] = true
		}
	}
	return nil
}
