package world

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// Issue records a payload element Build had to drop or adjust. Issues are
// diagnostics, never errors: a broken quest block must not prevent the rest
// of the world from loading.
type Issue struct {
	Section string
	Ref     string
	Err     error
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %q: %v", i.Section, i.Ref, i.Err)
}

var validObjectiveTypes = map[types.ObjectiveType]bool{
	types.ObjVisitLocation:    true,
	types.ObjCollectItem:      true,
	types.ObjTalkToNPC:        true,
	types.ObjUseItem:          true,
	types.ObjLearnVocabulary:  true,
	types.ObjGrammarChallenge: true,
	types.ObjCustom:           true,
}

var validRewardTypes = map[types.RewardType]bool{
	types.RewardItem:            true,
	types.RewardUnlockLocation:  true,
	types.RewardLearnSkill:      true,
	types.RewardVocabularyBoost: true,
	types.RewardCustom:          true,
}

var validItemTypes = map[types.ItemType]bool{
	types.ItemGeneral: true,
	types.ItemKey:     true,
	types.ItemWeapon:  true,
	types.ItemArmor:   true,
	types.ItemFood:    true,
	types.ItemScroll:  true,
	types.ItemBook:    true,
	types.ItemQuest:   true,
}

// Build turns a raw payload into a playable, validated game state. Missing
// ids are generated, entity placement is derived from each entity's
// "location" field, unparseable quests are skipped and reported, and the
// result always passes Validate.
func Build(raw Raw) (*types.GameState, []Issue) {
	w := &types.World{
		Locations:  map[string]*types.Location{},
		Characters: map[string]*types.Character{},
		Items:      map[string]*types.Item{},
		Vocabulary: map[string]*types.VocabularyEntry{},
		Quests:     map[string]*types.Quest{},
	}
	var issues []Issue

	for _, rl := range raw.Locations {
		id := rl.ID
		if id == "" {
			id = fmt.Sprintf("loc_%d", len(w.Locations))
		}
		conns := map[string]string{}
		for dir, target := range rl.Connections {
			conns[dir] = target.ID
		}
		w.Locations[id] = &types.Location{
			ID:                  id,
			Name:                rl.Name,
			JapaneseName:        rl.JapaneseName,
			Description:         rl.Description,
			JapaneseDescription: rl.JapaneseDescription,
			Connections:         conns,
			Characters:          []string{},
			Items:               []string{},
			Vocabulary:          rl.Vocabulary,
			RequiresKey:         rl.RequiresKey,
			QuestTriggers:       rl.QuestTriggers,
			Hidden:              rl.Hidden,
		}
	}

	for _, rc := range raw.Characters {
		id := rc.ID
		if id == "" {
			id = fmt.Sprintf("char_%d", len(w.Characters))
		}
		w.Characters[id] = &types.Character{
			ID:                  id,
			Name:                rc.Name,
			JapaneseName:        rc.JapaneseName,
			Description:         rc.Description,
			JapaneseDescription: rc.JapaneseDescription,
			Dialogues:           rc.Dialogues,
			Vocabulary:          rc.Vocabulary,
			Items:               rc.Items,
			QuestIDs:            rc.QuestIDs,
			QuestDialogues:      rc.QuestDialogues,
		}
		place(w, rc.Location, id, func(loc *types.Location) {
			loc.Characters = append(loc.Characters, id)
		})
	}

	for _, ri := range raw.Items {
		id := ri.ID
		if id == "" {
			id = fmt.Sprintf("item_%d", len(w.Items))
		}
		itemType := types.ItemType(ri.Type)
		if itemType == "" {
			itemType = types.ItemGeneral
		}
		if !validItemTypes[itemType] {
			issues = append(issues, Issue{Section: "items", Ref: id,
				Err: fmt.Errorf("unknown item type %q, using general", ri.Type)})
			itemType = types.ItemGeneral
		}
		canBeTaken := true
		if ri.CanBeTaken != nil {
			canBeTaken = *ri.CanBeTaken
		}
		w.Items[id] = &types.Item{
			ID:                  id,
			Name:                ri.Name,
			JapaneseName:        ri.JapaneseName,
			Description:         ri.Description,
			JapaneseDescription: ri.JapaneseDescription,
			Type:                itemType,
			Properties:          ri.Properties,
			Vocabulary:          ri.Vocabulary,
			CanBeTaken:          canBeTaken,
			Hidden:              ri.Hidden,
			RelatedQuestID:      ri.RelatedQuestID,
		}
		place(w, ri.Location, id, func(loc *types.Location) {
			loc.Items = append(loc.Items, id)
		})
	}

	for _, rv := range raw.Vocabulary {
		id := rv.ID
		if id == "" {
			id = fmt.Sprintf("vocab_%d", len(w.Vocabulary))
		}
		w.Vocabulary[id] = &types.VocabularyEntry{
			Japanese:        rv.Japanese,
			English:         rv.English,
			Reading:         rv.Reading,
			PartOfSpeech:    rv.PartOfSpeech,
			ExampleSentence: rv.ExampleSentence,
			Notes:           rv.Notes,
			JLPTLevel:       rv.JLPTLevel,
		}
	}

	for _, rq := range raw.Quests {
		quest, err := buildQuest(rq, len(w.Quests))
		if err != nil {
			issues = append(issues, Issue{Section: "quests", Ref: rq.ID, Err: err})
			continue
		}
		w.Quests[quest.ID] = quest
	}

	for _, issue := range issues {
		slog.Warn("world build issue", "section", issue.Section, "ref", issue.Ref, "err", issue.Err)
	}

	report := Validate(w)
	if report.Count() > 0 {
		slog.Info("built world needed repairs", "fixes", report.Count())
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return &types.GameState{
		World: w,
		Player: &types.Player{
			CurrentLocation:   StartID,
			Inventory:         []string{},
			LearnedVocabulary: map[string]types.LearnedVocabulary{},
			Knowledge:         map[string]any{},
			JLPTLevel:         5,
			LastCommandTime:   now,
		},
		Flags: map[string]bool{},
		Metadata: map[string]any{
			"version":       "0.1.0",
			"creation_time": now,
		},
	}, issues
}

// place appends an entity id to its declared location's member list. An
// empty location defaults to start; an unknown one is left for validation
// to report via the membership prune.
func place(w *types.World, locationID, entityID string, add func(*types.Location)) {
	if locationID == "" {
		locationID = StartID
	}
	loc, ok := w.Locations[locationID]
	if !ok {
		slog.Warn("entity placed in unknown location", "entity", entityID, "location", locationID)
		return
	}
	add(loc)
}

func buildQuest(rq RawQuest, ordinal int) (*types.Quest, error) {
	id := rq.ID
	if id == "" {
		id = fmt.Sprintf("quest_%d", ordinal)
	}

	objectives := make([]*types.QuestObjective, 0, len(rq.Objectives))
	for i, ro := range rq.Objectives {
		objType := types.ObjectiveType(ro.Type)
		if objType == "" {
			objType = types.ObjCustom
		}
		if !validObjectiveTypes[objType] {
			return nil, fmt.Errorf("objective %d has unknown type %q", i, ro.Type)
		}
		objID := ro.ID
		if objID == "" {
			objID = fmt.Sprintf("obj_%d", i)
		}
		count := ro.Count
		if count <= 0 {
			count = 1
		}
		objectives = append(objectives, &types.QuestObjective{
			ID:                  objID,
			Type:                objType,
			Description:         ro.Description,
			JapaneseDescription: ro.JapaneseDescription,
			TargetID:            ro.TargetID,
			Count:               count,
			Hints:               ro.Hints,
			JapaneseHints:       ro.JapaneseHints,
			Vocabulary:          ro.Vocabulary,
			Properties:          ro.Properties,
		})
	}

	rewards := make([]*types.QuestReward, 0, len(rq.Rewards))
	for i, rr := range rq.Rewards {
		rewardType := types.RewardType(rr.Type)
		if rewardType == "" {
			rewardType = types.RewardCustom
		}
		if !validRewardTypes[rewardType] {
			return nil, fmt.Errorf("reward %d has unknown type %q", i, rr.Type)
		}
		quantity := rr.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		rewards = append(rewards, &types.QuestReward{
			Type:                rewardType,
			Description:         rr.Description,
			JapaneseDescription: rr.JapaneseDescription,
			TargetID:            rr.TargetID,
			Quantity:            quantity,
			Vocabulary:          rr.Vocabulary,
		})
	}

	difficulty := rq.Difficulty
	if difficulty <= 0 {
		difficulty = 1
	}

	return &types.Quest{
		ID:                  id,
		Title:               rq.Title,
		JapaneseTitle:       rq.JapaneseTitle,
		Description:         rq.Description,
		JapaneseDescription: rq.JapaneseDescription,
		State:               types.QuestNotStarted,
		Objectives:          objectives,
		Rewards:             rewards,
		PrerequisiteQuests:  rq.PrerequisiteQuests,
		StartLocation:       rq.StartLocation,
		CompletionLocation:  rq.CompletionLocation,
		StartDialogue:       rq.StartDialogue,
		CompletionDialogue:  rq.CompletionDialogue,
		Difficulty:          difficulty,
		JLPTLevel:           rq.JLPTLevel,
		Hidden:              rq.Hidden,
	}, nil
}
