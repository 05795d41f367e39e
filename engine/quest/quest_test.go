package quest

import (
	"strings"
	"testing"

	"github.com/Acolyte-Luu/jp-mud/types"
)

func newState() *types.GameState {
	return &types.GameState{
		World: &types.World{
			Locations:  map[string]*types.Location{},
			Characters: map[string]*types.Character{},
			Items:      map[string]*types.Item{},
			Vocabulary: map[string]*types.VocabularyEntry{},
			Quests:     map[string]*types.Quest{},
		},
		Player: &types.Player{
			CurrentLocation:   "start",
			Inventory:         []string{},
			LearnedVocabulary: map[string]types.LearnedVocabulary{},
			Knowledge:         map[string]any{},
		},
		Flags:    map[string]bool{},
		Metadata: map[string]any{},
	}
}

func addQuest(gs *types.GameState, q *types.Quest) {
	if q.State == "" {
		q.State = types.QuestNotStarted
	}
	gs.World.Quests[q.ID] = q
}

func TestCheckTriggers_VisitLocation(t *testing.T) {
	gs := newState()
	gs.World.Locations["forest"] = &types.Location{
		ID: "forest", QuestTriggers: []string{"gather"},
	}
	addQuest(gs, &types.Quest{ID: "gather", Title: "Gather Herbs", JapaneseTitle: "薬草集め"})

	messages := CheckTriggers(gs, ActionVisitLocation, "forest")
	if len(messages) != 1 || messages[0] != "New quest available: Gather Herbs - 薬草集め" {
		t.Fatalf("messages = %v", messages)
	}
	if !gs.QuestLog.Available.Has("gather") {
		t.Error("quest not made available")
	}

	// Re-triggering announces nothing.
	if messages := CheckTriggers(gs, ActionVisitLocation, "forest"); len(messages) != 0 {
		t.Errorf("re-trigger produced %v", messages)
	}
}

func TestCheckTriggers_PrerequisitesBlock(t *testing.T) {
	gs := newState()
	gs.World.Locations["forest"] = &types.Location{
		ID: "forest", QuestTriggers: []string{"advanced"},
	}
	addQuest(gs, &types.Quest{ID: "advanced", Title: "Advanced",
		PrerequisiteQuests: []string{"basics"}})

	if messages := CheckTriggers(gs, ActionVisitLocation, "forest"); len(messages) != 0 {
		t.Fatalf("prerequisite ignored: %v", messages)
	}

	gs.QuestLog.Completed.Add("basics")
	if messages := CheckTriggers(gs, ActionVisitLocation, "forest"); len(messages) != 1 {
		t.Fatalf("quest not offered once prerequisite done: %v", messages)
	}
}

func TestCheckTriggers_HiddenQuestNotOffered(t *testing.T) {
	gs := newState()
	gs.World.Locations["forest"] = &types.Location{
		ID: "forest", QuestTriggers: []string{"secret"},
	}
	addQuest(gs, &types.Quest{ID: "secret", Title: "Secret", Hidden: true})

	if messages := CheckTriggers(gs, ActionVisitLocation, "forest"); len(messages) != 0 {
		t.Errorf("hidden quest offered: %v", messages)
	}
}

func TestCheckTriggers_TalkStartsAvailableQuest(t *testing.T) {
	gs := newState()
	gs.World.Characters["elder"] = &types.Character{
		ID: "elder", Name: "Elder", QuestIDs: []string{"gather"},
	}
	addQuest(gs, &types.Quest{ID: "gather", Title: "Gather Herbs", JapaneseTitle: "薬草集め",
		Description: "Collect herbs.",
		Objectives: []*types.QuestObjective{
			{ID: "obj_0", Type: types.ObjCollectItem, TargetID: "herb",
				Description: "Collect 3 herbs", Count: 3},
		}})
	gs.QuestLog.Available.Add("gather")

	messages := CheckTriggers(gs, ActionTalkToNPC, "elder")
	if len(messages) != 1 {
		t.Fatalf("messages = %v", messages)
	}
	if !strings.Contains(messages[0], "Quest started: Gather Herbs - 薬草集め") ||
		!strings.Contains(messages[0], "\n- Collect 3 herbs") {
		t.Errorf("start message wrong:\n%s", messages[0])
	}
	if !gs.QuestLog.Active.Has("gather") || gs.QuestLog.Available.Has("gather") {
		t.Error("quest log buckets wrong after start")
	}
	if gs.World.Quests["gather"].State != types.QuestInProgress {
		t.Error("quest state not in_progress")
	}
}

func TestCheckTriggers_RelatedItemOffersQuest(t *testing.T) {
	gs := newState()
	gs.World.Items["map_piece"] = &types.Item{
		ID: "map_piece", Name: "Map Piece", RelatedQuestID: "treasure",
	}
	addQuest(gs, &types.Quest{ID: "treasure", Title: "Treasure Hunt"})

	messages := CheckTriggers(gs, ActionCollectItem, "map_piece")
	if len(messages) != 1 ||
		messages[0] != "You found Map Piece. New quest available: Treasure Hunt" {
		t.Fatalf("messages = %v", messages)
	}
}

func TestUpdateProgress_CountedObjective(t *testing.T) {
	gs := newState()
	addQuest(gs, &types.Quest{ID: "gather", Title: "Gather Herbs",
		State: types.QuestInProgress,
		Objectives: []*types.QuestObjective{
			{ID: "obj_0", Type: types.ObjCollectItem, TargetID: "herb",
				Description: "Collect 2 herbs", Count: 2},
		}})
	gs.QuestLog.Active.Add("gather")

	p := UpdateProgress(gs, ActionCollectItem, "herb", "")
	if !p.Changed || len(p.Messages) != 1 ||
		p.Messages[0] != "Quest progress: 1/2 Collect 2 herbs" {
		t.Fatalf("first collect: %+v", p)
	}

	p = UpdateProgress(gs, ActionCollectItem, "herb", "")
	if len(p.Messages) < 2 {
		t.Fatalf("second collect: %+v", p)
	}
	if p.Messages[0] != "Quest objective completed: Collect 2 herbs" {
		t.Errorf("messages = %v", p.Messages)
	}
	if !strings.Contains(p.Messages[1], "Quest completed: Gather Herbs") {
		t.Errorf("completion missing: %v", p.Messages)
	}
}

func TestUpdateProgress_UnrelatedActionNoChange(t *testing.T) {
	gs := newState()
	addQuest(gs, &types.Quest{ID: "gather", State: types.QuestInProgress,
		Objectives: []*types.QuestObjective{
			{ID: "obj_0", Type: types.ObjCollectItem, TargetID: "herb", Count: 1},
		}})
	gs.QuestLog.Active.Add("gather")

	p := UpdateProgress(gs, ActionVisitLocation, "forest", "")
	if p.Changed || len(p.Messages) != 0 {
		t.Errorf("unexpected progress: %+v", p)
	}
}

func TestUpdateProgress_RewardsGranted(t *testing.T) {
	gs := newState()
	gs.World.Items["sword"] = &types.Item{ID: "sword", Name: "Sword"}
	gs.World.Locations["vault"] = &types.Location{ID: "vault", Name: "Vault", Hidden: true}
	addQuest(gs, &types.Quest{ID: "final", Title: "Final Task", State: types.QuestInProgress,
		Objectives: []*types.QuestObjective{
			{ID: "obj_0", Type: types.ObjVisitLocation, TargetID: "summit",
				Description: "Reach the summit", Count: 1},
		},
		Rewards: []*types.QuestReward{
			{Type: types.RewardItem, TargetID: "sword", Description: "A sword", Quantity: 1},
			{Type: types.RewardUnlockLocation, TargetID: "vault", Description: "Vault access", Quantity: 1},
			{Type: types.RewardVocabularyBoost, Description: "New words", Quantity: 1,
				Vocabulary: []types.WordRef{{Japanese: "剣", English: "sword", Reading: "けん"}}},
		}})
	gs.QuestLog.Active.Add("final")

	p := UpdateProgress(gs, ActionVisitLocation, "summit", "")
	completion := p.Messages[len(p.Messages)-1]
	for _, want := range []string{
		"Quest completed: Final Task",
		"  Added Sword to your inventory.",
		"  Unlocked new location: Vault.",
		"  Learned new word: 剣 (sword).",
	} {
		if !strings.Contains(completion, want) {
			t.Errorf("completion missing %q:\n%s", want, completion)
		}
	}
	if gs.World.Locations["vault"].Hidden {
		t.Error("vault still hidden")
	}
	if len(gs.Player.Inventory) != 1 || gs.Player.Inventory[0] != "sword" {
		t.Errorf("inventory = %v", gs.Player.Inventory)
	}
	// Vocabulary boost routes through the tracker.
	if len(gs.Player.LearnedVocabulary) != 1 {
		t.Errorf("learned vocabulary = %v", gs.Player.LearnedVocabulary)
	}
}

func TestInfo_SpecificQuest(t *testing.T) {
	gs := newState()
	addQuest(gs, &types.Quest{ID: "gather", Title: "Gather Herbs", JapaneseTitle: "薬草集め",
		Description: "Collect herbs.", State: types.QuestInProgress,
		Objectives: []*types.QuestObjective{
			{ID: "obj_0", Type: types.ObjCollectItem, TargetID: "herb",
				Description: "Collect 3 herbs", Count: 3, Progress: 1},
			{ID: "obj_1", Type: types.ObjTalkToNPC, TargetID: "elder",
				Description: "Talk to the elder", Count: 1, Completed: true},
		}})
	gs.QuestLog.Active.Add("gather")

	info := Info(gs, "gather")
	if !strings.Contains(info, "Quest: Gather Herbs - 薬草集め") ||
		!strings.Contains(info, "□ Collect 3 herbs (1/3)") ||
		!strings.Contains(info, "✓ Talk to the elder") {
		t.Errorf("info wrong:\n%s", info)
	}

	if got := Info(gs, "missing"); got != "Quest missing not found in active quests." {
		t.Errorf("got %q", got)
	}
}
