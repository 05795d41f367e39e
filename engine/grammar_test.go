package engine

import (
	"strings"
	"testing"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// grammarState returns a state with one active quest holding a grammar
// challenge objective.
func grammarState() *types.GameState {
	gs := testState()
	gs.World.Quests["grammar_practice"] = &types.Quest{
		ID:            "grammar_practice",
		Title:         "Polite Requests",
		JapaneseTitle: "丁寧なお願い",
		State:         types.QuestInProgress,
		Objectives: []*types.QuestObjective{
			{
				ID:          "obj_0",
				Type:        types.ObjGrammarChallenge,
				Description: "Ask for water politely",
				TargetID:    "gc_water",
				Count:       1,
				Properties: map[string]any{
					"prompt":          "Ask for water using ください.",
					"correct_pattern": "水をください",
					"hint":            "Use をください after the noun.",
					"grammar_point":   map[string]any{"name": "〜をください"},
				},
			},
		},
	}
	gs.QuestLog.Active.Add("grammar_practice")
	return gs
}

func TestGrammar_ListChallenges(t *testing.T) {
	gs := grammarState()
	reply := Process("grammar", gs)
	if !strings.Contains(reply.Text, "Available grammar challenges:") ||
		!strings.Contains(reply.Text, "1. Ask for water politely (Quest: Polite Requests)") ||
		!strings.Contains(reply.Text, "Type 'grammar gc_water' to start") {
		t.Errorf("listing wrong:\n%s", reply.Text)
	}
}

func TestGrammar_NoChallenges(t *testing.T) {
	gs := testState()
	reply := Process("grammar", gs)
	if reply.Text != "You don't have any active grammar challenges." {
		t.Errorf("got %q", reply.Text)
	}
}

func TestGrammar_StartAndAnswerCorrectly(t *testing.T) {
	gs := grammarState()
	reply := Process("grammar gc_water", gs)
	if !strings.Contains(reply.Text, "Grammar Challenge: Ask for water politely") ||
		!strings.Contains(reply.Text, "Ask for water using ください.") {
		t.Fatalf("prompt wrong:\n%s", reply.Text)
	}
	if gs.ActiveChallenge == nil || gs.ActiveChallenge.TargetID != "gc_water" {
		t.Fatal("active challenge not set")
	}

	reply = Process("水をください", gs)
	if !strings.Contains(reply.Text, "Grammar challenge completed: Ask for water politely") {
		t.Fatalf("completion missing:\n%s", reply.Text)
	}
	if !strings.Contains(reply.Text, "Grammar point learned: 〜をください") {
		t.Errorf("grammar point missing:\n%s", reply.Text)
	}
	if gs.ActiveChallenge != nil {
		t.Error("active challenge not cleared after success")
	}
	if gs.Player.Stats.GrammarPointsMastered != 1 {
		t.Errorf("grammar points mastered = %d", gs.Player.Stats.GrammarPointsMastered)
	}
	// The whole quest completes with its only objective.
	if !gs.QuestLog.Completed.Has("grammar_practice") {
		t.Error("quest not completed")
	}
}

func TestGrammar_WrongAnswerKeepsChallenge(t *testing.T) {
	gs := grammarState()
	Process("grammar gc_water", gs)
	reply := Process("水がほしい", gs)
	if !strings.Contains(reply.Text, "That's not quite right. Use をください after the noun.") {
		t.Fatalf("hint missing:\n%s", reply.Text)
	}
	if gs.ActiveChallenge == nil {
		t.Error("challenge cleared on wrong answer")
	}
}

func TestGrammar_PatternMatching(t *testing.T) {
	gs := grammarState()
	objective := gs.World.Quests["grammar_practice"].Objectives[0]
	objective.Properties["correct_pattern"] = "ください"
	objective.Properties["use_pattern"] = true

	Process("grammar gc_water", gs)
	reply := Process("お水をくださいね", gs)
	if !strings.Contains(reply.Text, "Grammar challenge completed") {
		t.Errorf("pattern answer rejected:\n%s", reply.Text)
	}
}

func TestGrammar_UnknownChallenge(t *testing.T) {
	gs := grammarState()
	reply := Process("grammar gc_missing", gs)
	if reply.Text != "Grammar challenge 'gc_missing' not found or already completed." {
		t.Errorf("got %q", reply.Text)
	}
}
