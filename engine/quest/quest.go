// Package quest drives quest discovery, progression, and rewards. It never
// produces errors: a malformed quest simply fails to advance, and every
// state change is reported back as player-facing messages.
package quest

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Acolyte-Luu/jp-mud/engine/vocab"
	"github.com/Acolyte-Luu/jp-mud/types"
)

// Trigger and action type names shared with the command layer.
const (
	ActionVisitLocation    = "visit_location"
	ActionCollectItem      = "collect_item"
	ActionTalkToNPC        = "talk_to_npc"
	ActionUseItem          = "use_item"
	ActionDropItem         = "drop_item"
	ActionGrammarChallenge = "grammar_challenge"
)

// Progress is the outcome of one quest progression pass.
type Progress struct {
	Messages         []string
	Changed          bool
	GrammarCompleted bool
}

// CheckTriggers surfaces quests made available or started by a player
// action and returns the announcement messages.
func CheckTriggers(gs *types.GameState, triggerType, entityID string) []string {
	var messages []string

	switch triggerType {
	case ActionVisitLocation:
		loc := gs.World.Locations[entityID]
		if loc == nil {
			return nil
		}
		for _, questID := range loc.QuestTriggers {
			quest, ok := gs.World.Quests[questID]
			if !ok || gs.QuestLog.Active.Has(questID) || gs.QuestLog.Completed.Has(questID) {
				continue
			}
			if !prerequisitesMet(gs, quest) || quest.Hidden {
				continue
			}
			if gs.QuestLog.Available.Add(questID) {
				messages = append(messages, fmt.Sprintf(
					"New quest available: %s - %s", quest.Title, quest.JapaneseTitle))
			}
		}

	case ActionTalkToNPC:
		npc := gs.World.Characters[entityID]
		if npc == nil {
			return nil
		}
		for _, questID := range npc.QuestIDs {
			quest, ok := gs.World.Quests[questID]
			if !ok || !gs.QuestLog.Available.Has(questID) || gs.QuestLog.Active.Has(questID) {
				continue
			}
			quest.State = types.QuestInProgress
			gs.QuestLog.Available.Remove(questID)
			gs.QuestLog.Active.Add(questID)
			messages = append(messages, startMessage(quest))
		}

	case ActionCollectItem:
		item := gs.World.Items[entityID]
		if item == nil || item.RelatedQuestID == "" {
			return nil
		}
		questID := item.RelatedQuestID
		quest, ok := gs.World.Quests[questID]
		if !ok || gs.QuestLog.Active.Has(questID) || gs.QuestLog.Completed.Has(questID) {
			return nil
		}
		if prerequisitesMet(gs, quest) && gs.QuestLog.Available.Add(questID) {
			messages = append(messages, fmt.Sprintf(
				"You found %s. New quest available: %s", item.Name, quest.Title))
		}
	}

	return messages
}

func startMessage(quest *types.Quest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Quest started: %s - %s\n\n", quest.Title, quest.JapaneseTitle)
	fmt.Fprintf(&b, "%s\n\n%s", quest.Description, quest.JapaneseDescription)
	if len(quest.Objectives) > 0 {
		b.WriteString("\n\nObjectives:")
		for _, objective := range quest.Objectives {
			fmt.Fprintf(&b, "\n- %s", objective.Description)
		}
	}
	return b.String()
}

func prerequisitesMet(gs *types.GameState, quest *types.Quest) bool {
	for _, prereq := range quest.PrerequisiteQuests {
		if !gs.QuestLog.Completed.Has(prereq) {
			return false
		}
	}
	return true
}

// UpdateProgress advances every active quest that matches the action and
// completes quests whose objectives are all done, granting rewards.
// Grammar answers pass the player's raw input for pattern matching.
func UpdateProgress(gs *types.GameState, actionType, entityID, input string) Progress {
	var p Progress

	for _, questID := range gs.QuestLog.Active.Items() {
		quest := gs.World.Quests[questID]
		if quest == nil {
			slog.Warn("active quest missing from world", "quest", questID)
			continue
		}

		questUpdated := false
		for _, objective := range quest.Objectives {
			if objective.Completed {
				continue
			}
			switch {
			case objective.Type == types.ObjVisitLocation &&
				actionType == ActionVisitLocation && objective.TargetID == entityID:
				objective.Completed = true
				questUpdated = true
				p.Messages = append(p.Messages,
					fmt.Sprintf("Quest objective completed: %s", objective.Description))

			case objective.Type == types.ObjCollectItem &&
				actionType == ActionCollectItem && objective.TargetID == entityID:
				objective.Progress++
				if objective.Progress >= objective.Count {
					objective.Completed = true
					p.Messages = append(p.Messages,
						fmt.Sprintf("Quest objective completed: %s", objective.Description))
				} else {
					p.Messages = append(p.Messages, fmt.Sprintf(
						"Quest progress: %d/%d %s",
						objective.Progress, objective.Count, objective.Description))
				}
				questUpdated = true

			case objective.Type == types.ObjTalkToNPC &&
				actionType == ActionTalkToNPC && objective.TargetID == entityID:
				objective.Completed = true
				questUpdated = true
				p.Messages = append(p.Messages,
					fmt.Sprintf("Quest objective completed: %s", objective.Description))

			case objective.Type == types.ObjUseItem &&
				actionType == ActionUseItem && objective.TargetID == entityID:
				objective.Completed = true
				questUpdated = true
				p.Messages = append(p.Messages,
					fmt.Sprintf("Quest objective completed: %s", objective.Description))

			case objective.Type == types.ObjGrammarChallenge &&
				actionType == ActionGrammarChallenge && objective.TargetID == entityID && input != "":
				if answerMatches(objective, input) {
					objective.Completed = true
					questUpdated = true
					p.GrammarCompleted = true
					p.Messages = append(p.Messages,
						fmt.Sprintf("Grammar challenge completed: %s", objective.Description))
					p.Messages = append(p.Messages, learnGrammarPoint(gs, objective)...)
				} else {
					hint := "Try again with a different structure."
					if h, ok := objective.Properties["hint"].(string); ok && h != "" {
						hint = h
					}
					p.Messages = append(p.Messages, fmt.Sprintf("That's not quite right. %s", hint))
				}
			}
		}

		if questUpdated {
			p.Changed = true
			if allObjectivesDone(quest) {
				p.Messages = append(p.Messages, completeQuest(gs, questID, quest))
			}
		}
	}

	return p
}

func answerMatches(objective *types.QuestObjective, input string) bool {
	pattern, _ := objective.Properties["correct_pattern"].(string)
	if pattern == "" {
		return false
	}
	if strings.TrimSpace(input) == pattern {
		return true
	}
	if usePattern, _ := objective.Properties["use_pattern"].(bool); usePattern {
		re, err := regexp.Compile(pattern)
		if err != nil {
			slog.Warn("invalid grammar pattern", "objective", objective.ID, "err", err)
			return false
		}
		return re.MatchString(input)
	}
	return false
}

func learnGrammarPoint(gs *types.GameState, objective *types.QuestObjective) []string {
	point, ok := objective.Properties["grammar_point"].(map[string]any)
	if !ok {
		return nil
	}
	points, _ := gs.Player.Knowledge["grammar_points"].([]any)
	gs.Player.Knowledge["grammar_points"] = append(points, point)
	gs.Player.Stats.GrammarPointsMastered++

	name, _ := point["name"].(string)
	return []string{fmt.Sprintf("Grammar point learned: %s", name)}
}

func allObjectivesDone(quest *types.Quest) bool {
	for _, objective := range quest.Objectives {
		if !objective.Completed {
			return false
		}
	}
	return true
}

// completeQuest moves the quest into the completed bucket and grants its
// rewards, returning the combined completion message.
func completeQuest(gs *types.GameState, questID string, quest *types.Quest) string {
	quest.State = types.QuestCompleted
	gs.QuestLog.Active.Remove(questID)
	gs.QuestLog.Completed.Add(questID)
	gs.Player.Stats.QuestsCompleted++

	var b strings.Builder
	fmt.Fprintf(&b, "Quest completed: %s - %s\n", quest.Title, quest.JapaneseTitle)
	if len(quest.Rewards) > 0 {
		b.WriteString("Rewards:\n")
		for _, reward := range quest.Rewards {
			fmt.Fprintf(&b, "- %s\n", reward.Description)
			grantReward(gs, reward, &b)
		}
	}
	return b.String()
}

func grantReward(gs *types.GameState, reward *types.QuestReward, b *strings.Builder) {
	switch reward.Type {
	case types.RewardItem:
		if reward.TargetID == "" {
			return
		}
		item, ok := gs.World.Items[reward.TargetID]
		if !ok {
			slog.Warn("item reward references unknown item", "item", reward.TargetID)
			return
		}
		gs.Player.Inventory = append(gs.Player.Inventory, reward.TargetID)
		reward.Claimed = true
		fmt.Fprintf(b, "  Added %s to your inventory.\n", item.Name)

	case types.RewardUnlockLocation:
		if reward.TargetID == "" {
			return
		}
		loc, ok := gs.World.Locations[reward.TargetID]
		if !ok {
			slog.Warn("unlock reward references unknown location", "location", reward.TargetID)
			return
		}
		loc.Hidden = false
		reward.Claimed = true
		fmt.Fprintf(b, "  Unlocked new location: %s.\n", loc.Name)

	case types.RewardVocabularyBoost:
		for _, word := range reward.Vocabulary {
			vocab.Learn(gs, word, "quest reward")
			fmt.Fprintf(b, "  Learned new word: %s (%s).\n", word.Japanese, word.English)
		}
		reward.Claimed = true
	}
}

// Info formats quest status for the player. With a quest id it details that
// active quest; without one it summarizes the whole quest log.
func Info(gs *types.GameState, questID string) string {
	if questID != "" {
		if !gs.QuestLog.Active.Has(questID) {
			return fmt.Sprintf("Quest %s not found in active quests.", questID)
		}
		quest := gs.World.Quests[questID]
		if quest == nil {
			return fmt.Sprintf("Quest %s not found in active quests.", questID)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Quest: %s - %s\n", quest.Title, quest.JapaneseTitle)
		fmt.Fprintf(&b, "%s\n\n%s\n\n", quest.Description, quest.JapaneseDescription)
		b.WriteString("Objectives:\n")
		for _, objective := range quest.Objectives {
			mark := "□"
			if objective.Completed {
				mark = "✓"
			}
			if objective.Count > 1 {
				fmt.Fprintf(&b, "%s %s (%d/%d)\n", mark, objective.Description,
					objective.Progress, objective.Count)
			} else {
				fmt.Fprintf(&b, "%s %s\n", mark, objective.Description)
			}
		}
		return b.String()
	}

	if gs.QuestLog.Active.Len() == 0 {
		return "You don't have any active quests."
	}

	var b strings.Builder
	b.WriteString("Active Quests:\n")
	for _, id := range gs.QuestLog.Active.Items() {
		quest := gs.World.Quests[id]
		if quest == nil {
			continue
		}
		done := 0
		for _, objective := range quest.Objectives {
			if objective.Completed {
				done++
			}
		}
		fmt.Fprintf(&b, "- %s (%d/%d)\n", quest.Title, done, len(quest.Objectives))
	}

	b.WriteString("\nAvailable Quests:\n")
	if gs.QuestLog.Available.Len() > 0 {
		for _, id := range gs.QuestLog.Available.Items() {
			if quest := gs.World.Quests[id]; quest != nil {
				fmt.Fprintf(&b, "- %s\n", quest.Title)
			}
		}
	} else {
		b.WriteString("No available quests.\n")
	}

	fmt.Fprintf(&b, "\nCompleted Quests: %d", gs.QuestLog.Completed.Len())
	return b.String()
}
