package engine

import (
	"fmt"
	"strings"

	"github.com/Acolyte-Luu/jp-mud/engine/quest"
	"github.com/Acolyte-Luu/jp-mud/types"
)

// grammarCommand lists open grammar challenges or activates one by id.
// While a challenge is active, free-text input is treated as the answer.
func grammarCommand(challengeID string, gs *types.GameState) string {
	if challengeID == "" {
		type challenge struct {
			id, description, questTitle string
		}
		var open []challenge
		for _, questID := range gs.QuestLog.Active.Items() {
			q := gs.World.Quests[questID]
			if q == nil {
				continue
			}
			for _, objective := range q.Objectives {
				if objective.Type == types.ObjGrammarChallenge && !objective.Completed {
					open = append(open, challenge{
						id:          objective.TargetID,
						description: objective.Description,
						questTitle:  q.Title,
					})
				}
			}
		}

		if len(open) == 0 {
			return "You don't have any active grammar challenges."
		}
		var b strings.Builder
		b.WriteString("Available grammar challenges:\n")
		for i, c := range open {
			fmt.Fprintf(&b, "%d. %s (Quest: %s)\n", i+1, c.description, c.questTitle)
			fmt.Fprintf(&b, "   Type 'grammar %s' to start\n", c.id)
		}
		return b.String()
	}

	for _, questID := range gs.QuestLog.Active.Items() {
		q := gs.World.Quests[questID]
		if q == nil {
			continue
		}
		for _, objective := range q.Objectives {
			if objective.Type != types.ObjGrammarChallenge ||
				objective.TargetID != challengeID || objective.Completed {
				continue
			}

			gs.ActiveChallenge = &types.ActiveChallenge{
				QuestID:     questID,
				ObjectiveID: objective.ID,
				TargetID:    objective.TargetID,
			}
			prompt := "Complete the grammar challenge"
			if p, ok := objective.Properties["prompt"].(string); ok && p != "" {
				prompt = p
			}
			return fmt.Sprintf("Grammar Challenge: %s\n\n%s", objective.Description, prompt)
		}
	}

	return fmt.Sprintf("Grammar challenge '%s' not found or already completed.", challengeID)
}

// processGrammarAnswer feeds the player's free-text answer into the active
// challenge and clears it on success.
func processGrammarAnswer(answer string, gs *types.GameState) string {
	if gs.ActiveChallenge == nil {
		return "No active grammar challenge."
	}

	progress := quest.UpdateProgress(gs, quest.ActionGrammarChallenge, gs.ActiveChallenge.TargetID, answer)
	if progress.GrammarCompleted {
		gs.ActiveChallenge = nil
	}

	if len(progress.Messages) == 0 {
		return "No response from the challenge."
	}
	return strings.Join(progress.Messages, "\n")
}
