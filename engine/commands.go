package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Acolyte-Luu/jp-mud/engine/quest"
	"github.com/Acolyte-Luu/jp-mud/types"
	"github.com/Acolyte-Luu/jp-mud/world"
)

const helpText = `
Available Commands:
- north/south/east/west/up/down: Move in that direction (n/s/e/w/u/d for short)
- look [object]: Look at your surroundings or examine a specific object
- take [item]: Pick up an item
- drop [item]: Drop an item from your inventory
- inventory: Check what you're carrying (i for short)
- use [item]: Use an item in your inventory
- talk [character]: Talk to someone
- quests: View your active quests
- grammar [challenge_id]: Start a grammar challenge or list available challenges
- help: Show this help message

Japanese Commands:
- 北/南/東/西/上/下: Move in that direction
- 見る [object]: Look at something
- 取る [item]: Pick up an item
- 置く [item]: Drop an item
- 持ち物: Check inventory
- 使う [item]: Use an item
- 話す [character]: Talk to someone
- クエスト: View quests
- 文法 [challenge_id]: Grammar practice
- ヘルプ: Show help
`

// lookCommand describes the surroundings, or a named item or character.
func lookCommand(gs *types.GameState, target string) string {
	loc := gs.World.Locations[gs.Player.CurrentLocation]
	if loc == nil {
		slog.Error("look failed, player location missing", "location", gs.Player.CurrentLocation)
		return "You are lost in a void. Something is terribly wrong."
	}

	if target != "" {
		target = strings.ToLower(target)

		for _, itemID := range loc.Items {
			item := gs.World.Items[itemID]
			if item != nil && matchesExactly(target, item.Name, item.ID) {
				return describeItem(item)
			}
		}
		for _, itemID := range gs.Player.Inventory {
			item := gs.World.Items[itemID]
			if item != nil && matchesExactly(target, item.Name, item.ID) {
				return describeItem(item)
			}
		}
		for _, charID := range loc.Characters {
			char := gs.World.Characters[charID]
			if char != nil && matchesExactly(target, char.Name, char.ID) {
				desc := char.Description
				if char.JapaneseDescription != "" {
					desc += fmt.Sprintf(" (%s)", char.JapaneseDescription)
				}
				return desc
			}
		}
		return fmt.Sprintf("You don't see '%s' here.", target)
	}

	desc := locationDescription(gs)
	if len(loc.Vocabulary) > 0 {
		desc += encounterVocabulary(gs, loc.Vocabulary, loc.ID)
	}
	return desc
}

func describeItem(item *types.Item) string {
	desc := item.Description
	if item.JapaneseDescription != "" {
		desc += fmt.Sprintf(" (%s)", item.JapaneseDescription)
	}
	return desc
}

func matchesExactly(target, name, id string) bool {
	return strings.ToLower(name) == target || strings.ToLower(id) == target
}

// matchesLoosely reports whether the player's words refer to the entity.
// Substring matching keeps partial names like "take key" working.
func matchesLoosely(needle, name, japaneseName string) bool {
	if strings.Contains(strings.ToLower(name), needle) {
		return true
	}
	return japaneseName != "" && strings.Contains(strings.ToLower(japaneseName), needle)
}

// takeCommand picks up an item from the current location.
func takeCommand(itemName string, gs *types.GameState) string {
	if itemName == "" {
		return "What do you want to take?"
	}

	loc := world.EnsureLocation(gs, gs.Player.CurrentLocation)
	for _, itemID := range loc.Items {
		item := gs.World.Items[itemID]
		if item == nil || item.Hidden || !matchesLoosely(itemName, item.Name, item.JapaneseName) {
			continue
		}
		if !item.CanBeTaken {
			return fmt.Sprintf("You can't take %s.", item.Name)
		}

		removeString(&loc.Items, itemID)
		gs.Player.Inventory = append(gs.Player.Inventory, itemID)
		gs.Player.Stats.ItemsCollected++

		messages := quest.CheckTriggers(gs, quest.ActionCollectItem, itemID)
		progress := quest.UpdateProgress(gs, quest.ActionCollectItem, itemID, "")
		messages = append(messages, progress.Messages...)

		response := fmt.Sprintf("You take %s.", item.Name)
		if len(messages) > 0 {
			response += "\n\n" + strings.Join(messages, "\n")
		}
		return response
	}

	return fmt.Sprintf("You don't see %s here.", itemName)
}

// dropCommand puts an inventory item down in the current location.
func dropCommand(itemName string, gs *types.GameState) string {
	if itemName == "" {
		return "What do you want to drop?"
	}

	loc := world.EnsureLocation(gs, gs.Player.CurrentLocation)
	for _, itemID := range gs.Player.Inventory {
		item := gs.World.Items[itemID]
		if item == nil || !matchesLoosely(itemName, item.Name, item.JapaneseName) {
			continue
		}

		removeString(&gs.Player.Inventory, itemID)
		loc.Items = append(loc.Items, itemID)

		messages := quest.CheckTriggers(gs, quest.ActionDropItem, itemID)
		progress := quest.UpdateProgress(gs, quest.ActionDropItem, itemID, "")
		messages = append(messages, progress.Messages...)

		response := fmt.Sprintf("You drop %s.", item.Name)
		if len(messages) > 0 {
			response += "\n\n" + strings.Join(messages, "\n")
		}
		return response
	}

	return fmt.Sprintf("You don't have %s.", itemName)
}

// inventoryCommand lists what the player is carrying.
func inventoryCommand(gs *types.GameState) string {
	if len(gs.Player.Inventory) == 0 {
		return "Your inventory is empty."
	}

	var b strings.Builder
	b.WriteString("Inventory (持ち物):\n")
	for _, itemID := range gs.Player.Inventory {
		item := gs.World.Items[itemID]
		if item == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s", item.Name))
		if item.JapaneseName != "" {
			b.WriteString(fmt.Sprintf(" (%s)", item.JapaneseName))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// useCommand applies an inventory item: keys unlock adjacent areas, other
// items fire their use_effect property.
func useCommand(itemName string, gs *types.GameState) string {
	if itemName == "" {
		return "What do you want to use?"
	}

	for _, itemID := range gs.Player.Inventory {
		item := gs.World.Items[itemID]
		if item == nil || !matchesLoosely(itemName, item.Name, item.JapaneseName) {
			continue
		}

		if item.Type == types.ItemKey {
			loc := gs.World.Locations[gs.Player.CurrentLocation]
			if loc != nil {
				for _, dir := range sortedDirections(loc.Connections) {
					target := gs.World.Locations[loc.Connections[dir]]
					if target == nil || target.RequiresKey != itemID {
						continue
					}
					target.RequiresKey = ""

					progress := quest.UpdateProgress(gs, quest.ActionUseItem, itemID, "")
					response := fmt.Sprintf("You use %s to unlock the passage to the %s.", item.Name, dir)
					if len(progress.Messages) > 0 {
						response += "\n\n" + strings.Join(progress.Messages, "\n")
					}
					return response
				}
			}
		}

		if effect, ok := item.Properties["use_effect"].(string); ok {
			progress := quest.UpdateProgress(gs, quest.ActionUseItem, itemID, "")
			response := fmt.Sprintf("You use %s. %s", item.Name, effect)
			if len(progress.Messages) > 0 {
				response += "\n\n" + strings.Join(progress.Messages, "\n")
			}
			return response
		}

		return fmt.Sprintf("You're not sure how to use %s here.", item.Name)
	}

	return fmt.Sprintf("You don't have %s.", itemName)
}

// talkCommand converses with a character, preferring quest dialogue for
// quests the player has in progress.
func talkCommand(characterName string, gs *types.GameState) string {
	if characterName == "" {
		return "Who do you want to talk to?"
	}

	loc := gs.World.Locations[gs.Player.CurrentLocation]
	if loc == nil {
		return "Error: Current location not found."
	}

	for _, charID := range loc.Characters {
		char := gs.World.Characters[charID]
		if char == nil || !matchesLoosely(characterName, char.Name, char.JapaneseName) {
			continue
		}

		// Triggers run first so talking to a quest giver starts the quest
		// and its in-progress dialogue applies immediately.
		messages := quest.CheckTriggers(gs, quest.ActionTalkToNPC, charID)
		progress := quest.UpdateProgress(gs, quest.ActionTalkToNPC, charID, "")
		messages = append(messages, progress.Messages...)

		response := questDialogue(gs, char)
		if response == "" {
			response = defaultDialogue(char)
		}
		if len(char.Vocabulary) > 0 {
			response += encounterVocabulary(gs, char.Vocabulary, charID)
		}
		if len(messages) > 0 {
			response += "\n\n" + strings.Join(messages, "\n")
		}
		return response
	}

	return fmt.Sprintf("You don't see %s here.", characterName)
}

func questDialogue(gs *types.GameState, char *types.Character) string {
	response := ""
	for _, questID := range char.QuestIDs {
		if !gs.QuestLog.Active.Has(questID) {
			continue
		}
		quest := gs.World.Quests[questID]
		if quest == nil {
			continue
		}
		stateDialogues, ok := char.QuestDialogues[questID]
		if !ok {
			continue
		}
		line, ok := stateDialogues[string(quest.State)]
		if !ok {
			continue
		}
		response = fmt.Sprintf("%s: %s", char.Name, line.Response)
		if line.JapaneseResponse != "" {
			response += fmt.Sprintf("\n\n%s", line.JapaneseResponse)
		}
	}
	return response
}

func defaultDialogue(char *types.Character) string {
	line, ok := char.Dialogues["default"]
	if !ok {
		return fmt.Sprintf("%s looks at you but doesn't say anything.", char.Name)
	}

	response := fmt.Sprintf("%s: %s", char.Name, line.Response)
	if line.JapaneseResponse != "" {
		response += fmt.Sprintf("\n\n%s", line.JapaneseResponse)
	}
	if len(char.Dialogues) > 1 {
		var topics []string
		for topic := range char.Dialogues {
			if topic != "default" {
				topics = append(topics, topic)
			}
		}
		sort.Strings(topics)
		response += "\n\nYou can ask about: " + strings.Join(topics, ", ")
	}
	return response
}

func removeString(list *[]string, value string) {
	for i, v := range *list {
		if v == value {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return
		}
	}
}
