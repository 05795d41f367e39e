package world

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// Raw is the permissive world payload accepted from the generator and from
// Lua world templates. Every field is optional; Build fills defaults and
// Validate repairs what remains.
type Raw struct {
	Locations  []RawLocation  `json:"locations"`
	Characters []RawCharacter `json:"characters"`
	Items      []RawItem      `json:"items"`
	Vocabulary []RawVocab     `json:"vocabulary"`
	Quests     []RawQuest     `json:"quests"`
}

// Target is a connection target. Generators emit either a bare location id
// or an object of the form {"location": "<id>"}; both decode to the id.
type Target struct {
	ID string
}

func (t *Target) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.ID = s
		return nil
	}
	var obj struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.Location != "" {
		t.ID = obj.Location
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		t.ID = strconv.FormatFloat(n, 'f', -1, 64)
		return nil
	}
	t.ID = string(bytes.Trim(bytes.TrimSpace(data), `"`))
	return nil
}

func (t Target) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ID)
}

type RawLocation struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	JapaneseName        string            `json:"japanese_name"`
	Description         string            `json:"description"`
	JapaneseDescription string            `json:"japanese_description"`
	Connections         map[string]Target `json:"connections"`
	Vocabulary          []types.WordRef   `json:"vocabulary"`
	RequiresKey         string            `json:"requires_key"`
	QuestTriggers       []string          `json:"quest_triggers"`
	Hidden              bool              `json:"hidden"`
}

type RawCharacter struct {
	ID                  string                                   `json:"id"`
	Name                string                                   `json:"name"`
	JapaneseName        string                                   `json:"japanese_name"`
	Description         string                                   `json:"description"`
	JapaneseDescription string                                   `json:"japanese_description"`
	Location            string                                   `json:"location"`
	Dialogues           map[string]types.DialogueLine            `json:"dialogues"`
	Vocabulary          []types.WordRef                          `json:"vocabulary"`
	Items               []string                                 `json:"items"`
	QuestIDs            []string                                 `json:"quest_ids"`
	QuestDialogues      map[string]map[string]types.DialogueLine `json:"quest_dialogues"`
}

type RawItem struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	JapaneseName        string          `json:"japanese_name"`
	Description         string          `json:"description"`
	JapaneseDescription string          `json:"japanese_description"`
	Type                string          `json:"type"`
	Location            string          `json:"location"`
	Properties          map[string]any  `json:"properties"`
	Vocabulary          []types.WordRef `json:"vocabulary"`
	CanBeTaken          *bool           `json:"can_be_taken"` // defaults to true
	Hidden              bool            `json:"hidden"`
	RelatedQuestID      string          `json:"related_quest_id"`
}

type RawVocab struct {
	ID              string `json:"id"`
	Japanese        string `json:"japanese"`
	English         string `json:"english"`
	Reading         string `json:"reading"`
	PartOfSpeech    string `json:"part_of_speech"`
	ExampleSentence string `json:"example_sentence"`
	Notes           string `json:"notes"`
	JLPTLevel       int    `json:"jlpt_level"`
}

type RawQuest struct {
	ID                  string              `json:"id"`
	Title               string              `json:"title"`
	JapaneseTitle       string              `json:"japanese_title"`
	Description         string              `json:"description"`
	JapaneseDescription string              `json:"japanese_description"`
	Objectives          []RawObjective      `json:"objectives"`
	Rewards             []RawReward         `json:"rewards"`
	PrerequisiteQuests  []string            `json:"prerequisite_quests"`
	StartLocation       string              `json:"start_location"`
	CompletionLocation  string              `json:"completion_location"`
	StartDialogue       *types.DialogueLine `json:"start_dialogue"`
	CompletionDialogue  *types.DialogueLine `json:"completion_dialogue"`
	Difficulty          int                 `json:"difficulty"` // defaults to 1
	JLPTLevel           int                 `json:"jlpt_level"`
	Hidden              bool                `json:"hidden"`
}

type RawObjective struct {
	ID                  string          `json:"id"`
	Type                string          `json:"type"`
	Description         string          `json:"description"`
	JapaneseDescription string          `json:"japanese_description"`
	TargetID            string          `json:"target_id"`
	Count               int             `json:"count"` // defaults to 1
	Hints               []string        `json:"hints"`
	JapaneseHints       []string        `json:"japanese_hints"`
	Vocabulary          []types.WordRef `json:"vocabulary"`
	Properties          map[string]any  `json:"properties"`
}

type RawReward struct {
	Type                string          `json:"type"`
	Description         string          `json:"description"`
	JapaneseDescription string          `json:"japanese_description"`
	TargetID            string          `json:"target_id"`
	Quantity            int             `json:"quantity"` // defaults to 1
	Vocabulary          []types.WordRef `json:"vocabulary"`
}
