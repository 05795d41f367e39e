// Package types defines the shared data structures for the jp-mud game core.
// This package contains only data definitions; all behavior lives in the
// world, engine, and quest packages. JSON tags match the persisted save
// layout (snake_case, japanese_* localized fields).
package types

// Direction names used as connection keys on locations.
const (
	North = "north"
	South = "south"
	East  = "east"
	West  = "west"
	Up    = "up"
	Down  = "down"
	In    = "in"
	Out   = "out"
)

// ItemType classifies an item. Closed enumeration.
type ItemType string

const (
	ItemGeneral ItemType = "general"
	ItemKey     ItemType = "key"
	ItemWeapon  ItemType = "weapon"
	ItemArmor   ItemType = "armor"
	ItemFood    ItemType = "food"
	ItemScroll  ItemType = "scroll"
	ItemBook    ItemType = "book"
	ItemQuest   ItemType = "quest"
)

// WordRef is a vocabulary word attached to a location, item, character,
// objective, or reward.
type WordRef struct {
	Japanese        string `json:"japanese"`
	English         string `json:"english,omitempty"`
	Reading         string `json:"reading,omitempty"`
	PartOfSpeech    string `json:"part_of_speech,omitempty"`
	ExampleSentence string `json:"example_sentence,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// DialogueLine is a bilingual response pair.
type DialogueLine struct {
	Response         string `json:"response"`
	JapaneseResponse string `json:"japanese_response,omitempty"`
}

// Location is a node in the world graph. Item and character placement is
// derived purely from membership in Items/Characters; entities never record
// their own location.
type Location struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	JapaneseName        string            `json:"japanese_name,omitempty"`
	Description         string            `json:"description"`
	JapaneseDescription string            `json:"japanese_description,omitempty"`
	Connections         map[string]string `json:"connections"` // direction -> location id
	Characters          []string          `json:"characters"`
	Items               []string          `json:"items"`
	Vocabulary          []WordRef         `json:"vocabulary,omitempty"`
	Visited             bool              `json:"visited"`
	RequiresKey         string            `json:"requires_key,omitempty"` // item id gating entry
	QuestTriggers       []string          `json:"quest_triggers,omitempty"`
	Hidden              bool              `json:"hidden"`
}

// Item is a takeable or fixed object. At any time its id is held by exactly
// one location's Items list or the player's inventory.
type Item struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	JapaneseName        string         `json:"japanese_name,omitempty"`
	Description         string         `json:"description"`
	JapaneseDescription string         `json:"japanese_description,omitempty"`
	Type                ItemType       `json:"item_type"`
	Properties          map[string]any `json:"properties,omitempty"` // may carry "use_effect"
	Vocabulary          []WordRef      `json:"vocabulary,omitempty"`
	CanBeTaken          bool           `json:"can_be_taken"`
	Hidden              bool           `json:"hidden"`
	RelatedQuestID      string         `json:"related_quest_id,omitempty"`
}

// Character is an NPC placed in exactly one location at initialization.
type Character struct {
	ID                  string                             `json:"id"`
	Name                string                             `json:"name"`
	JapaneseName        string                             `json:"japanese_name,omitempty"`
	Description         string                             `json:"description"`
	JapaneseDescription string                             `json:"japanese_description,omitempty"`
	Dialogues           map[string]DialogueLine            `json:"dialogues,omitempty"` // topic -> line
	Vocabulary          []WordRef                          `json:"vocabulary,omitempty"`
	Items               []string                           `json:"items,omitempty"` // carried, informational only
	QuestIDs            []string                           `json:"quest_ids,omitempty"`
	QuestDialogues      map[string]map[string]DialogueLine `json:"quest_dialogues,omitempty"` // quest id -> quest state -> line
}

// VocabularyEntry is a word in the world's global vocabulary, keyed by a
// generated "vocab_<n>" id.
type VocabularyEntry struct {
	Japanese        string `json:"japanese"`
	English         string `json:"english"`
	Reading         string `json:"reading,omitempty"`
	PartOfSpeech    string `json:"part_of_speech,omitempty"`
	ExampleSentence string `json:"example_sentence,omitempty"`
	Notes           string `json:"notes,omitempty"`
	JLPTLevel       int    `json:"jlpt_level,omitempty"` // 5 easiest .. 1 hardest
	MasteryLevel    int    `json:"mastery_level"`        // 0-5
	ReviewCount     int    `json:"review_count"`
}

// LearnedVocabulary records the player's first encounter with a word and
// its review scheduling.
type LearnedVocabulary struct {
	VocabularyID             string `json:"vocabulary_id"`
	FirstEncounteredLocation string `json:"first_encountered_location,omitempty"`
	FirstEncounteredTime     string `json:"first_encountered_time,omitempty"`
	MasteryLevel             int    `json:"mastery_level"`
	LastReviewTime           string `json:"last_review_time,omitempty"`
	NextReviewTime           string `json:"next_review_time,omitempty"`
	ReviewCount              int    `json:"review_count"`
	Context                  string `json:"context,omitempty"`
}

// PlayerStats tracks gameplay statistics.
type PlayerStats struct {
	Moves                 int             `json:"moves"`
	ItemsCollected        int             `json:"items_collected"`
	LocationsVisited      StringSet       `json:"locations_visited"`
	VocabularyLearned     int             `json:"vocabulary_learned"`
	GrammarPointsMastered int             `json:"grammar_points_mastered"`
	QuestsCompleted       int             `json:"quests_completed"`
	JLPTProgress          map[int]float64 `json:"jlpt_progress,omitempty"` // level -> completion fraction
	TimePlayed            float64         `json:"time_played"`            // seconds
}

// Player is the player's runtime state. CurrentLocation always references a
// location id; the world layer synthesizes a fallback if it dangles.
type Player struct {
	CurrentLocation   string                       `json:"current_location"`
	Inventory         []string                     `json:"inventory"`
	LearnedVocabulary map[string]LearnedVocabulary `json:"learned_vocabulary"`
	Knowledge         map[string]any               `json:"knowledge"` // grammar points and other knowledge
	QuestProgress     map[string]any               `json:"quest_progress,omitempty"`
	Stats             PlayerStats                  `json:"stats"`
	JLPTLevel         int                          `json:"jlpt_level"`
	LastCommand       string                       `json:"last_command,omitempty"`
	LastCommandTime   string                       `json:"last_command_time,omitempty"`
}

// World owns all game content, keyed by id. Cross-references (location
// items, quest targets, connection targets) are ids resolved through these
// maps at use time, never embedded copies.
type World struct {
	Locations  map[string]*Location        `json:"locations"`
	Characters map[string]*Character       `json:"characters"`
	Items      map[string]*Item            `json:"items"`
	Vocabulary map[string]*VocabularyEntry `json:"vocabulary"`
	Quests     map[string]*Quest           `json:"quests"`
}

// ActiveChallenge identifies the single in-flight grammar prompt awaiting a
// free-text answer. Cleared only when the objective completes.
type ActiveChallenge struct {
	QuestID     string `json:"quest_id"`
	ObjectiveID string `json:"objective_id"`
	TargetID    string `json:"target_id"`
}

// GameState aggregates the world, the player, and session bookkeeping.
// VisitedLocations is kept in sync with each Location's own Visited flag.
type GameState struct {
	World            *World           `json:"world"`
	Player           *Player          `json:"player"`
	VisitedLocations StringSet        `json:"visited_locations"`
	Flags            map[string]bool  `json:"flags"`
	Metadata         map[string]any   `json:"metadata"`
	QuestLog         QuestLog         `json:"quest_log"`
	ActiveChallenge  *ActiveChallenge `json:"active_grammar_challenge,omitempty"`
}
