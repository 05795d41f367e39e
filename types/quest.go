package types

// ObjectiveType names the action that advances a quest objective.
type ObjectiveType string

const (
	ObjVisitLocation    ObjectiveType = "visit_location"
	ObjCollectItem      ObjectiveType = "collect_item"
	ObjTalkToNPC        ObjectiveType = "talk_to_npc"
	ObjUseItem          ObjectiveType = "use_item"
	ObjLearnVocabulary  ObjectiveType = "learn_vocabulary"
	ObjGrammarChallenge ObjectiveType = "grammar_challenge"
	ObjCustom           ObjectiveType = "custom"
)

// RewardType names what a completed quest grants.
type RewardType string

const (
	RewardItem            RewardType = "item"
	RewardUnlockLocation  RewardType = "unlock_location"
	RewardLearnSkill      RewardType = "learn_skill"
	RewardVocabularyBoost RewardType = "vocabulary_boost"
	RewardCustom          RewardType = "custom"
)

// QuestState is the quest lifecycle enumeration. Failed is reachable only
// through future extension; no transition into it is implemented.
type QuestState string

const (
	QuestNotStarted QuestState = "not_started"
	QuestInProgress QuestState = "in_progress"
	QuestCompleted  QuestState = "completed"
	QuestFailed     QuestState = "failed"
)

// QuestObjective is one measurable condition within a quest. Grammar
// challenges store "prompt", "correct_pattern", "use_pattern", "hint" and
// "grammar_point" in Properties.
type QuestObjective struct {
	ID                  string         `json:"id"`
	Type                ObjectiveType  `json:"type"`
	Description         string         `json:"description"`
	JapaneseDescription string         `json:"japanese_description,omitempty"`
	TargetID            string         `json:"target_id"`
	Count               int            `json:"count"` // quantity required, defaults to 1
	Completed           bool           `json:"completed"`
	Progress            int            `json:"progress"`
	Hints               []string       `json:"hints,omitempty"`
	JapaneseHints       []string       `json:"japanese_hints,omitempty"`
	Vocabulary          []WordRef      `json:"vocabulary,omitempty"`
	Properties          map[string]any `json:"properties,omitempty"`
}

// QuestReward is granted when a quest completes.
type QuestReward struct {
	Type                RewardType `json:"type"`
	Description         string     `json:"description"`
	JapaneseDescription string     `json:"japanese_description,omitempty"`
	TargetID            string     `json:"target_id,omitempty"`
	Quantity            int        `json:"quantity"`
	Claimed             bool       `json:"claimed"`
	Vocabulary          []WordRef  `json:"vocabulary,omitempty"`
}

// Quest is a multi-objective progression unit.
type Quest struct {
	ID                  string            `json:"id"`
	Title               string            `json:"title"`
	JapaneseTitle       string            `json:"japanese_title,omitempty"`
	Description         string            `json:"description"`
	JapaneseDescription string            `json:"japanese_description,omitempty"`
	State               QuestState        `json:"state"`
	Objectives          []*QuestObjective `json:"objectives"`
	Rewards             []*QuestReward    `json:"rewards,omitempty"`
	PrerequisiteQuests  []string          `json:"prerequisite_quests,omitempty"`
	StartLocation       string            `json:"start_location,omitempty"`
	CompletionLocation  string            `json:"completion_location,omitempty"`
	StartDialogue       *DialogueLine     `json:"start_dialogue,omitempty"`
	CompletionDialogue  *DialogueLine     `json:"completion_dialogue,omitempty"`
	Difficulty          int               `json:"difficulty"` // 1-5, affects language complexity
	JLPTLevel           int               `json:"jlpt_level,omitempty"`
	TimeLimit           int               `json:"time_limit,omitempty"` // seconds; stored, never checked
	Hidden              bool              `json:"hidden"`
}

// QuestLog buckets quest ids by lifecycle stage. A quest id appears in at
// most one bucket at any time; the Quest structs themselves live in
// World.Quests.
type QuestLog struct {
	Active    StringSet `json:"active_quests"`
	Completed StringSet `json:"completed_quests"`
	Failed    StringSet `json:"failed_quests"`
	Available StringSet `json:"available_quests"`
}
