// Package vocab tracks the vocabulary a player encounters while playing.
// Words attached to locations, items, characters, and quest rewards all
// funnel through here so each Japanese surface form is registered once.
package vocab

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// Learn registers a single word encounter. The word is resolved against the
// world vocabulary by its Japanese surface form, creating a new entry when
// unseen, and recorded in the player's learned vocabulary on first
// encounter. Reports whether the word was new to the player.
func Learn(gs *types.GameState, word types.WordRef, sourceID string) bool {
	if word.Japanese == "" {
		return false
	}

	vocabID := findOrCreate(gs.World, word)
	if _, known := gs.Player.LearnedVocabulary[vocabID]; known {
		return false
	}

	gs.Player.LearnedVocabulary[vocabID] = types.LearnedVocabulary{
		VocabularyID:             vocabID,
		FirstEncounteredLocation: gs.Player.CurrentLocation,
		FirstEncounteredTime:     time.Now().UTC().Format(time.RFC3339),
		MasteryLevel:             1,
		Context:                  fmt.Sprintf("From %s", sourceID),
	}
	gs.Player.Stats.VocabularyLearned++
	return true
}

// Encounter registers every word in the list and formats the newly learned
// ones as a [Vocabulary] block. Returns "" when nothing was new.
func Encounter(gs *types.GameState, words []types.WordRef, sourceID string) string {
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n[Vocabulary]")
	newWords := 0

	for _, word := range words {
		if !Learn(gs, word, sourceID) {
			continue
		}
		newWords++
		b.WriteString(fmt.Sprintf("\n- %s", word.Japanese))
		if word.Reading != "" {
			b.WriteString(fmt.Sprintf(" (%s)", word.Reading))
		}
		b.WriteString(fmt.Sprintf(": %s", word.English))
	}

	if newWords == 0 {
		return ""
	}
	return b.String()
}

// findOrCreate resolves a word to its world vocabulary id, keyed by the
// Japanese surface form. Lookup is over sorted ids so repeated encounters
// resolve to the same entry.
func findOrCreate(w *types.World, word types.WordRef) string {
	ids := make([]string, 0, len(w.Vocabulary))
	for id := range w.Vocabulary {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if w.Vocabulary[id].Japanese == word.Japanese {
			return id
		}
	}

	n := len(w.Vocabulary)
	id := fmt.Sprintf("vocab_%d", n)
	for _, taken := w.Vocabulary[id]; taken; _, taken = w.Vocabulary[id] {
		n++
		id = fmt.Sprintf("vocab_%d", n)
	}
	w.Vocabulary[id] = &types.VocabularyEntry{
		Japanese:        word.Japanese,
		English:         word.English,
		Reading:         word.Reading,
		PartOfSpeech:    word.PartOfSpeech,
		ExampleSentence: word.ExampleSentence,
		Notes:           word.Notes,
	}
	return id
}
