// Package save implements JSON persistence of game sessions. Each save is
// one file named by a generated game id and carries the full game state
// plus the conversation history shown to the player.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// ErrNotFound is returned when no save exists for the requested game id.
var ErrNotFound = errors.New("save not found")

// Message is one turn of the player-facing conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Data is the JSON save document.
type Data struct {
	State       *types.GameState `json:"state"`
	ChatHistory []Message        `json:"chat_history"`
	Timestamp   string           `json:"timestamp"`
}

// Summary describes one saved game for listings.
type Summary struct {
	GameID      string            `json:"game_id"`
	Timestamp   string            `json:"timestamp"`
	Location    string            `json:"location"`
	PlayerStats types.PlayerStats `json:"player_stats"`
}

// Store reads and writes saves under a single directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating save directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes a new save file and returns its generated game id.
func (s *Store) Save(gs *types.GameState, history []Message) (string, error) {
	if history == nil {
		history = []Message{}
	}
	data := Data{
		State:       gs,
		ChatHistory: history,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding save: %w", err)
	}

	gameID := uuid.NewString()
	path := filepath.Join(s.dir, gameID+".json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("writing save %s: %w", gameID, err)
	}
	return gameID, nil
}

// Load reads a save by game id. Maps and slices in the loaded state are
// never nil so older or hand-edited saves stay usable.
func (s *Store) Load(gameID string) (*Data, error) {
	if _, err := uuid.Parse(gameID); err != nil {
		return nil, fmt.Errorf("invalid game id %q: %w", gameID, ErrNotFound)
	}

	payload, err := os.ReadFile(filepath.Join(s.dir, gameID+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading save %s: %w", gameID, err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decoding save %s: %w", gameID, err)
	}
	if data.ChatHistory == nil {
		data.ChatHistory = []Message{}
	}
	if data.State != nil {
		Normalize(data.State)
	}
	return &data, nil
}

// List summarizes every readable save, newest first. Unreadable files are
// skipped, not fatal.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Summary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading save directory: %w", err)
	}

	summaries := []Summary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		gameID := strings.TrimSuffix(entry.Name(), ".json")
		data, err := s.Load(gameID)
		if err != nil || data.State == nil || data.State.Player == nil {
			slog.Warn("skipping unreadable save file", "file", entry.Name(), "err", err)
			continue
		}

		location := "Unknown"
		if loc, ok := data.State.World.Locations[data.State.Player.CurrentLocation]; ok && loc.Name != "" {
			location = loc.Name
		}
		summaries = append(summaries, Summary{
			GameID:      gameID,
			Timestamp:   data.Timestamp,
			Location:    location,
			PlayerStats: data.State.Player.Stats,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Timestamp > summaries[j].Timestamp
	})
	return summaries, nil
}

// Normalize ensures maps and slices in a decoded state are usable. The
// server runs it on every state a client sends back.
func Normalize(gs *types.GameState) {
	if gs.World == nil {
		gs.World = &types.World{}
	}
	if gs.World.Locations == nil {
		gs.World.Locations = map[string]*types.Location{}
	}
	if gs.World.Characters == nil {
		gs.World.Characters = map[string]*types.Character{}
	}
	if gs.World.Items == nil {
		gs.World.Items = map[string]*types.Item{}
	}
	if gs.World.Vocabulary == nil {
		gs.World.Vocabulary = map[string]*types.VocabularyEntry{}
	}
	if gs.World.Quests == nil {
		gs.World.Quests = map[string]*types.Quest{}
	}
	if gs.Player == nil {
		gs.Player = &types.Player{CurrentLocation: "start"}
	}
	if gs.Player.Inventory == nil {
		gs.Player.Inventory = []string{}
	}
	if gs.Player.LearnedVocabulary == nil {
		gs.Player.LearnedVocabulary = map[string]types.LearnedVocabulary{}
	}
	if gs.Player.Knowledge == nil {
		gs.Player.Knowledge = map[string]any{}
	}
	if gs.Flags == nil {
		gs.Flags = map[string]bool{}
	}
	if gs.Metadata == nil {
		gs.Metadata = map[string]any{}
	}
}
