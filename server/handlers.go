package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Acolyte-Luu/jp-mud/engine"
	"github.com/Acolyte-Luu/jp-mud/llm"
	"github.com/Acolyte-Luu/jp-mud/save"
	"github.com/Acolyte-Luu/jp-mud/types"
	"github.com/Acolyte-Luu/jp-mud/world"
)

// narrationFallback is shown when the model cannot interpret an
// unrecognized command.
const narrationFallback = "そのコマンドは分かりません (I don't understand that command). Try simple commands like 'look', 'north', or 'take map'."

type generateWorldRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func (s *Server) generateWorld(c *gin.Context) {
	var req generateWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: prompt is required"})
		return
	}

	raw, err := s.llm.GenerateWorld(c.Request.Context(), req.Prompt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to generate world: " + err.Error()})
		return
	}

	gs, issues := world.Build(raw)
	for _, issue := range issues {
		slog.Warn("generated world issue", "section", issue.Section, "ref", issue.Ref, "err", issue.Err)
	}

	c.JSON(http.StatusOK, gin.H{
		"world":      gs.World,
		"game_state": gs,
	})
}

type processInputRequest struct {
	Input       string           `json:"input" binding:"required"`
	GameState   *types.GameState `json:"game_state" binding:"required"`
	ChatHistory []save.Message   `json:"chat_history"`
}

func (s *Server) processInput(c *gin.Context) {
	var req processInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: input and game_state are required"})
		return
	}

	gs := req.GameState
	save.Normalize(gs)

	reply := engine.Process(req.Input, gs)
	response := reply.Text
	narrated := false

	if reply.Unrecognized {
		text, err := s.llm.Narrate(c.Request.Context(), req.Input, llm.SceneContext(gs))
		if err != nil {
			slog.Error("narration failed", "err", err)
			response = narrationFallback
		} else {
			response = "Command not recognized. " + text
			narrated = true
		}
	}

	history := append(req.ChatHistory,
		save.Message{Role: "user", Content: req.Input},
		save.Message{Role: "assistant", Content: response},
	)

	if s.turns != nil {
		if err := s.turns.Record(req.Input, response, gs, narrated); err != nil {
			slog.Warn("turn log write failed", "err", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"response":     response,
		"game_state":   gs,
		"chat_history": history,
	})
}

type validateJapaneseRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) validateJapanese(c *gin.Context) {
	var req validateJapaneseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: text is required"})
		return
	}

	isValid, feedback := s.llm.ValidateJapanese(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, gin.H{
		"is_valid": isValid,
		"feedback": feedback,
	})
}

type saveStateRequest struct {
	State       *types.GameState `json:"state" binding:"required"`
	ChatHistory []save.Message   `json:"chat_history"`
}

func (s *Server) saveState(c *gin.Context) {
	var req saveStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: state is required"})
		return
	}

	gameID, err := s.store.Save(req.State, req.ChatHistory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to save game state: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Game state saved successfully",
		"game_id": gameID,
	})
}

type loadStateRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

func (s *Server) loadState(c *gin.Context) {
	var req loadStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid request: game_id is required"})
		return
	}

	data, err := s.store.Load(req.GameID)
	if errors.Is(err, save.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Save file with ID " + req.GameID + " not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to load game state: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":        data.State,
		"chat_history": data.ChatHistory,
	})
}

func (s *Server) savedGames(c *gin.Context) {
	summaries, err := s.store.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list saved games: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_games": summaries})
}

func (s *Server) commands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"movement": []string{"north", "south", "east", "west", "up", "down", "in", "out"},
		"actions":  []string{"look", "examine", "take", "drop", "inventory", "use", "talk", "help"},
		"japanese_commands": []string{
			"見る", "調べる", "持つ", "取る", "拾う", "置く", "捨てる",
			"持ち物", "使う", "話す", "聞く", "質問", "助け", "ヘルプ",
		},
	})
}
