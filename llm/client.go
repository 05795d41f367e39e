// Package llm talks to an OpenAI-compatible chat completion endpoint for
// the three generative features of the game: world generation, narration of
// unrecognized commands, and Japanese grammar feedback. The engine itself
// never depends on this package; callers decide when to reach for the model.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/Acolyte-Luu/jp-mud/world"
)

// Config selects the endpoint and models. Zero values fall back to a local
// OpenAI-compatible server and small general-purpose models.
type Config struct {
	BaseURL       string
	APIKey        string
	WorldModel    string
	GameModel     string
	JapaneseModel string
	Timeout       time.Duration
}

const (
	defaultBaseURL       = "http://localhost:9000/v1"
	defaultWorldModel    = "qwen2.5:7b"
	defaultGameModel     = "qwen2.5:14b"
	defaultJapaneseModel = "qwen2.5:14b"
	defaultTimeout       = 120 * time.Second
)

// Client wraps the OpenAI SDK client with the game's prompt templates.
type Client struct {
	client        oai.Client
	worldModel    string
	gameModel     string
	japaneseModel string
}

// New builds a client for cfg, applying defaults for unset fields.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.WorldModel == "" {
		cfg.WorldModel = defaultWorldModel
	}
	if cfg.GameModel == "" {
		cfg.GameModel = defaultGameModel
	}
	if cfg.JapaneseModel == "" {
		cfg.JapaneseModel = defaultJapaneseModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	} else {
		// Local servers ignore the key but the SDK requires one.
		opts = append(opts, option.WithAPIKey("local"))
	}

	return &Client{
		client:        oai.NewClient(opts...),
		worldModel:    cfg.WorldModel,
		gameModel:     cfg.GameModel,
		japaneseModel: cfg.JapaneseModel,
	}
}

func (c *Client) complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(systemPrompt),
			oai.UserMessage(userPrompt),
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateWorld asks the world model for a fresh game world built around the
// player's concept and decodes it into raw world data. Model output is
// salvaged from markdown fences and surrounding chatter before decoding.
func (c *Client) GenerateWorld(ctx context.Context, prompt string) (world.Raw, error) {
	userPrompt := fmt.Sprintf(`Create a Japanese-themed fantasy world based on the following concept:

%s

Include elements of Japanese culture, language learning opportunities, and
interesting locations to explore. Make the world coherent and interconnected
with a central theme.`, prompt)

	content, err := c.complete(ctx, c.worldModel, worldSystemPrompt, userPrompt)
	if err != nil {
		return world.Raw{}, err
	}

	payload := salvageJSON(content)
	if payload == "" {
		return world.Raw{}, fmt.Errorf("world generation: no JSON object in model output")
	}

	var raw world.Raw
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		slog.Warn("world generation produced malformed JSON", "err", err)
		return world.Raw{}, fmt.Errorf("world generation: decoding model output: %w", err)
	}
	return raw, nil
}

// Narrate asks the game model to interpret a command the parser rejected,
// staying in character and weaving in a Japanese phrase. scene describes the
// player's surroundings; callers build it with SceneContext.
func (c *Client) Narrate(ctx context.Context, input, scene string) (string, error) {
	userPrompt := fmt.Sprintf(`%s

The player typed: %q

Interpret what they might have meant and provide a helpful response
that teaches them how to play while staying in character for the game.
Include at least one relevant Japanese phrase with its English translation.`, scene, input)

	return c.complete(ctx, c.gameModel, narrateSystemPrompt, userPrompt)
}

var japanesePattern = regexp.MustCompile(`[\x{3000}-\x{303f}\x{3040}-\x{309f}\x{30a0}-\x{30ff}\x{ff00}-\x{ff9f}\x{4e00}-\x{9faf}\x{3400}-\x{4dbf}]`)

// ValidateJapanese checks whether text is grammatically correct Japanese and
// returns feedback for the learner. When the model is unreachable it degrades
// to a local script check so the feature keeps working offline.
func (c *Client) ValidateJapanese(ctx context.Context, text string) (bool, string) {
	userPrompt := fmt.Sprintf(`Please validate this text:

%s

Is this grammatically correct Japanese? If not, what corrections are needed?
If it contains no Japanese characters, explain how the user might type actual
Japanese characters instead of romaji.

Respond in this format:
VALID: true/false
FEEDBACK: your feedback here`, text)

	response, err := c.complete(ctx, c.japaneseModel, validateSystemPrompt, userPrompt)
	if err != nil {
		slog.Error("japanese validation failed, falling back to script check", "err", err)
		if japanesePattern.MatchString(text) {
			return true, "Your Japanese looks good! (Note: Validation is currently limited due to technical issues)"
		}
		return false, "Text doesn't appear to contain Japanese characters. Try using a Japanese keyboard input method to type in Japanese."
	}

	isValid := strings.Contains(strings.ToUpper(response), "VALID: TRUE")
	feedback := response
	if idx := strings.Index(strings.ToUpper(response), "FEEDBACK:"); idx >= 0 {
		feedback = strings.TrimSpace(response[idx+len("FEEDBACK:"):])
	}
	return isValid, feedback
}
