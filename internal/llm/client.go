// Package llm generates meeting minutes and extracts tasks from a
// transcript using a langchaingo chat model.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/wahlandcase/attuned.standup/internal/config"
	"github.com/wahlandcase/attuned.standup/internal/models"

	"github.com/sethvargo/go-retry"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/bedrock"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	retryAttempts = 2
	retryBackoff  = 500 * time.Millisecond
)

// Client wraps a chat model with the two operations the pipeline needs.
type Client struct {
	model llms.Model
	cfg   *config.LLMConfig
	now   func() time.Time
}

// NewClient creates a client for the configured provider.
func NewClient(cfg *config.LLMConfig) (*Client, error) {
	model, err := newModel(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{model: model, cfg: cfg, now: time.Now}, nil
}

// newModel creates a langchaingo model based on the provider configuration
func newModel(cfg *config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "bedrock", "":
		return bedrock.New(bedrock.WithModel(cfg.Model))
	case "anthropic":
		return anthropic.New(anthropic.WithModel(cfg.Model))
	case "openai":
		return openai.New(openai.WithModel(cfg.Model))
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

// SummarizeMeeting produces Slack-ready meeting minutes from the transcript.
func (c *Client) SummarizeMeeting(ctx context.Context, transcript string) (string, error) {
	base := fmt.Sprintf(summaryPromptFormat, c.now().Format("2006-01-02 15:04:05"), transcript)
	system := buildSystemPrompt(base, loadCustomInstructions(c.cfg.InstructionsPath()))

	content, err := c.generate(ctx, system, "議事録を作成してください。")
	if err != nil {
		return "", fmt.Errorf("summarize meeting: %w", err)
	}
	return content, nil
}

// FallbackSummary is used in place of minutes when the model call failed.
func FallbackSummary(transcript string) string {
	return fmt.Sprintf("要約生成に失敗しました。元の文字起こし:\n%s", transcript)
}

// ExtractTasks asks the model for actionable tasks and decodes the JSON
// array out of its completion. A completion without a JSON array yields
// an empty task list, not an error.
func (c *Client) ExtractTasks(ctx context.Context, transcript string) ([]models.Task, error) {
	base := fmt.Sprintf(extractPromptFormat, c.now().Format("2006-01-02 15:04:05"), transcript)
	system := buildSystemPrompt(base, loadCustomInstructions(c.cfg.InstructionsPath()))

	content, err := c.generate(ctx, system, "タスクをJSON形式で抽出してください。")
	if err != nil {
		return nil, fmt.Errorf("extract tasks: %w", err)
	}
	return decodeTasks(content)
}

func (c *Client) generate(ctx context.Context, system, user string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBackoff))

	var content string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.model.GenerateContent(ctx, messages, llms.WithMaxTokens(c.cfg.MaxTokens))
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(resp.Choices) == 0 {
			return retry.RetryableError(fmt.Errorf("empty response from model"))
		}
		content = resp.Choices[0].Content
		return nil
	})
	return content, err
}

// jsonArrayRe locates the JSON array inside a completion that may be
// wrapped in prose or a code fence.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

func decodeTasks(completion string) ([]models.Task, error) {
	raw := jsonArrayRe.FindString(completion)
	if raw == "" {
		return nil, nil
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse task JSON: %w", err)
	}
	return tasks, nil
}
