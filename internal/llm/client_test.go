package llm

import (
	"context"
	"testing"
	"time"

	"github.com/wahlandcase/attuned.standup/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// stubModel returns a canned completion.
type stubModel struct {
	completion string
	lastSystem string
}

func (s *stubModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		if msg.Role == llms.ChatMessageTypeSystem {
			for _, part := range msg.Parts {
				if text, ok := part.(llms.TextContent); ok {
					s.lastSystem = text.Text
				}
			}
		}
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.completion}},
	}, nil
}

func (s *stubModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return s.completion, nil
}

func newTestClient(completion string) (*Client, *stubModel) {
	stub := &stubModel{completion: completion}
	client := &Client{
		model: stub,
		cfg:   &config.LLMConfig{MaxTokens: 2000},
		now:   func() time.Time { return time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) },
	}
	return client, stub
}

func TestDecodeTasks(t *testing.T) {
	t.Run("Should decode a bare JSON array", func(t *testing.T) {
		tasks, err := decodeTasks(`[{"title":"【6/6まで】API修正","body":"## やること\n- 修正","deadline":"2025-06-06","assignees":["dev-tanaka"],"labels":["bug"]}]`)

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "【6/6まで】API修正", tasks[0].Title)
		assert.Equal(t, "2025-06-06", tasks[0].Deadline)
		assert.Equal(t, []string{"dev-tanaka"}, tasks[0].Assignees)
		assert.Equal(t, []string{"bug"}, tasks[0].Labels)
	})

	t.Run("Should decode an array wrapped in prose", func(t *testing.T) {
		tasks, err := decodeTasks("以下のタスクを抽出しました:\n```json\n[{\"title\":\"t\",\"body\":\"b\",\"deadline\":\"\",\"assignees\":[],\"labels\":[]}]\n```\n以上です。")

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "t", tasks[0].Title)
	})

	t.Run("Should return no tasks when there is no array", func(t *testing.T) {
		tasks, err := decodeTasks("タスクは見つかりませんでした。")

		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("Should fail on a malformed array", func(t *testing.T) {
		_, err := decodeTasks(`[{"title": }]`)

		assert.Error(t, err)
	})
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Run("Should return base prompt unchanged without custom instructions", func(t *testing.T) {
		assert.Equal(t, "base", buildSystemPrompt("base", ""))
	})

	t.Run("Should append custom instructions after the base prompt", func(t *testing.T) {
		prompt := buildSystemPrompt("base", "custom rule")

		assert.Contains(t, prompt, "base")
		assert.Contains(t, prompt, "custom rule")
		assert.Contains(t, prompt, "追加指示を優先")
	})
}

func TestClient(t *testing.T) {
	t.Run("Should send transcript and current time in the summary prompt", func(t *testing.T) {
		client, stub := newTestClient("- 議事録です。")

		summary, err := client.SummarizeMeeting(context.Background(), "今日の朝会の内容")

		require.NoError(t, err)
		assert.Equal(t, "- 議事録です。", summary)
		assert.Contains(t, stub.lastSystem, "今日の朝会の内容")
		assert.Contains(t, stub.lastSystem, "2025-06-02 10:00:00")
	})

	t.Run("Should extract tasks from the completion", func(t *testing.T) {
		client, _ := newTestClient(`[{"title":"【6/6まで】調査","body":"b","deadline":"2025-06-06","assignees":[],"labels":[]}]`)

		tasks, err := client.ExtractTasks(context.Background(), "transcript")

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "【6/6まで】調査", tasks[0].Title)
	})

	t.Run("Should reject an unknown provider", func(t *testing.T) {
		_, err := NewClient(&config.LLMConfig{Provider: "carrier-pigeon"})

		assert.Error(t, err)
	})
}

func TestFallbackSummary(t *testing.T) {
	t.Run("Should embed the original transcript", func(t *testing.T) {
		assert.Contains(t, FallbackSummary("raw text"), "raw text")
	})
}
