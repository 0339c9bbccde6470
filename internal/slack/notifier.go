// Package slack posts the meeting minutes and created issues to an
// incoming webhook using Block Kit blocks.
package slack

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.standup/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
)

const (
	postTimeout   = 10 * time.Second
	retryAttempts = 3
	retryBackoff  = time.Second
)

// Notifier posts messages to a single incoming webhook URL.
type Notifier struct {
	client     *resty.Client
	webhookURL string
	now        func() time.Time
}

func NewNotifier(webhookURL string) *Notifier {
	client := resty.New().
		SetTimeout(postTimeout).
		SetHeader("Content-Type", "application/json")

	return &Notifier{
		client:     client,
		webhookURL: webhookURL,
		now:        time.Now,
	}
}

type payload struct {
	Blocks      []block `json:"blocks"`
	UnfurlLinks bool    `json:"unfurl_links"`
	UnfurlMedia bool    `json:"unfurl_media"`
}

type block struct {
	Type     string       `json:"type"`
	Text     *textObject  `json:"text,omitempty"`
	Elements []textObject `json:"elements,omitempty"`
}

type textObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// PostSummary sends the minutes and the created issue list. Transient
// failures (network errors, 5xx) are retried with exponential backoff.
func (n *Notifier) PostSummary(ctx context.Context, summary string, issues []models.CreatedIssue) error {
	body := n.buildPayload(summary, issues)
	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := n.client.R().
			SetContext(ctx).
			SetBody(body).
			Post(n.webhookURL)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode() >= 500 {
			return retry.RetryableError(fmt.Errorf("slack webhook returned %s", resp.Status()))
		}
		if resp.IsError() {
			return fmt.Errorf("slack webhook returned %s: %s", resp.Status(), resp.String())
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to post to Slack: %w", err)
	}
	return nil
}

func (n *Notifier) buildPayload(summary string, issues []models.CreatedIssue) payload {
	blocks := []block{
		{
			Type: "header",
			Text: &textObject{Type: "plain_text", Text: "📝 朝会議事録", Emoji: true},
		},
		{
			Type: "section",
			Text: &textObject{Type: "mrkdwn", Text: "```" + summary + "```"},
		},
		{Type: "divider"},
	}

	if len(issues) > 0 {
		blocks = append(blocks, block{
			Type: "header",
			Text: &textObject{Type: "plain_text", Text: "🚀 作成されたIssue", Emoji: true},
		})

		lines := make([]string, 0, len(issues))
		for i, issue := range issues {
			number := issue.Number
			if number == 0 {
				// URL didn't end in an issue number; label by position
				number = uint64(i + 1)
			}
			lines = append(lines, fmt.Sprintf("• <%s|Issue #%d>", issue.URL, number))
		}
		blocks = append(blocks, block{
			Type: "section",
			Text: &textObject{Type: "mrkdwn", Text: strings.Join(lines, "\n")},
		})

		blocks = append(blocks, block{
			Type: "context",
			Elements: []textObject{
				{Type: "mrkdwn", Text: fmt.Sprintf("📊 合計 %d 件のIssueを作成しました", len(issues))},
			},
		})
	} else {
		blocks = append(blocks, block{
			Type: "section",
			Text: &textObject{Type: "mrkdwn", Text: "ℹ️ 今回は新しいIssueは作成されませんでした"},
		})
	}

	blocks = append(blocks, block{
		Type: "context",
		Elements: []textObject{
			{Type: "mrkdwn", Text: fmt.Sprintf("🤖 %s に自動生成", n.now().Format("2006-01-02 15:04:05"))},
		},
	})

	return payload{Blocks: blocks}
}
