// Package editor lets a human review the extracted issues in $EDITOR
// before anything is created.
//
// The edit document is markdown-ish: lines starting with ";" are
// comments, each issue is a "# title" heading followed by free-form
// body text, and issues are separated by a "---" line. Assignees and
// labels ride inside the heading as @user and <[label]> markers.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/wahlandcase/attuned.standup/internal/models"
	"github.com/wahlandcase/attuned.standup/internal/title"
)

const separator = "---"

var documentHeader = strings.Join([]string{
	"; Issues to Create",
	"",
	"; 以下のIssueを編集してください。不要なIssueブロックは削除してください。",
	"; フォーマット: タイトル行の後に本文、Issueは --- で区切ります。",
	"; タイトル行には @username で担当者、<[label]> でラベルを指定できます。",
	"",
	"",
}, "\n")

// Edit writes the issues into a temp file, opens the editor on it, and
// parses the edited result back. fallbackCommand is used when $EDITOR
// is unset.
func Edit(issues []models.Issue, fallbackCommand string) ([]models.Issue, error) {
	command := os.Getenv("EDITOR")
	if command == "" {
		command = fallbackCommand
	}
	if command == "" {
		command = "nvim"
	}

	f, err := os.CreateTemp("", "attsup-issues-*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to create edit file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(RenderDocument(issues)); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write edit file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	cmd := exec.Command(command, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("editor %s failed: %w", command, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	return ParseDocument(string(content)), nil
}

// RenderDocument builds the edit document offered to the user.
func RenderDocument(issues []models.Issue) string {
	var b strings.Builder
	b.WriteString(documentHeader)

	for i, issue := range issues {
		b.WriteString("# " + DecorateTitle(issue) + "\n")
		b.WriteString(scrubSeparator(issue.Body) + "\n")
		if i < len(issues)-1 {
			b.WriteString("\n" + separator + "\n\n")
		}
	}

	return b.String()
}

// DecorateTitle renders a heading line with the issue's assignee and
// label markers appended, the same syntax ParseDocument reads back.
func DecorateTitle(issue models.Issue) string {
	parts := []string{scrubSeparator(issue.Title)}
	for _, assignee := range issue.Assignees {
		parts = append(parts, "@"+assignee)
	}
	for _, label := range issue.Labels {
		parts = append(parts, "<["+label+"]>")
	}
	return strings.Join(parts, " ")
}

// scrubSeparator removes separator sequences from generated text so a
// title or body cannot split its own block.
func scrubSeparator(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, separator, ""))
}

// ParseDocument parses the edited document back into issues. Blocks
// without a heading line are dropped, as are comment lines.
func ParseDocument(content string) []models.Issue {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ";") {
			continue
		}
		kept = append(kept, line)
	}

	var issues []models.Issue
	for _, block := range strings.Split(strings.Join(kept, "\n"), separator) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if issue, ok := parseBlock(block); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

// parseBlock reads one issue block: the first heading line becomes the
// decorated title, every following line belongs to the body.
func parseBlock(block string) (models.Issue, bool) {
	var issue models.Issue
	var bodyLines []string
	found := false

	for _, line := range strings.Split(block, "\n") {
		trimmed := strings.TrimSpace(line)
		if !found && strings.HasPrefix(trimmed, "#") {
			raw := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			parsed := title.Parse(raw)
			issue.Title = parsed.Title
			issue.Assignees = parsed.Assignees
			issue.Labels = parsed.Labels
			// A heading that parses to an empty title does not count;
			// a later heading may still claim the block.
			found = issue.Title != ""
		} else if found {
			bodyLines = append(bodyLines, line)
		}
	}

	if !found {
		return models.Issue{}, false
	}
	issue.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	return issue, true
}
