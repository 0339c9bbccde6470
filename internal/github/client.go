package github

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/wahlandcase/attuned.standup/internal/models"
)

// CheckAuth verifies gh CLI is authenticated
func CheckAuth() error {
	cmd := exec.Command("gh", "auth", "status")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("not authenticated with GitHub CLI. Run 'gh auth login' first")
	}
	return nil
}

// CreateIssue creates a new issue and returns the created issue info.
// Assignees and labels become one repeated flag each; project is passed
// through when set.
func CreateIssue(repo string, issue models.Issue, project string) (*models.CreatedIssue, error) {
	args := []string{"issue", "create",
		"--repo", repo,
		"--title", issue.Title,
		"--body", issue.Body,
	}
	for _, assignee := range issue.Assignees {
		args = append(args, "--assignee", assignee)
	}
	for _, label := range issue.Labels {
		args = append(args, "--label", label)
	}
	if project != "" {
		args = append(args, "--project", project)
	}

	cmd := exec.Command("gh", args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("gh issue create failed: %s", string(output))
	}

	// gh issue create outputs the URL
	url := strings.TrimSpace(string(output))

	// Extract issue number from URL (e.g., https://github.com/org/repo/issues/123)
	parts := strings.Split(url, "/")
	var number uint64
	if len(parts) > 0 {
		number, _ = strconv.ParseUint(parts[len(parts)-1], 10, 64)
	}

	return &models.CreatedIssue{
		Number: number,
		URL:    url,
		Title:  issue.Title,
	}, nil
}
