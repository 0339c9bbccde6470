package git

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// OriginRepo resolves the "owner/repo" slug of the origin remote for
// the repository containing startPath, walking up to find the git root.
func OriginRepo(startPath string) (string, error) {
	path, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	for {
		if IsGitRepo(path) {
			break
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", os.ErrNotExist
		}
		path = parent
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("no origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}

	return ParseGitHubRemote(urls[0])
}

// ParseGitHubRemote extracts "owner/repo" from a git remote URL. Both
// SSH (git@github.com:owner/repo.git) and HTTPS forms are accepted.
func ParseGitHubRemote(url string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")

	// SSH scp-like syntax: everything after the colon is the path
	if at := strings.Index(trimmed, "@"); at >= 0 && !strings.Contains(trimmed, "://") {
		if colon := strings.Index(trimmed, ":"); colon >= 0 {
			trimmed = trimmed[colon+1:]
		}
	} else if scheme := strings.Index(trimmed, "://"); scheme >= 0 {
		rest := trimmed[scheme+3:]
		if slash := strings.Index(rest, "/"); slash >= 0 {
			trimmed = rest[slash+1:]
		} else {
			return "", fmt.Errorf("remote URL has no path: %s", url)
		}
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("cannot determine owner/repo from remote URL: %s", url)
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}
