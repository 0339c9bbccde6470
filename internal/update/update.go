// Package update checks GitHub releases for a newer attsup binary and
// can replace the running executable with it. All GitHub access goes
// through the gh CLI, which is a hard dependency of the tool anyway.
package update

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Release represents a GitHub release
type Release struct {
	TagName string `json:"tagName"`
}

// Version returns the release version without tag prefixes.
func (r *Release) Version() string {
	return NormalizeVersion(r.TagName)
}

// AssetName is the release asset expected for this platform.
func (r *Release) AssetName() string {
	return fmt.Sprintf("attsup-%s-%s", runtime.GOOS, runtime.GOARCH)
}

// CheckForUpdate returns the latest release if it is newer than
// currentVersion, nil otherwise.
func CheckForUpdate(currentVersion, repo string) (*Release, error) {
	output, err := exec.Command("gh", "release", "list",
		"--repo", repo,
		"--json", "tagName",
		"--limit", "1",
	).Output()
	if err != nil {
		return nil, fmt.Errorf("gh release list failed: %w", err)
	}

	var releases []Release
	if err := json.Unmarshal(output, &releases); err != nil {
		return nil, fmt.Errorf("failed to parse releases: %w", err)
	}
	if len(releases) == 0 {
		return nil, nil
	}

	latest := &releases[0]
	current := NormalizeVersion(currentVersion)

	// A "dev" build is always older than any release. Plain string
	// comparison is enough while tags stay zero-padded-free semver.
	if current == "dev" || latest.Version() > current {
		return latest, nil
	}
	return nil, nil
}

// NormalizeVersion strips the tag prefixes used on releases.
func NormalizeVersion(v string) string {
	v = strings.TrimPrefix(v, "attsup/")
	return strings.TrimPrefix(v, "v")
}

// Install downloads the release asset for this platform and swaps it
// in over the running executable.
func (r *Release) Install(repo string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate binary: %w", err)
	}
	binaryPath, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("failed to resolve binary path: %w", err)
	}

	tmpPath := filepath.Join(os.TempDir(), "attsup-update")
	output, err := exec.Command("gh", "release", "download",
		r.TagName,
		"--repo", repo,
		"--pattern", r.AssetName(),
		"--output", tmpPath,
		"--clobber",
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("download failed: %s", string(output))
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		return fmt.Errorf("chmod failed: %w", err)
	}

	// A truncated download would brick the install; sanity-check size
	info, err := os.Stat(tmpPath)
	if err != nil {
		return err
	}
	if info.Size() < 1000 {
		return fmt.Errorf("downloaded file too small (%d bytes), likely invalid", info.Size())
	}

	if err := os.Rename(tmpPath, binaryPath); err != nil {
		// Rename fails across devices; fall back to copy-and-swap
		return replaceFile(tmpPath, binaryPath)
	}
	return nil
}

// replaceFile copies src over dst atomically via a sibling temp file.
func replaceFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()
	defer os.Remove(src)

	tmpFile, err := os.CreateTemp(filepath.Dir(dst), "attsup-update-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, srcFile); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, 0755); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
