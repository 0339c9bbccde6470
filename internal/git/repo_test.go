package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitHubRemote(t *testing.T) {
	t.Run("Should parse SSH remotes", func(t *testing.T) {
		slug, err := ParseGitHubRemote("git@github.com:wahlandcase/attuned.standup.git")

		require.NoError(t, err)
		assert.Equal(t, "wahlandcase/attuned.standup", slug)
	})

	t.Run("Should parse HTTPS remotes", func(t *testing.T) {
		slug, err := ParseGitHubRemote("https://github.com/wahlandcase/attuned.standup.git")

		require.NoError(t, err)
		assert.Equal(t, "wahlandcase/attuned.standup", slug)
	})

	t.Run("Should parse remotes without a .git suffix", func(t *testing.T) {
		slug, err := ParseGitHubRemote("https://github.com/owner/repo")

		require.NoError(t, err)
		assert.Equal(t, "owner/repo", slug)
	})

	t.Run("Should parse ssh scheme remotes", func(t *testing.T) {
		slug, err := ParseGitHubRemote("ssh://git@github.com/owner/repo.git")

		require.NoError(t, err)
		assert.Equal(t, "owner/repo", slug)
	})

	t.Run("Should reject URLs without owner and repo", func(t *testing.T) {
		_, err := ParseGitHubRemote("https://github.com")

		assert.Error(t, err)
	})
}
