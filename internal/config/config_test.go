package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	t.Run("Should point at attsup.toml in the user config dir", func(t *testing.T) {
		p, err := Path()
		require.NoError(t, err)
		assert.Equal(t, "attsup.toml", filepath.Base(p))
	})
}

func TestShouldCheckForUpdate(t *testing.T) {
	t.Run("Should check when never checked before", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.True(t, cfg.ShouldCheckForUpdate())
	})

	t.Run("Should not check twice within a day", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RecordUpdateCheck()
		assert.False(t, cfg.ShouldCheckForUpdate())
	})

	t.Run("Should check again after a day", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Update.LastCheck = time.Now().Add(-25 * time.Hour)
		assert.True(t, cfg.ShouldCheckForUpdate())
	})

	t.Run("Should never check when disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Update.Enabled = false
		assert.False(t, cfg.ShouldCheckForUpdate())
	})
}

func TestInstructionsPath(t *testing.T) {
	t.Run("Should leave relative paths alone", func(t *testing.T) {
		cfg := LLMConfig{CustomInstructionsFile: ".custom-instructions"}
		assert.Equal(t, ".custom-instructions", cfg.InstructionsPath())
	})

	t.Run("Should expand a leading tilde", func(t *testing.T) {
		cfg := LLMConfig{CustomInstructionsFile: "~/notes/instructions.md"}
		p := cfg.InstructionsPath()
		assert.NotContains(t, p, "~")
		assert.Equal(t, "instructions.md", filepath.Base(p))
	})
}
