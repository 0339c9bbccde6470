package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Editor     EditorConfig     `toml:"editor"`
	Transcribe TranscribeConfig `toml:"transcribe"`
	LLM        LLMConfig        `toml:"llm"`
	Slack      SlackConfig      `toml:"slack"`
	Update     UpdateConfig     `toml:"update"`
}

type EditorConfig struct {
	// Command is used when $EDITOR is unset
	Command string `toml:"command"`
}

type TranscribeConfig struct {
	Region         string   `toml:"region"`
	Language       string   `toml:"language"`
	SampleRate     int      `toml:"sample_rate"`
	CaptureCommand []string `toml:"capture_command"`
}

type LLMConfig struct {
	Provider               string `toml:"provider"`
	Model                  string `toml:"model"`
	MaxTokens              int    `toml:"max_tokens"`
	CustomInstructionsFile string `toml:"custom_instructions_file"`
}

type SlackConfig struct {
	WebhookURL string `toml:"webhook_url"`
}

type UpdateConfig struct {
	Enabled        bool      `toml:"enabled"`
	LastCheck      time.Time `toml:"last_check"`
	SkippedVersion string    `toml:"skipped_version"`
	Repo           string    `toml:"repo"`
}

func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			Command: "nvim",
		},
		Transcribe: TranscribeConfig{
			Region:         "ap-northeast-1",
			Language:       "ja-JP",
			SampleRate:     16000,
			CaptureCommand: []string{"arecord", "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw"},
		},
		LLM: LLMConfig{
			Provider:               "bedrock",
			Model:                  "apac.anthropic.claude-sonnet-4-20250514-v1:0",
			MaxTokens:              2000,
			CustomInstructionsFile: ".custom-instructions",
		},
		Update: UpdateConfig{
			Enabled: true,
			Repo:    "wahlandcase/attuned.standup",
		},
	}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "attsup.toml"), nil
}

// Path returns the config file location for display purposes
func Path() (string, error) {
	return configPath()
}

func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			_ = cfg.Save() // Best effort save
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// InstructionsPath returns the expanded path of the per-project
// custom instructions file
func (c *LLMConfig) InstructionsPath() string {
	return expandTilde(c.CustomInstructionsFile)
}

// ShouldCheckForUpdate returns true if update check is enabled and 24h since last check
func (c *Config) ShouldCheckForUpdate() bool {
	if !c.Update.Enabled {
		return false
	}
	return time.Since(c.Update.LastCheck) > 24*time.Hour
}

// RecordUpdateCheck updates the last check time
func (c *Config) RecordUpdateCheck() {
	c.Update.LastCheck = time.Now()
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
