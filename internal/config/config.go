package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RetrievalConfig controls passage extraction.
type RetrievalConfig struct {
	MaxContexts   int `yaml:"max_contexts"`
	ContextWindow int `yaml:"context_window"`
}

// AnswerConfig controls response assembly. IncludeSupplementary is a
// pointer so that an absent key means "enabled" rather than false.
type AnswerConfig struct {
	IncludeSupplementary *bool `yaml:"include_supplementary,omitempty"`
}

// SupplementaryEnabled reports whether supplementary lookups are on
// (the default when unset).
func (a AnswerConfig) SupplementaryEnabled() bool {
	return a.IncludeSupplementary == nil || *a.IncludeSupplementary
}

// TopicsConfig selects the topic detector implementation.
type TopicsConfig struct {
	Type string `yaml:"type"`
}

// SummarizerConfig selects and configures the corpus summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Answer     AnswerConfig     `yaml:"answer"`
	Topics     TopicsConfig     `yaml:"topics"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then
// ~/.config/orchestra-chatbot/config.yaml. If neither exists, it writes
// defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "orchestra-chatbot", "config.yaml"), nil
}

// Default returns the stock configuration.
func Default() *AppConfig {
	return &AppConfig{
		Retrieval:  RetrievalConfig{MaxContexts: 3, ContextWindow: 3},
		Answer:     AnswerConfig{},
		Topics:     TopicsConfig{Type: "capitalized"},
		Summarizer: SummarizerConfig{Type: "frequency", MaxSentences: 5},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Retrieval.MaxContexts == 0 {
		cfg.Retrieval.MaxContexts = 3
	}
	if cfg.Retrieval.ContextWindow == 0 {
		cfg.Retrieval.ContextWindow = 3
	}
	if cfg.Topics.Type == "" {
		cfg.Topics.Type = "capitalized"
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = "frequency"
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 5
	}
}
