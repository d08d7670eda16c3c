// Package config provides configuration loading and structs for the kyoshi server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Materials MaterialsConfig `yaml:"materials"`
	LLM       LLMConfig       `yaml:"llm"`
	History   HistoryConfig   `yaml:"history"`
	Escalation EscalationConfig `yaml:"escalation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// MaterialsConfig holds course-materials loading and chunking settings.
type MaterialsConfig struct {
	// Folder is the course materials directory scanned at startup. It is
	// created empty if missing.
	Folder string `yaml:"folder"`
	// ChunkSize and ChunkOverlap are in characters (runes).
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	// DigestMaxChars caps the rendered knowledge digest. 0 means unlimited;
	// when set, whole trailing sections are dropped to fit.
	DigestMaxChars int `yaml:"digest_max_chars"`
	// Watch enables fsnotify-based hot reload of the materials folder.
	Watch bool `yaml:"watch"`
}

// LLMConfig holds settings for the chat-completions backend.
type LLMConfig struct {
	// BaseURL of an OpenAI-compatible API (DeepSeek by default).
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`
	MaxTokens int    `yaml:"max_tokens"`
	// TimeoutSeconds bounds each generation call; expiry is treated as a
	// generation failure.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// HistoryConfig holds conversation history persistence settings.
type HistoryConfig struct {
	// Backend is "file" (one JSON file per session) or "sqlite".
	Backend string `yaml:"backend"`
	// Dir holds per-session history files for the file backend.
	Dir string `yaml:"dir"`
	// DatabasePath is the sqlite database path for the sqlite backend.
	DatabasePath string `yaml:"database_path"`
}

// EscalationConfig holds the pending-escalation audit log settings.
type EscalationConfig struct {
	// LogPath is the append-only JSONL file of pending escalations.
	LogPath string `yaml:"log_path"`
}

// Load reads and parses the config file at path, applies defaults, and
// expands relative paths against the config directory.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Materials.Folder = expandPath(cfg.Materials.Folder, configDir)
	cfg.History.Dir = expandPath(cfg.History.Dir, configDir)
	cfg.History.DatabasePath = expandPath(cfg.History.DatabasePath, configDir)
	cfg.Escalation.LogPath = expandPath(cfg.Escalation.LogPath, configDir)

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
