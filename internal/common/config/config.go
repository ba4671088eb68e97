// internal/common/config/config.go
package config

import "strings"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Directus DirectusConfig `mapstructure:"directus"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DirectusConfig holds connection settings for the headless CMS.
type DirectusConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	Token       string `mapstructure:"token"`
	Collections string `mapstructure:"collections"` // comma-separated
	Timeout     int    `mapstructure:"timeout"`     // milliseconds
}

// CollectionList returns the configured collection names, trimmed, with
// empty entries dropped. Order follows the configured list.
func (d DirectusConfig) CollectionList() []string {
	parts := strings.Split(d.Collections, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// LLMConfig holds settings for the text-completion provider.
type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// ChatConfig holds pipeline behavior settings.
type ChatConfig struct {
	MaxPromptTokens int `mapstructure:"max_prompt_tokens"`
	// IncludeUnfilteredContext enables the second, unfiltered retrieval
	// pass in full mode. Doubles the per-request CMS call count.
	IncludeUnfilteredContext bool `mapstructure:"include_unfiltered_context"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
