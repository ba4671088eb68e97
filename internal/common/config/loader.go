// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DIRECTUS_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not present
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideFromEnv(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from multiple possible locations (running from different directories).
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// setDefaults registers defaults on the viper instance itself so that
// unmarshalling fills them independently of each other. Boolean settings in
// particular must default here: once unmarshalled, false and unset are
// indistinguishable on the struct.
func setDefaults(v *viper.Viper) {
	v.SetDefault("chat.max_prompt_tokens", 30000)
	v.SetDefault("chat.include_unfiltered_context", true)
}

// expandEnvVars replaces ${VAR} placeholders in string settings with the
// corresponding environment variable values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)
		if s, ok := val.(string); ok && strings.Contains(s, "${") {
			v.Set(key, os.ExpandEnv(s))
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tourism-chatbot"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Directus.Collections == "" {
		cfg.Directus.Collections = "Items,Drivers,Category,SubCategory"
	}
	if cfg.Directus.Timeout == 0 {
		cfg.Directus.Timeout = 30000
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60000
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// overrideFromEnv fills required settings straight from the environment when
// the config files left them empty. DIRECTUS_COLLECTIONS always wins when
// set, matching viper's env-over-file precedence.
func overrideFromEnv(cfg *Config) {
	if cfg.Directus.BaseURL == "" {
		cfg.Directus.BaseURL = os.Getenv("DIRECTUS_BASE_URL")
	}
	if cfg.Directus.Token == "" {
		cfg.Directus.Token = os.Getenv("DIRECTUS_TOKEN")
	}
	if v := os.Getenv("DIRECTUS_COLLECTIONS"); v != "" {
		cfg.Directus.Collections = v
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("LLM_BASE_URL")
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Directus.BaseURL == "" {
		return fmt.Errorf("directus.base_url is required (DIRECTUS_BASE_URL)")
	}
	if cfg.Directus.Token == "" {
		return fmt.Errorf("directus.token is required (DIRECTUS_TOKEN)")
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required (LLM_API_KEY)")
	}
	if len(cfg.Directus.CollectionList()) == 0 {
		return fmt.Errorf("directus.collections must name at least one collection")
	}
	return nil
}
