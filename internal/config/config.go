// Package config loads studybuddy settings from an optional YAML file, a
// .env file and STUDYBUDDY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/studybuddy/internal/backend"
	"github.com/abhisek/studybuddy/internal/document"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/store"
)

// Service modes.
const (
	ModeRemote = "remote" // study-buddy backend
	ModeLLM    = "llm"    // LLM provider called directly
)

const envPrefix = "STUDYBUDDY"

var ErrInvalidMode = errors.New("invalid mode")

// Config holds application configuration.
type Config struct {
	Env     string        `mapstructure:"env"`      // development or production logging
	Mode    string        `mapstructure:"mode"`     // remote or llm
	DBPath  string        `mapstructure:"db_path"`  // empty means the XDG data path
	LogFile string        `mapstructure:"log_file"` // empty means next to the database
	Backend BackendConfig `mapstructure:"backend"`
	Upload  UploadConfig  `mapstructure:"upload"`
	LLM     LLMConfig     `mapstructure:"llm"`
}

// BackendConfig configures the study-buddy HTTP backend.
type BackendConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UploadConfig limits accepted documents.
type UploadConfig struct {
	MaxSize int64 `mapstructure:"max_size"` // bytes
}

// LLMConfig selects and configures the direct LLM provider.
type LLMConfig struct {
	Provider         string         `mapstructure:"provider"`
	Timeout          time.Duration  `mapstructure:"timeout"`
	MaxDocumentChars int            `mapstructure:"max_document_chars"`
	Anthropic        ProviderConfig `mapstructure:"anthropic"`
	OpenAI           ProviderConfig `mapstructure:"openai"`
	Gemini           ProviderConfig `mapstructure:"gemini"`
	OpenRouter       ProviderConfig `mapstructure:"openrouter"`
}

// ProviderConfig holds one provider's credentials.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Options controls where Load looks.
type Options struct {
	ConfigFile string // explicit YAML file; empty searches the defaults
	EnvFile    string // dotenv file; empty means ".env"
}

// Load reads configuration. Values resolve, highest first: environment,
// dotenv file, YAML file, defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("studybuddy")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "studybuddy"))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("env", "production")
	v.SetDefault("mode", ModeRemote)
	v.SetDefault("db_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("backend.url", backend.DefaultURL)
	v.SetDefault("backend.timeout", backend.DefaultTimeout)
	v.SetDefault("upload.max_size", document.DefaultMaxSize)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.max_document_chars", def.MaxDocumentChars)

	models := map[string]string{
		llm.ProviderAnthropic:  def.Anthropic.Model,
		llm.ProviderOpenAI:     def.OpenAI.Model,
		llm.ProviderGemini:     def.Gemini.Model,
		llm.ProviderOpenRouter: def.OpenRouter.Model,
	}
	for name, model := range models {
		v.SetDefault("llm."+name+".api_key", "")
		v.SetDefault("llm."+name+".model", model)
		v.SetDefault("llm."+name+".base_url", "")
	}
}

// Validate checks the mode and, in llm mode, that a provider is usable.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeRemote:
		if c.Backend.URL == "" {
			return errors.New("backend.url is required in remote mode")
		}
		return nil
	case ModeLLM:
		return c.LLMProviderConfig().Validate()
	default:
		return fmt.Errorf("%w %q: want %s or %s", ErrInvalidMode, c.Mode, ModeRemote, ModeLLM)
	}
}

// LLMProviderConfig builds the provider configuration. When no key is
// configured at all, the standard API key variables are probed.
func (c *Config) LLMProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()
	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	if c.LLM.MaxDocumentChars > 0 {
		cfg.MaxDocumentChars = c.LLM.MaxDocumentChars
	}

	cfg.Anthropic.APIKey = c.LLM.Anthropic.APIKey
	cfg.Anthropic.Model = orDefault(c.LLM.Anthropic.Model, cfg.Anthropic.Model)
	cfg.Anthropic.BaseURL = c.LLM.Anthropic.BaseURL
	cfg.OpenAI.APIKey = c.LLM.OpenAI.APIKey
	cfg.OpenAI.Model = orDefault(c.LLM.OpenAI.Model, cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	cfg.Gemini.APIKey = c.LLM.Gemini.APIKey
	cfg.Gemini.Model = orDefault(c.LLM.Gemini.Model, cfg.Gemini.Model)
	cfg.Gemini.BaseURL = c.LLM.Gemini.BaseURL
	cfg.OpenRouter.APIKey = c.LLM.OpenRouter.APIKey
	cfg.OpenRouter.Model = orDefault(c.LLM.OpenRouter.Model, cfg.OpenRouter.Model)
	cfg.OpenRouter.BaseURL = c.LLM.OpenRouter.BaseURL

	if cfg.HasKey() || anyKey(c.LLM) {
		return cfg
	}
	if found, ok := llm.DiscoverConfig(cfg); ok {
		return found
	}
	return cfg
}

func anyKey(l LLMConfig) bool {
	return l.Anthropic.APIKey != "" || l.OpenAI.APIKey != "" || l.Gemini.APIKey != "" || l.OpenRouter.APIKey != ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ResolveDBPath returns the database path, creating its directory.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, store.EnsureDir(c.DBPath)
	}
	return store.DefaultDBPath()
}

// ResolveLogFile returns the log file path. It defaults to studybuddy.log
// beside the database.
func (c *Config) ResolveLogFile() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	db, err := c.ResolveDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(db), "studybuddy.log"), nil
}
