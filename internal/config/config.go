// Package config loads gateway settings from an optional config file, an
// optional .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
	"github.com/spf13/viper"

	"github.com/0xcro3dile/neurobot-go/internal/logger"
)

// EnvPrefix prefixes every overridable key, e.g. NEUROBOT_SERVER_ADDRESS.
const EnvPrefix = "NEUROBOT"

// CredentialEnv is the variable holding the upstream API key.
const CredentialEnv = "GROQ_API_KEY"

// Config holds all gateway configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Document DocumentConfig `mapstructure:"document"`
	Export   ExportConfig   `mapstructure:"export"`

	// File is the config file that was read, empty if none.
	File string `mapstructure:"-"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	MaxUploadSize   string        `mapstructure:"max_upload_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LLMConfig describes the upstream chat-completion API.
type LLMConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	Model                string        `mapstructure:"model"`
	APIKey               string        `mapstructure:"api_key"`
	ChatTimeout          time.Duration `mapstructure:"chat_timeout"`
	SummarizeTimeout     time.Duration `mapstructure:"summarize_timeout"`
	MaxRetries           int           `mapstructure:"max_retries"`
	RetryInitialInterval time.Duration `mapstructure:"retry_initial_interval"`
}

// DocumentConfig bounds what is extracted from uploads.
type DocumentConfig struct {
	MaxChars int `mapstructure:"max_chars"`
}

// ExportConfig controls the conversation PDF.
type ExportConfig struct {
	Filename   string  `mapstructure:"filename"`
	Font       string  `mapstructure:"font"`
	FontSize   float64 `mapstructure:"font_size"`
	LineHeight float64 `mapstructure:"line_height"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.max_upload_size", "20M")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1/chat/completions")
	v.SetDefault("llm.model", "llama3-70b-8192")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.chat_timeout", 10*time.Second)
	v.SetDefault("llm.summarize_timeout", 15*time.Second)
	v.SetDefault("llm.max_retries", 0)
	v.SetDefault("llm.retry_initial_interval", 500*time.Millisecond)
	v.SetDefault("document.max_chars", 3000)
	v.SetDefault("export.filename", "neurobot_conversation.pdf")
	v.SetDefault("export.font", "Arial")
	v.SetDefault("export.font_size", 12)
	v.SetDefault("export.line_height", 10)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", CredentialEnv)
	return v
}

// Load reads configuration once. path names an explicit config file; when
// empty, config.{yaml,json,toml} is looked up in . and ./config and a
// missing file is not an error. dotenv names a .env file consulted for the
// credential when the environment does not provide it; a missing .env file
// is ignored.
func Load(path, dotenv string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.LLM.APIKey == "" && dotenv != "" {
		key, err := readDotenvCredential(dotenv)
		if err != nil {
			return nil, err
		}
		cfg.LLM.APIKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// readDotenvCredential returns the credential from a dotenv file, or "" if
// the file does not exist.
func readDotenvCredential(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return strings.TrimSpace(v.GetString(CredentialEnv)), nil
}

// LoadLogLevel re-reads only log.level from path, honouring the same
// environment override as Load.
func LoadLogLevel(path string) (logger.Level, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return logger.LevelInfo, fmt.Errorf("reading config file: %w", err)
	}
	return logger.ParseLevel(v.GetString("log.level"))
}

// Validate rejects settings the gateway cannot run with. A missing
// credential is not an error here; it is reported per request.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Address) == "" {
		return errors.New("server.address is required")
	}
	if _, err := bytes.Parse(c.Server.MaxUploadSize); err != nil {
		return fmt.Errorf("server.max_upload_size: %w", err)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be greater than zero")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.LLM.ChatTimeout <= 0 {
		return errors.New("llm.chat_timeout must be greater than zero")
	}
	if c.LLM.SummarizeTimeout <= 0 {
		return errors.New("llm.summarize_timeout must be greater than zero")
	}
	if c.LLM.MaxRetries < 0 {
		return errors.New("llm.max_retries cannot be negative")
	}
	if c.Document.MaxChars <= 0 {
		return errors.New("document.max_chars must be greater than zero")
	}
	if c.Export.FontSize <= 0 {
		return errors.New("export.font_size must be greater than zero")
	}
	if c.Export.LineHeight <= 0 {
		return errors.New("export.line_height must be greater than zero")
	}
	if strings.TrimSpace(c.Export.Filename) == "" {
		return errors.New("export.filename is required")
	}
	return nil
}

// LogLevel returns the parsed log level. Validate guarantees it parses.
func (c *Config) LogLevel() logger.Level {
	l, _ := logger.ParseLevel(c.Log.Level)
	return l
}
