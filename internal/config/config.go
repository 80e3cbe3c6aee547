package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultBaseURL is where the glossary API listens unless configured otherwise.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Config holds application configuration shared by glossview and glossaryd.
type Config struct {
	API      APIConfig
	Log      LogConfig
	Server   ServerConfig
	Database DatabaseConfig
	Graph    GraphConfig
	UI       UIConfig
}

// APIConfig holds client settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// LogConfig holds zap settings. An empty File logs to stderr.
type LogConfig struct {
	Level string
	File  string
}

// ServerConfig holds glossaryd listener settings.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// GraphConfig points at the JSON document served by GET /graph.
type GraphConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Mouse bool
}

// Load reads configuration from file and env. Env var overrides use prefix GLOSSVIEW_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(os.Getenv("HOME"), ".local", "state", "glossview", "glossview.log"))
	v.SetDefault("server.addr", "127.0.0.1:8000")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("database.path", "glossary.db")
	v.SetDefault("graph.path", "graph.json")
	v.SetDefault("ui.mouse", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("GLOSSVIEW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "glossview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("GLOSSVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	return c, nil
}

// Path is the file Save writes: GLOSSVIEW_CONFIG, else ~/.config/glossview/config.toml.
func Path() string {
	if path := os.Getenv("GLOSSVIEW_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "glossview", "config.toml")
}

// Save writes the provided config to Path, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("server.allowed_origins", cfg.Server.AllowedOrigins)
	v.Set("database.path", cfg.Database.Path)
	v.Set("graph.path", cfg.Graph.Path)
	v.Set("ui.mouse", cfg.UI.Mouse)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
