package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	DefaultDeck string `toml:"default_deck"`
	DecksDir    string `toml:"decks_dir,omitempty"`
}

// Env holds the environment overrides
type Env struct {
	XDGDataHome   string `env:"XDG_DATA_HOME"`
	XDGConfigHome string `env:"XDG_CONFIG_HOME"`
	ConfigFile    string `env:"CARDSHEET_CONFIG"`
	DecksDir      string `env:"CARDSHEET_DECKS_DIR"`
	Template      string `env:"CARDSHEET_TEMPLATE"`
}

// LoadEnv reads the environment overrides
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("error reading environment: %w", err)
	}
	return e, nil
}

// currentEnv is LoadEnv for the path getters, which return plain strings.
// Every Env field is an optional string, and env.Parse only fails on
// required fields or values it must convert, so the error is always nil.
// Add a typed or required field and callers must use LoadEnv instead.
func currentEnv() Env {
	e, _ := LoadEnv()
	return e
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := currentEnv().XDGDataHome; xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := currentEnv().XDGConfigHome; xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDeckLibraryPath returns the directory decks are looked up in.
// CARDSHEET_DECKS_DIR wins over the config file, which wins over the
// XDG data directory.
func GetDeckLibraryPath() string {
	if dir := currentEnv().DecksDir; dir != "" {
		return dir
	}
	if cfg, err := readConfig(GetConfigFilePath()); err == nil && cfg.DecksDir != "" {
		return cfg.DecksDir
	}
	return filepath.Join(GetXDGDataHome(), "cardsheet", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardsheet", "config.toml")
}

// LoadConfig loads the config file
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	return readConfig(configPath)
}

func readConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	return &config, nil
}

// createDefaultConfig creates an empty config file
func createDefaultConfig() (*Config, error) {
	config := &Config{}
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return nil
}

// GetDeckPath returns the path to a deck file, either in the deck library
// or a relative path
func GetDeckPath(deckName string) (string, error) {
	deckPath := filepath.Join(GetDeckLibraryPath(), deckName)
	if _, err := os.Stat(deckPath); err == nil {
		return deckPath, nil
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(deckName); err == nil {
		return deckName, nil
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName
	return writeConfig(config)
}
