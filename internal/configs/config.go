package configs

import (
	"fmt"
	"os"

	"github.com/ccrypt/ccrypt/internal/keystream"
)

// DefaultExtension is appended to artifact names.
const DefaultExtension = ".ccrypt"

// Config is the user configuration stored in config.toml.
type Config struct {
	Defaults Defaults      `toml:"defaults"`
	Catalog  CatalogConfig `toml:"catalog"`
	Limits   Limits        `toml:"limits"`
}

// Defaults holds the encrypt defaults used when no flag overrides them.
type Defaults struct {
	Compress  bool   `toml:"compress"`
	Method    string `toml:"method"`
	OutputDir string `toml:"output_dir,omitempty"`
	Extension string `toml:"extension"`
}

// CatalogConfig configures the persisted catalog.
type CatalogConfig struct {
	// Capacity bounds the catalog. 0 means unbounded.
	Capacity int `toml:"capacity"`
	// Path overrides the library file location.
	Path string `toml:"path,omitempty"`
}

// Limits bounds resource usage.
type Limits struct {
	// MaxFileSize rejects larger inputs. 0 means no limit.
	MaxFileSize int64 `toml:"max_file_size"`
}

// DefaultConfig returns the configuration used when config.toml does not exist.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Compress:  true,
			Method:    keystream.MethodXOR.String(),
			Extension: DefaultExtension,
		},
		Limits: Limits{
			MaxFileSize: 1 << 30,
		},
	}
}

// Method returns the configured default keystream method.
func (c *Config) Method() (keystream.Method, error) {
	m, err := keystream.ParseMethod(c.Defaults.Method)
	if err != nil {
		return 0, fmt.Errorf("config defaults.method: %w", err)
	}
	return m, nil
}

// LibraryPath returns the catalog file location.
func (c *Config) LibraryPath() string {
	if c.Catalog.Path != "" {
		return c.Catalog.Path
	}
	return CcryptSettings.LibraryFile()
}

// LoadConfig loads config.toml, falling back to DefaultConfig when it does
// not exist. Missing keys keep their defaults.
func LoadConfig() (*Config, error) {
	configPath := CcryptSettings.ConfigFile()
	config := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Defaults.Extension == "" {
		config.Defaults.Extension = DefaultExtension
	}

	return config, nil
}

// SaveConfig writes config.toml.
func SaveConfig(config *Config) error {
	if err := SaveTOML(CcryptSettings.ConfigFile(), config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// EnsureConfig loads config.toml and writes the defaults if it is missing.
// It reports whether a new file was created.
func EnsureConfig() (*Config, bool, error) {
	if _, err := os.Stat(CcryptSettings.ConfigFile()); err == nil {
		config, err := LoadConfig()
		return config, false, err
	}

	config := DefaultConfig()
	if err := SaveConfig(config); err != nil {
		return nil, false, err
	}
	return config, true, nil
}
