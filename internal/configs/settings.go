package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ccrypt/ccrypt/internal/utils"
)

// Settings holds the resolved locations ccrypt reads and writes.
type Settings struct {
	ConfigPath string
	DataPath   string
	Username   string
}

// CcryptSettings is initialized once at startup.
var CcryptSettings *Settings

func init() {
	settings, err := ResolveSettings()
	if err != nil {
		log.Fatalf("error resolving settings: %s", err)
	}
	CcryptSettings = settings
}

// ResolveSettings computes settings from the environment.
func ResolveSettings() (*Settings, error) {
	username, err := utils.GetUsername()
	if err != nil {
		username = "unknown"
	}

	if home := os.Getenv("CCRYPT_HOME"); home != "" {
		return &Settings{
			ConfigPath: filepath.Join(home, "config"),
			DataPath:   filepath.Join(home, "data"),
			Username:   username,
		}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return &Settings{
		ConfigPath: filepath.Join(configDir, "ccrypt"),
		DataPath:   filepath.Join(dataDir, "ccrypt"),
		Username:   username,
	}, nil
}

// ConfigFile returns the path of config.toml.
func (s *Settings) ConfigFile() string {
	return filepath.Join(s.ConfigPath, "config.toml")
}

// LibraryFile returns the default path of the persisted catalog.
func (s *Settings) LibraryFile() string {
	return filepath.Join(s.DataPath, "library.toml")
}

// AuditFile returns the path of the audit log.
func (s *Settings) AuditFile() string {
	return filepath.Join(s.DataPath, "audit.jsonl")
}
