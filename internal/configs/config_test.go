package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ccrypt/ccrypt/internal/keystream"
)

// useTempSettings points CcryptSettings at a temporary directory.
func useTempSettings(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	original := CcryptSettings
	CcryptSettings = &Settings{
		ConfigPath: filepath.Join(tempDir, "config"),
		DataPath:   filepath.Join(tempDir, "data"),
		Username:   "testuser",
	}
	t.Cleanup(func() {
		CcryptSettings = original
	})
	return tempDir
}

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "nested", "test.toml")

	type TestStruct struct {
		Name string
		Size int64
	}

	if err := SaveTOML(testFile, TestStruct{Name: "report.txt", Size: 42}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded := TestStruct{}
	if err := LoadTOML(testFile, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if loaded.Name != "report.txt" || loaded.Size != 42 {
		t.Errorf("Unexpected data: %+v", loaded)
	}

	entries, err := os.ReadDir(filepath.Dir(testFile))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected no temporary files left behind, got %d entries", len(entries))
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	data := struct{ Name string }{}
	if err := LoadTOML(filepath.Join(t.TempDir(), "nonexistent.toml"), &data); err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	useTempSettings(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !config.Defaults.Compress {
		t.Error("Expected compression on by default")
	}
	if config.Defaults.Extension != DefaultExtension {
		t.Errorf("Expected extension %q, got %q", DefaultExtension, config.Defaults.Extension)
	}

	method, err := config.Method()
	if err != nil {
		t.Fatalf("Method failed: %v", err)
	}
	if method != keystream.MethodXOR {
		t.Errorf("Expected xor, got %s", method)
	}
}

func TestEnsureConfigCreatesOnce(t *testing.T) {
	useTempSettings(t)

	_, created, err := EnsureConfig()
	if err != nil {
		t.Fatalf("EnsureConfig failed: %v", err)
	}
	if !created {
		t.Error("Expected config to be created")
	}
	if _, err := os.Stat(CcryptSettings.ConfigFile()); err != nil {
		t.Fatalf("Config file not written: %v", err)
	}

	_, created, err = EnsureConfig()
	if err != nil {
		t.Fatalf("EnsureConfig failed: %v", err)
	}
	if created {
		t.Error("Expected existing config to be reused")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	useTempSettings(t)

	config := DefaultConfig()
	config.Defaults.Compress = false
	config.Defaults.Method = "lcg"
	config.Catalog.Capacity = 10

	if err := SaveConfig(config); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Defaults.Compress {
		t.Error("Expected compression off")
	}
	if loaded.Catalog.Capacity != 10 {
		t.Errorf("Expected capacity 10, got %d", loaded.Catalog.Capacity)
	}
	method, err := loaded.Method()
	if err != nil || method != keystream.MethodLCG {
		t.Errorf("Expected lcg, got %s (%v)", method, err)
	}
}

func TestConfigInvalidMethod(t *testing.T) {
	config := DefaultConfig()
	config.Defaults.Method = "rot13"
	if _, err := config.Method(); err == nil {
		t.Fatal("Expected error for unknown method")
	}
}

func TestResolveSettingsHonorsCcryptHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CCRYPT_HOME", home)

	settings, err := ResolveSettings()
	if err != nil {
		t.Fatalf("ResolveSettings failed: %v", err)
	}
	if settings.ConfigFile() != filepath.Join(home, "config", "config.toml") {
		t.Errorf("Unexpected config file: %s", settings.ConfigFile())
	}
	if settings.LibraryFile() != filepath.Join(home, "data", "library.toml") {
		t.Errorf("Unexpected library file: %s", settings.LibraryFile())
	}
}
