// Package configs manages ccrypt settings, configuration, and the persisted
// catalog.
//
// Everything is stored in TOML:
//
//   - Config: <config dir>/ccrypt/config.toml (defaults, catalog and limits)
//   - Library: <data dir>/ccrypt/library.toml (catalog records and next id)
//
// # Settings
//
// CcryptSettings is initialized at startup with the config directory
// (os.UserConfigDir), the data directory ($XDG_DATA_HOME or
// ~/.local/share) and the current username. Setting CCRYPT_HOME places both
// directories under that path instead.
//
// # Library
//
// LoadLibrary returns an empty catalog when no library file exists yet, and
// ErrCatalogCorrupt when the file cannot be parsed. SaveLibrary writes the
// current snapshot and clears the catalog's modified flag.
package configs
