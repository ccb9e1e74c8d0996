package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ccrypt/ccrypt/internal/configs"
)

// TimestampFormat is the layout entries are stamped with.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // System user performing the action.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Files     []string `json:"files,omitempty"`       // For encrypt/decrypt.
	Artifacts []string `json:"artifacts,omitempty"`   // For encrypt.
	Original  string   `json:"original,omitempty"`    // For rename/delete/decrypt.
	NewName   string   `json:"new_name,omitempty"`    // For rename.
	Artifact  string   `json:"artifact,omitempty"`    // For delete/decrypt.
	Method    string   `json:"method,omitempty"`      // For encrypt.
	Warning   string   `json:"warning,omitempty"`     // Seed or checksum mismatch.
	Verified  *bool    `json:"verified,omitempty"`    // For verify.
	Sequence  int      `json:"sequence_id,omitempty"` // Catalog record id.
}

// Log appends an entry to the audit log.
// Operations should not fail just because audit logging failed, so errors
// are swallowed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry for op with the user field populated.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}
	if configs.CcryptSettings != nil {
		entry.User = configs.CcryptSettings.Username
	}
	return entry
}

// LogPath returns the path to the audit log file, or "" when settings
// are unavailable.
func LogPath() string {
	if configs.CcryptSettings == nil {
		return ""
	}
	return configs.CcryptSettings.AuditFile()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Partial writes leave truncated lines behind.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// ParseTimestamp parses an entry timestamp, accepting plain RFC3339 too.
func ParseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}
