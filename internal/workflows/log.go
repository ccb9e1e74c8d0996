package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ccrypt/ccrypt/internal/audit"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// User filters entries by system user.
	User string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log.
//
// Returns ErrNoFilesFound if no audit log exists.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logPath := audit.LogPath()
	if logPath == "" {
		return nil, kerrors.ErrNoFilesFound
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, kerrors.ErrNoFilesFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	entries, err := audit.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	keep, err := logFilters(opts)
	if err != nil {
		return nil, err
	}

	filtered := entries[:0:0]
	for _, e := range entries {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}

	// The limit always keeps the most recent entries.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[len(filtered)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(filtered)
	}

	result.Entries = filtered
	return result, nil
}

// logFilters combines the user, operation and date filters of opts into one
// predicate.
func logFilters(opts LogOptions) (func(audit.Entry) bool, error) {
	var preds []func(audit.Entry) bool

	if opts.User != "" {
		preds = append(preds, func(e audit.Entry) bool { return strings.EqualFold(e.User, opts.User) })
	}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		preds = append(preds, func(e audit.Entry) bool { return ops[strings.ToLower(e.Operation)] })
	}

	if opts.Since != "" {
		since, err := parseDay("--since", opts.Since)
		if err != nil {
			return nil, err
		}
		preds = append(preds, entryTime(func(t time.Time) bool { return !t.Before(since) }))
	}

	if opts.Until != "" {
		until, err := parseDay("--until", opts.Until)
		if err != nil {
			return nil, err
		}
		// Include the whole day.
		until = until.Add(24*time.Hour - time.Nanosecond)
		preds = append(preds, entryTime(func(t time.Time) bool { return !t.After(until) }))
	}

	return func(e audit.Entry) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}, nil
}

func parseDay(flag, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat, flag)
	}
	return t, nil
}

// entryTime adapts a timestamp check to an entry predicate. Entries with an
// unreadable timestamp never match.
func entryTime(ok func(time.Time) bool) func(audit.Entry) bool {
	return func(e audit.Entry) bool {
		t, err := audit.ParseTimestamp(e.Timestamp)
		return err == nil && ok(t)
	}
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := audit.ParseTimestamp(ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := audit.ParseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	var details string
	switch e.Operation {
	case "encrypt":
		details = formatFiles(e.Files, 3)
		if e.Method != "" && details != "" {
			details += " [" + e.Method + "]"
		}
	case "decrypt":
		details = e.Artifact
		if len(e.Files) == 1 {
			details += " -> " + e.Files[0]
		}
	case "rename":
		details = fmt.Sprintf("%s -> %s", e.Artifact, e.NewName)
	case "delete":
		details = e.Artifact
	case "verify":
		details = e.Original
		if e.Verified != nil {
			if *e.Verified {
				details += " (match)"
			} else {
				details += " (mismatch)"
			}
		}
	}
	if e.Warning != "" {
		details += " ! " + e.Warning
	}
	return strings.TrimSpace(details)
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	switch e.Operation {
	case "encrypt":
		return formatFiles(e.Files, 1)
	case "decrypt", "delete":
		return filepath.Base(e.Artifact)
	case "rename":
		return fmt.Sprintf("%s -> %s", filepath.Base(e.Artifact), filepath.Base(e.NewName))
	case "verify":
		return e.Original
	default:
		return ""
	}
}

// formatFiles lists up to max base names, or a count beyond that.
func formatFiles(files []string, max int) string {
	if len(files) == 0 {
		return ""
	}
	if len(files) > max {
		return fmt.Sprintf("%d files", len(files))
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return strings.Join(names, ", ")
}
