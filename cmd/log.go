package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccrypt/ccrypt/internal/audit"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/ui"
	"github.com/ccrypt/ccrypt/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by system user")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of ccrypt operations.

Every encrypt, decrypt, rename, delete and verify is recorded with the user
and time. Use filters to narrow down the results.

Examples:
  ccrypt log                              # View full log
  ccrypt log -n 10                        # Last 10 entries
  ccrypt log --reverse                    # Most recent first
  ccrypt log --operation encrypt,decrypt  # Filter by operation
  ccrypt log --since 2026-01-01           # Filter by date
  ccrypt log --json                       # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)
	defer func() { cleanup() }()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		User:       logUser,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		spinner.FinalMSG = formatLogError(err)
		if isLogUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		spinner.FinalMSG = "No audit log entries found."
		if result.TotalEntriesBeforeFilter > 0 {
			spinner.FinalMSG = "No audit log entries found matching the filters."
		}
		return nil
	}

	// Stop the spinner before printing entries.
	cleanup()
	cleanup = func() {}

	if logJSON {
		if err := outputLogJSON(result.Entries); err != nil {
			return err
		}
		return nil
	}

	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

// formatLogError formats a log error for display to the user.
func formatLogError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once you run " + ui.Code.Sprint("ccrypt encrypt")

	case errors.Is(err, kerrors.ErrInvalidDateFormat):
		return ui.Error.Sprint("✗") + " " + err.Error()

	default:
		return ui.Error.Sprint("✗") + " Failed to read audit log: " + err.Error()
	}
}

// isLogUnexpectedError returns true if the error is unexpected and should cause a non-zero exit.
func isLogUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Printf("%s %s %s %s\n", date, e.User, e.Operation, details)
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-16s  %-8s  %s\n", datetime, e.User, e.Operation, details)
	}
}
