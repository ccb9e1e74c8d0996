package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"

	"github.com/ccrypt/ccrypt/internal/configs"
	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/ui"
	"github.com/ccrypt/ccrypt/internal/utils"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// loadLibrary loads the config and the catalog it points at.
func loadLibrary() (*configs.Config, *configs.Library, error) {
	Logger.Debugf("Loading config from %s", configs.CcryptSettings.ConfigFile())
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	path := config.LibraryPath()
	Logger.Debugf("Loading catalog from %s", path)
	lib, err := configs.LoadLibrary(path, config.Catalog.Capacity)
	if err != nil {
		return nil, nil, err
	}
	Logger.Infof("Loaded catalog %s with %d records", lib.UUID, lib.Len())
	return config, lib, nil
}

// saveLibrary persists the catalog when it was modified.
func saveLibrary(lib *configs.Library) error {
	saved, err := configs.SaveLibraryIfModified(lib)
	if err != nil {
		return err
	}
	if saved {
		Logger.Infof("Saved catalog to %s", lib.Path)
	} else {
		Logger.Debugf("Catalog unchanged, not saving")
	}
	return nil
}

// readPassword reads the password from stdin when fromStdin is set, and
// otherwise prompts without echo. confirm asks twice.
func readPassword(fromStdin, confirm bool) ([]byte, error) {
	if fromStdin {
		data, err := utils.ReadStdin()
		if err != nil {
			return nil, err
		}
		password := utils.TrimPassword(data)
		if len(password) == 0 {
			clear(data)
			return nil, kerrors.ErrInvalidCredential
		}
		return password, nil
	}

	password, err := utils.ReadPassphrase("Enter password: ")
	if err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, kerrors.ErrInvalidCredential
	}

	if confirm {
		again, err := utils.ReadPassphrase("Confirm password: ")
		defer clear(again)
		if err != nil {
			clear(password)
			return nil, err
		}
		if !bytes.Equal(again, password) {
			clear(password)
			return nil, fmt.Errorf("%w: passwords do not match", kerrors.ErrInvalidCredential)
		}
	}
	return password, nil
}

// parseIndex converts the 1-based number shown to users into a catalog index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a catalog number", kerrors.ErrInvalidIndex, arg)
	}
	return n - 1, nil
}

// formatError formats an expected error for display to the user.
func formatError(action string, err error) string {
	prefix := ui.Error.Sprint("✗") + " "
	switch {
	case errors.Is(err, kerrors.ErrInvalidIndex):
		return prefix + "No such catalog entry\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ccrypt list") + " to see valid numbers"

	case errors.Is(err, kerrors.ErrNotFound):
		return prefix + "File not found: " + err.Error()

	case errors.Is(err, kerrors.ErrNoFilesFound):
		return prefix + "No files matched the given paths"

	case errors.Is(err, kerrors.ErrPermissionDenied):
		return prefix + "Permission denied: " + err.Error()

	case errors.Is(err, kerrors.ErrInvalidCredential):
		return prefix + "Invalid password: " + err.Error()

	case errors.Is(err, kerrors.ErrResourceExhausted):
		return prefix + "File too large: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Raise " + ui.Code.Sprint("limits.max_file_size") + " in " +
			ui.Path.Sprint(configs.CcryptSettings.ConfigFile())

	case errors.Is(err, kerrors.ErrMalformedContainer):
		return prefix + "Not a valid ccrypt container (or wrong password): " + err.Error()

	case errors.Is(err, kerrors.ErrUnsupportedMethod):
		return prefix + "Unsupported method: " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--method xor") + " or " + ui.Flag.Sprint("--method lcg")

	case errors.Is(err, kerrors.ErrCapacityExceeded):
		return prefix + "The catalog is full\n" +
			ui.Info.Sprint("→") + " Delete entries with " + ui.Code.Sprint("ccrypt delete <n>") +
			" or raise " + ui.Code.Sprint("catalog.capacity")

	case errors.Is(err, kerrors.ErrRenameFailed),
		errors.Is(err, kerrors.ErrDeleteFailed),
		errors.Is(err, kerrors.ErrInvalidName),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return prefix + err.Error()

	case errors.Is(err, kerrors.ErrCatalogCorrupt):
		return prefix + "The catalog file could not be read: " + err.Error()

	default:
		return prefix + "Failed to " + action + ": " + err.Error()
	}
}

// isUnexpectedError returns true if the error is unexpected and should cause
// a non-zero exit.
func isUnexpectedError(err error) bool {
	switch {
	case errors.Is(err, kerrors.ErrInvalidIndex),
		errors.Is(err, kerrors.ErrNotFound),
		errors.Is(err, kerrors.ErrNoFilesFound),
		errors.Is(err, kerrors.ErrPermissionDenied),
		errors.Is(err, kerrors.ErrInvalidCredential),
		errors.Is(err, kerrors.ErrResourceExhausted),
		errors.Is(err, kerrors.ErrMalformedContainer),
		errors.Is(err, kerrors.ErrUnsupportedMethod),
		errors.Is(err, kerrors.ErrCapacityExceeded),
		errors.Is(err, kerrors.ErrRenameFailed),
		errors.Is(err, kerrors.ErrDeleteFailed),
		errors.Is(err, kerrors.ErrInvalidName),
		errors.Is(err, kerrors.ErrInvalidDateFormat):
		return false
	default:
		return true
	}
}

// failWith sets the spinner's final message for err and returns err only
// when it is unexpected.
func failWith(s *spinner.Spinner, action string, err error) error {
	Logger.Errorf("Failed to %s: %v", action, err)
	s.FinalMSG = formatError(action, err)
	if isUnexpectedError(err) {
		return err
	}
	return nil
}
