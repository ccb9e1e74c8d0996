// Testing utilities shared between the cmd tests: an isolated ccrypt home,
// captured output, and a fresh command tree per run.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ccrypt/ccrypt/internal/configs"
	logger "github.com/ccrypt/ccrypt/internal/logging"
)

// setupTestEnvironment points ccrypt at a temporary home, changes into a
// temporary working directory and returns it.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	originalSettings := configs.CcryptSettings

	home := t.TempDir()
	workDir := filepath.Join(home, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work directory: %v", err)
	}

	configs.CcryptSettings = &configs.Settings{
		ConfigPath: filepath.Join(home, "config"),
		DataPath:   filepath.Join(home, "data"),
		Username:   "testuser",
	}

	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.CcryptSettings = originalSettings
		ResetGlobalState()
	})

	return workDir
}

// withStdin replaces os.Stdin with a pipe carrying content for the duration of fn.
func withStdin(t *testing.T, content string, fn func() error) error {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("Failed to write to pipe: %v", err)
	}
	w.Close()

	original := os.Stdin
	os.Stdin = r
	defer func() {
		os.Stdin = original
		r.Close()
	}()

	return fn()
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		stderrChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, err
}

// createTestCLI returns the command tree with args set and flags reset.
func createTestCLI(args ...string) *cobra.Command {
	ResetGlobalState()
	resetFlagsChanged(RootCmd)

	Logger = logger.Logger{}

	RootCmd.SetArgs(args)
	return RootCmd
}

// runCLI executes args with stdin feeding the password, capturing output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return captureOutput(func() error {
		return withStdin(t, stdin, func() error {
			return createTestCLI(args...).Execute()
		})
	})
}

// resetFlagsChanged clears cobra's "changed" markers left by earlier runs.
func resetFlagsChanged(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlagsChanged(sub)
	}
}
