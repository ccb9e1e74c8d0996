package utils

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// ReadPassphrase prompts for a password without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read password: stdin is not a terminal (hint: use --password-stdin)")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}

	return passphrase, nil
}
