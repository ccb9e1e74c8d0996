package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ccrypt/ccrypt/internal/ui"
	"github.com/ccrypt/ccrypt/internal/utils"
	"github.com/ccrypt/ccrypt/internal/workflows"
)

var (
	decryptOutput        string
	decryptPasswordStdin bool
)

func init() {
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "where to write the plaintext (default <container>_dec)")
	decryptCmd.Flags().BoolVar(&decryptPasswordStdin, "password-stdin", false, "read the password from stdin")
}

func resetDecryptCommandState() {
	decryptOutput = ""
	decryptPasswordStdin = false
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <number|path>",
	Short: "Decrypt a container from the catalog or from disk",
	Long: `Decrypts a container selected by its catalog number (see ccrypt list) or by path.

Decrypting a catalogued container compares the result with the checksum
recorded at encryption time, so a wrong password is reported.

Examples:
  ccrypt decrypt 3
  ccrypt decrypt notes.ccrypt --output notes.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runDecrypt,
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting decrypt command")

	config, lib, err := loadLibrary()
	if err != nil {
		return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
	}

	opts := workflows.DecryptOptions{
		Output:  decryptOutput,
		MaxSize: config.Limits.MaxFileSize,
	}

	// A number that is not also a file on disk selects a catalog entry.
	if _, convErr := strconv.Atoi(args[0]); convErr == nil && !utils.FileExists(args[0]) {
		index, err := parseIndex(args[0])
		if err != nil {
			spinner, cleanup := startSpinner("Decrypting...", verbose)
			defer cleanup()
			return failWith(spinner, "decrypt", err)
		}
		opts.ByIndex = true
		opts.Index = index
	} else {
		opts.Path = args[0]
	}

	opts.Password, err = readPassword(decryptPasswordStdin, false)
	defer clear(opts.Password)

	spinner, cleanup := startSpinner("Decrypting...", verbose)
	defer cleanup()

	if err != nil {
		return failWith(spinner, "decrypt", err)
	}

	result, err := workflows.Decrypt(context.Background(), lib.Catalog, opts)
	if err != nil {
		return failWith(spinner, "decrypt", err)
	}

	msg := ui.Success.Sprint("✓") + " Decrypted " + ui.Path.Sprint(result.Container) +
		" → " + ui.Path.Sprint(result.Output) + " " + ui.Muted.Sprint(ui.Size(result.Size))
	if result.ChecksumChecked && result.ChecksumMatch {
		msg += "\n" + ui.Success.Sprint("✓") + " Checksum matches the catalog record"
	}
	if warning := result.Warning(); warning != "" {
		Logger.Warnf("Decrypt of %s: %s", result.Container, warning)
		msg += "\n" + ui.Warning.Sprint("!") + " Warning: " + warning +
			", the password is probably wrong and the output may be garbage"
	}

	Logger.Infof("Decrypt command completed")
	spinner.FinalMSG = msg
	return nil
}
