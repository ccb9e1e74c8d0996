package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	kerrors "github.com/ccrypt/ccrypt/internal/errors"
	"github.com/ccrypt/ccrypt/internal/keystream"
	"github.com/ccrypt/ccrypt/internal/ui"
	"github.com/ccrypt/ccrypt/internal/workflows"
)

var (
	encryptNoCompress    bool
	encryptMethod        string
	encryptOutputDir     string
	encryptPasswordStdin bool
	encryptDryRun        bool
)

func init() {
	encryptCmd.Flags().BoolVar(&encryptNoCompress, "no-compress", false, "skip run-length compression")
	encryptCmd.Flags().StringVarP(&encryptMethod, "method", "m", "", "keystream method: xor or lcg (default from config)")
	encryptCmd.Flags().StringVarP(&encryptOutputDir, "output-dir", "o", "", "directory for the containers (default next to each file)")
	encryptCmd.Flags().BoolVar(&encryptPasswordStdin, "password-stdin", false, "read the password from stdin")
	encryptCmd.Flags().BoolVar(&encryptDryRun, "dry-run", false, "preview which containers would be written")
}

func resetEncryptCommandState() {
	encryptNoCompress = false
	encryptMethod = ""
	encryptOutputDir = ""
	encryptPasswordStdin = false
	encryptDryRun = false
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt <file|dir|glob>...",
	Short: "Encrypt files into ccrypt containers",
	Long: `Encrypts each file into a <name>.ccrypt container and records it in the catalog.

Directories are walked recursively and glob patterns support ** (for example
'docs/**/*.txt'). Existing .ccrypt files are skipped. Compression is kept
only when it makes the payload smaller.

Examples:
  ccrypt encrypt notes.txt
  ccrypt encrypt 'reports/**/*.csv' --output-dir vault
  echo "$PASS" | ccrypt encrypt data.bin --method lcg --password-stdin`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting encrypt command")

	config, lib, err := loadLibrary()
	if err != nil {
		return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
	}

	method, err := config.Method()
	if encryptMethod != "" {
		method, err = keystream.ParseMethod(encryptMethod)
	}
	if err == nil && !method.Supported() {
		err = fmt.Errorf("%s: %w", method, kerrors.ErrUnsupportedMethod)
	}

	var password []byte
	defer func() { clear(password) }()
	if err == nil && !encryptDryRun {
		password, err = readPassword(encryptPasswordStdin, !encryptPasswordStdin)
	}

	spinner, cleanup := startSpinner("Encrypting files...", verbose)
	defer cleanup()

	if err != nil {
		return failWith(spinner, "encrypt", err)
	}
	if encryptDryRun {
		password = []byte("dry-run")
	}

	outputDir := encryptOutputDir
	if outputDir == "" {
		outputDir = config.Defaults.OutputDir
	}

	opts := workflows.EncryptOptions{
		FilePatterns: args,
		OutputDir:    outputDir,
		Extension:    config.Defaults.Extension,
		Password:     password,
		Method:       method,
		Compress:     config.Defaults.Compress && !encryptNoCompress,
		MaxSize:      config.Limits.MaxFileSize,
		DryRun:       encryptDryRun,
	}
	Logger.Debugf("Encrypt options: method=%s compress=%t output=%q", method, opts.Compress, outputDir)

	result, err := workflows.Encrypt(context.Background(), lib.Catalog, opts)

	// Files committed before a failure are catalogued, so save regardless.
	if saveErr := saveLibrary(lib); saveErr != nil {
		return Logger.ErrorfAndReturn("failed to save catalog: %v", saveErr)
	}

	if err != nil {
		msg := formatError("encrypt", err)
		if result != nil && len(result.Files) > 0 {
			msg = formatEncrypted(result) + "\n" + msg
		}
		Logger.Errorf("Encrypt failed: %v", err)
		spinner.FinalMSG = msg
		if isUnexpectedError(err) {
			return err
		}
		return nil
	}

	Logger.Infof("Encrypt command completed. Created %d containers", len(result.Files))
	spinner.FinalMSG = formatEncrypted(result)
	return nil
}

func formatEncrypted(result *workflows.EncryptResult) string {
	var b strings.Builder
	if result.DryRun {
		b.WriteString(ui.Info.Sprint("ℹ") + " Dry run, the following containers would be written:\n")
		for _, f := range result.Files {
			b.WriteString("    " + ui.Path.Sprint(f.Source) + " → " + ui.Path.Sprint(f.Artifact) + "\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}

	b.WriteString(ui.Success.Sprint("✓") + fmt.Sprintf(" Encrypted %d file(s):\n", len(result.Files)))
	for _, f := range result.Files {
		detail := ui.Size(f.OriginalSize) + " → " + ui.Size(f.ArtifactSize)
		if f.Compressed {
			detail += ", compressed"
		}
		b.WriteString(fmt.Sprintf("    %s %s → %s %s\n",
			ui.Highlight.Sprintf("#%d", f.Index+1),
			ui.Path.Sprint(f.Source),
			ui.Path.Sprint(f.Artifact),
			ui.Muted.Sprint(detail)))
	}
	b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ccrypt list") + " to see the catalog")
	return b.String()
}
