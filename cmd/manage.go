package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ccrypt/ccrypt/internal/ui"
	"github.com/ccrypt/ccrypt/internal/workflows"
)

var renameCmd = &cobra.Command{
	Use:   "rename <number> <new-name>",
	Short: "Rename a container on disk and in the catalog",
	Long: `Renames the container file of a catalog entry. The container stays in its
directory; new-name is a file name, not a path.

Examples:
  ccrypt rename 2 taxes-2024.ccrypt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rename command")

		_, lib, err := loadLibrary()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
		}

		spinner, cleanup := startSpinner("Renaming container...", verbose)
		defer cleanup()

		index, err := parseIndex(args[0])
		if err != nil {
			return failWith(spinner, "rename", err)
		}

		result, err := workflows.Rename(context.Background(), lib.Catalog, workflows.RenameOptions{
			Index:   index,
			NewName: args[1],
		})
		if err != nil {
			return failWith(spinner, "rename", err)
		}

		if err := saveLibrary(lib); err != nil {
			return Logger.ErrorfAndReturn("failed to save catalog: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Renamed " + ui.Path.Sprint(result.OldPath) +
			" → " + ui.Path.Sprint(result.NewPath)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a container and its catalog entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command")

		_, lib, err := loadLibrary()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
		}

		spinner, cleanup := startSpinner("Deleting container...", verbose)
		defer cleanup()

		index, err := parseIndex(args[0])
		if err != nil {
			return failWith(spinner, "delete", err)
		}

		result, err := workflows.Delete(context.Background(), lib.Catalog, workflows.DeleteOptions{Index: index})
		if err != nil {
			return failWith(spinner, "delete", err)
		}

		if err := saveLibrary(lib); err != nil {
			return Logger.ErrorfAndReturn("failed to save catalog: %v", err)
		}

		msg := ui.Success.Sprint("✓") + " Deleted " + ui.Highlight.Sprint(result.Record.OriginalName) +
			" " + ui.Muted.Sprint(result.Record.ArtifactName)
		if result.AlreadyMissing {
			msg += "\n" + ui.Warning.Sprint("!") + " The container file was already missing; removed the catalog entry"
		}
		spinner.FinalMSG = msg
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <number> <file>",
	Short: "Check a file against the checksum of a catalog entry",
	Long: `Recomputes the checksum of file and compares it with the checksum recorded
when the catalog entry was encrypted.

Examples:
  ccrypt verify 1 notes.ccrypt_dec`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting verify command")

		_, lib, err := loadLibrary()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load catalog: %v", err)
		}

		spinner, cleanup := startSpinner("Verifying...", verbose)
		defer cleanup()

		index, err := parseIndex(args[0])
		if err != nil {
			return failWith(spinner, "verify", err)
		}

		result, err := workflows.Verify(context.Background(), lib.Catalog, workflows.VerifyOptions{
			Index: index,
			File:  args[1],
		})
		if err != nil {
			return failWith(spinner, "verify", err)
		}

		if result.Match {
			spinner.FinalMSG = ui.Success.Sprint("✓") + " " + ui.Path.Sprint(args[1]) +
				" matches " + ui.Highlight.Sprint(result.Record.OriginalName) + " " + ui.Muted.Sprint(result.Actual)
			return nil
		}

		spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Path.Sprint(args[1]) +
			" does not match " + ui.Highlight.Sprint(result.Record.OriginalName) +
			"\n    expected " + result.Expected + ", got " + result.Actual
		return nil
	},
}
