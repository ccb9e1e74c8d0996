package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	logger "github.com/ccrypt/ccrypt/internal/logging"
	"github.com/ccrypt/ccrypt/internal/ui"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// RootCmd is the ccrypt command tree.
	RootCmd = &cobra.Command{
		Use:   "ccrypt",
		Short: "ccrypt - password-gated file containers with a local catalog",
		Long: `ccrypt turns files into password-gated containers, optionally run-length
compressed first, and keeps a catalog of every container it produced.

The keystream ciphers are reversible transforms, not strong encryption.

Examples:
  ccrypt encrypt notes.txt 'docs/**/*.md'
  ccrypt list --sort size
  ccrypt decrypt 2
  ccrypt search report
  ccrypt log -n 10`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println()
			banner := figure.NewColorFigure("ccrypt", "standard", "green", true)
			banner.Print()
			fmt.Println()
			fmt.Println("Run " + ui.Code.Sprint("ccrypt --help") + " to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(renameCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(verifyCmd)
	RootCmd.AddCommand(logCmd)
	RootCmd.AddCommand(configCmd)
}

// Execute runs the command tree.
func Execute() error {
	return RootCmd.Execute()
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetEncryptCommandState()
	resetDecryptCommandState()
	resetListCommandState()
	resetSearchCommandState()
	resetLogCommandState()
	resetConfigCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
