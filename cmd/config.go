package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/ccrypt/ccrypt/internal/configs"
	"github.com/ccrypt/ccrypt/internal/ui"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func resetConfigCommandState() {
	configShowJSON = false
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ccrypt configuration",
	Long: `Shows or initializes config.toml.

The file lives in the user config directory (or $CCRYPT_HOME/config) and holds
encrypt defaults, the catalog location and capacity, and the maximum file size.

Examples:
  ccrypt config init
  ccrypt config show --json`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		config, err := configs.LoadConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load config: %v", err)
		}

		if configShowJSON {
			out := map[string]any{
				"config_file":  configs.CcryptSettings.ConfigFile(),
				"library_file": config.LibraryPath(),
				"audit_file":   configs.CcryptSettings.AuditFile(),
				"config":       config,
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Println(ui.Muted.Sprint("# " + configs.CcryptSettings.ConfigFile()))
		if err := toml.NewEncoder(os.Stdout).Encode(config); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		fmt.Println()
		fmt.Println("Catalog: " + ui.Path.Sprint(config.LibraryPath()))
		fmt.Println("Audit log: " + ui.Path.Sprint(configs.CcryptSettings.AuditFile()))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write config.toml with the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		spinner, cleanup := startSpinner("Initializing configuration...", verbose)
		defer cleanup()

		_, created, err := configs.EnsureConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to initialize config: %v", err)
		}

		path := configs.CcryptSettings.ConfigFile()
		if !created {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " Configuration already exists at " + ui.Path.Sprint(path) + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("ccrypt config show") + " to see it"
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Wrote default configuration to " + ui.Path.Sprint(path)
		return nil
	},
}
