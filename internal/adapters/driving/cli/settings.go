package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage import settings",
	Long: `View and change the settings stored in config.toml.

Command flags override these settings for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change one setting. List values are comma-separated.

Example:
  conimex settings set import.locales en,nl
  conimex settings set import.clear_every 10`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Import]")
	cmd.Printf("  Locales: %s\n", orDefault(strings.Join(settings.Locales, ", "), "(per content type)"))
	cmd.Printf("  Clear every: %d records\n", settings.ClearEvery)
	cmd.Printf("  Default status: %s\n", settings.DefaultStatus)
	cmd.Printf("  Skip users: %s\n", yesNo(settings.SkipUsers))
	cmd.Println()

	cmd.Println("[Schema]")
	cmd.Printf("  Directory: %s\n", settings.SchemaDir)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data directory: %s\n", orDefault(settings.DataDir, "(default)"))
	cmd.Println()

	if err := settings.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'conimex settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s (known keys: %s): %w",
			key, strings.Join(settingsService.Keys(), ", "), err)
	}

	cmd.Printf("%s set to %s\n", key, value)
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
