// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"denv-cli/internal/config"

	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage denv configuration",
		Long: `Manage the denv tool configuration.

The config file lives in the platform config directory
($XDG_CONFIG_HOME/denv on Linux) and is written in CUE. It configures
the store location, catalog index paths, the shell to spawn and UI
preferences.`,
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE:  runConfigPath,
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		RunE:  runConfigInit,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Print(config.GenerateCUE(cfg))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.CreateDefaultConfig(); err != nil {
		return err
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"),
		filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	return nil
}
