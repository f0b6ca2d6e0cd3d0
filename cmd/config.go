package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/deckgym/deckaudit/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the deckaudit config file",
	Long:  `Commands for creating and inspecting the deckaudit config file.`,
}

// configInitCmd writes the default config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile()
		if _, err := config.Init(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Config file initialized at:", path)
		return nil
	},
}

// configPathCmd prints the config file location
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configFile())
	},
}

// configShowCmd prints the effective configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after flag overrides",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg); err != nil {
			return fmt.Errorf("error encoding config: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
}

// configFile returns the --config path or the user config file
func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.GetConfigFilePath()
}
