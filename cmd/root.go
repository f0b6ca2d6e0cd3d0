package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var (
	// Global flags
	configPath    string
	databasePath  string
	attacksPath   string
	abilitiesPath string
	providerKind  string
	manifestPath  string
	colorMode     string
	verbose       bool

	// Logger
	logger *zap.Logger
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckaudit",
	Short: "Report card effects that the engine does not implement",
	Long: `Deckaudit cross-references the card database against the engine source and
lists every attack and ability that is described in the data but has no handler.

Paths default to the engine repository layout (database.json and src/actions/)
and can be set in the config file or overridden with flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return setColorMode(colorMode)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/deckaudit/config.toml)")
	flags.StringVar(&databasePath, "database", "", "card database file")
	flags.StringVar(&attacksPath, "attacks", "", "implementation source scanned for attack identifiers")
	flags.StringVar(&abilitiesPath, "abilities", "", "implementation source scanned for ability identifiers")
	flags.StringVar(&providerKind, "provider", "", "identifier provider: source, syntax or manifest")
	flags.StringVar(&manifestPath, "manifest", "", "identifier manifest, used by the manifest provider")
	flags.StringVar(&colorMode, "color", "auto", "colorize headings: auto, always or never")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// setColorMode enables heading colors for terminals or as requested
func setColorMode(mode string) error {
	switch mode {
	case "auto", "":
		color.NoColor = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value: %q (expected auto, always or never)", mode)
	}
	return nil
}
