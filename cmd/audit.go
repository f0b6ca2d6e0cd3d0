package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deckgym/deckaudit/internal/audit"
	"github.com/deckgym/deckaudit/internal/config"
	"github.com/deckgym/deckaudit/internal/database"
	"github.com/deckgym/deckaudit/internal/provider"
)

var headingColor = color.New(color.FgCyan, color.Bold)

// auditCmd represents the full audit
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List unimplemented attacks and abilities of every Pokemon",
	Long: `Audit derives the identifier each attack and ability is expected to have in
the engine and prints the effects whose identifier is not declared.

Attacks are keyed by card id and attack title (e.g. "A1 003" + "Mega Drain"
gives A1003MegaDrain); abilities by card id and Pokemon name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd, audit.Full())
	},
}

// basicCmd represents the basic-only audit
var basicCmd = &cobra.Command{
	Use:   "basic",
	Short: "List unimplemented attacks of Basic Pokemon",
	Long: `Basic audits only stage 0 Pokemon and only their attacks. The abilities
source is not read.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAudit(cmd, audit.BasicOnly())
	},
}

func init() {
	RootCmd.AddCommand(auditCmd)
	RootCmd.AddCommand(basicCmd)
}

// runAudit loads every input and prints the report for filter
func runAudit(cmd *cobra.Command, filter audit.Filter) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cards, err := database.Load(cfg.Database)
	if err != nil {
		return err
	}
	logger.Debug("loaded card database",
		zap.String("path", cfg.Database),
		zap.Int("records", len(cards)))

	p, err := provider.New(cfg.Provider, provider.Options{
		Sources:  cfg.SourceMap(),
		Manifest: cfg.Manifest,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	report, err := audit.NewReporter(p, logger).Run(cards, filter)
	if err != nil {
		return err
	}

	if _, err := report.WriteColored(cmd.OutOrStdout(), headingColor); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	logger.Debug("report written", zap.Int("lines", report.Total()))

	return nil
}

// loadConfig reads the config file and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if databasePath != "" {
		cfg.Database = databasePath
	}
	if attacksPath != "" {
		cfg.Sources.Attacks = attacksPath
	}
	if abilitiesPath != "" {
		cfg.Sources.Abilities = abilitiesPath
	}
	if providerKind != "" {
		cfg.Provider = providerKind
	}
	if manifestPath != "" {
		cfg.Manifest = manifestPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
