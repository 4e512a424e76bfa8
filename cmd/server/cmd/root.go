package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"mailkeeper/internal/app/server/config"
	"mailkeeper/internal/domain/credential"
	"mailkeeper/internal/infrastructure/export"
	"mailkeeper/internal/infrastructure/storage/database"
	"mailkeeper/internal/utils/logger"
)

var (
	envFile string
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mailkeeper",
	Short: "Mailkeeper - HTTP API over the gmail credential table",
	Long: `Mailkeeper serves create/read/update/delete over stored email account
credentials and exports them to an xlsx spreadsheet.

Configuration is read from the environment, optionally seeded from a .env file.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log = logger.New(cfg.Env, cfg.Logger.LogLevel)
	log.Debug("config loaded", "env", cfg.Env, "db_driver", cfg.DB.Driver)

	return nil
}

// newService wires the connector and exporter shared by serve and export.
func newService() (*credential.Service, error) {
	connector, err := database.NewConnector(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("database connector: %w", err)
	}
	return credential.NewService(connector, export.NewXLSX(), log), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvPath, "path to the .env file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(exportCmd)
}
