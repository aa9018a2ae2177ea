package main

import (
	"pet-adoption/internal/config"
	"pet-adoption/internal/platform/logger"

	"github.com/spf13/cobra"
)

var flagConfigFile string

var rootCmd = &cobra.Command{
	Use:           "petadopt",
	Short:         "Pet adoption listing web app",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./config.yaml if present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(healthcheckCmd)
}

// loadRuntime carga config y arma el logger; lo comparten todos los subcomandos.
func loadRuntime() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	return cfg, log, nil
}
