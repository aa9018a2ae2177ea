package main

import (
	"pet-adoption/internal/adapters/storage"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the pets table in the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}

		store, err := storage.Open(cmd.Context(), storage.Options{
			Driver: cfg.Storage.Driver,
			DSN:    cfg.Storage.DSN,
		})
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			log.Error("migrate failed", map[string]any{"driver": store.Driver, "err": err})
			return err
		}

		log.Info("schema up to date", map[string]any{"driver": store.Driver})
		return nil
	},
}
