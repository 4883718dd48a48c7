package main

import (
	"fmt"
	"os"

	"crew-service/internal/config"
	"crew-service/internal/db"
	"crew-service/internal/logger"
	"crew-service/internal/seed"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file  string
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import the crew dataset into the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			dataset, err := seed.Load(file)
			if err != nil {
				return err
			}

			database, err := db.New(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close(database)

			stats, err := seed.Apply(cmd.Context(), database, dataset, reset, log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d countries, %d expeditions, %d crew\n",
				stats.Countries, stats.Expeditions, stats.Crew)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "data/seed.yaml", "YAML dataset to import")
	cmd.Flags().BoolVar(&reset, "reset", false, "remove existing rows before importing")

	return cmd
}
