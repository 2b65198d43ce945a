package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/instabot/internal/config"
	"github.com/at-ishikawa/instabot/internal/database"
	"github.com/at-ishikawa/instabot/schemas"
)

func newCorrectionsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "corrections",
		Short: "Commands for the stored corrections",
	}
	command.AddCommand(
		newCorrectionsListCommand(),
		newCorrectionsMigrateCommand(),
	)
	return command
}

func newCorrectionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the stored corrections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			repository, closeRepository, err := newCorrectionRepository(cfg)
			if err != nil {
				return err
			}
			defer closeRepository()

			corrections, err := repository.FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("repository.FindAll() > %w", err)
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "WORD ID\tANSWER")
			for _, c := range corrections {
				fmt.Fprintf(writer, "%s\t%s\n", c.WordID, c.Answer)
			}
			return writer.Flush()
		},
	}
}

func newCorrectionsMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the corrections table in the MySQL database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cfg.Corrections.Backend != config.CorrectionsBackendMySQL {
				return fmt.Errorf("corrections.backend must be %s to migrate, got %s", config.CorrectionsBackendMySQL, cfg.Corrections.Backend)
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()
			return database.Migrate(cmd.Context(), db, schemas.Migrations, schemas.MigrationsDirectory)
		},
	}
}
