package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/instabot/internal/instaling"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check the credentials by starting a practice session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			session, closeSession, err := connect(cmd.Context(), cfg, nil)
			if errors.Is(err, instaling.ErrInvalidCredentials) {
				return fmt.Errorf("the service rejected the credentials of %s", cfg.Instaling.Username)
			}
			if err != nil {
				return err
			}
			defer closeSession()

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (session %s)\n", session.Username(), session.ChildID())
			return nil
		},
	}
}
