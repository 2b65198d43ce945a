package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/instabot/internal/config"
	"github.com/at-ishikawa/instabot/internal/correction"
	"github.com/at-ishikawa/instabot/internal/practice"
)

func newRunCommand() *cobra.Command {
	var maxWords int
	var answersPerMinute int

	command := &cobra.Command{
		Use:   "run",
		Short: "Log in and answer words until the practice session is finished",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("max-words") {
				cfg.Practice.MaxWords = maxWords
			}
			if cmd.Flags().Changed("answers-per-minute") {
				cfg.Practice.AnswersPerMinute = answersPerMinute
			}
			if cfg.Practice.MaxWords < 0 || cfg.Practice.AnswersPerMinute < 0 {
				return fmt.Errorf("--max-words and --answers-per-minute must not be negative")
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			return runPractice(ctx, cfg, cmd)
		},
	}
	command.Flags().IntVar(&maxWords, "max-words", 0, "stop after this many answers (0: until finished)")
	command.Flags().IntVar(&answersPerMinute, "answers-per-minute", 0, "limit the answer rate (0: no limit)")

	return command
}

func runPractice(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	repository, closeRepository, err := newCorrectionRepository(cfg)
	if err != nil {
		return err
	}
	defer closeRepository()

	stored, err := repository.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("repository.FindAll() > %w", err)
	}
	slog.Debug("loaded corrections", "count", len(stored))

	session, closeSession, err := connect(ctx, cfg, stored)
	if err != nil {
		return err
	}
	defer closeSession()

	runner := practice.NewRunner(session, practice.Options{
		MaxWords:         cfg.Practice.MaxWords,
		AnswersPerMinute: cfg.Practice.AnswersPerMinute,
	}, cmd.OutOrStdout())
	summary, runErr := runner.Run(ctx)
	runner.PrintSummary(summary)

	// keep what was learned even when the run was interrupted
	learned := session.Corrections()[len(stored):]
	if len(learned) > 0 {
		if err := repository.Save(context.WithoutCancel(ctx), correction.FromWords(learned)); err != nil {
			return errors.Join(runErr, fmt.Errorf("repository.Save() > %w", err))
		}
		slog.Info("saved corrections", "count", len(learned))
	}

	if errors.Is(runErr, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Received interrupt signal, exiting...")
		return nil
	}
	return runErr
}
