package main

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/instabot/internal/config"
	"github.com/at-ishikawa/instabot/internal/correction"
	"github.com/at-ishikawa/instabot/internal/database"
	"github.com/at-ishikawa/instabot/internal/instaling"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newCorrectionRepository returns the configured repository and a function closing it.
func newCorrectionRepository(cfg *config.Config) (correction.Repository, func(), error) {
	switch cfg.Corrections.Backend {
	case config.CorrectionsBackendYAML:
		return correction.NewYAMLRepository(cfg.Corrections.File), func() {}, nil
	case config.CorrectionsBackendMySQL:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		return correction.NewDBRepository(db), func() {
			_ = db.Close()
		}, nil
	}
	return correction.NopRepository{}, func() {}, nil
}

// connect logs in and starts a practice session seeded with the stored corrections.
func connect(ctx context.Context, cfg *config.Config, corrections []correction.Correction) (*instaling.Session, func(), error) {
	if cfg.Instaling.Username == "" {
		return nil, nil, fmt.Errorf("INSTALING_USERNAME environment variable is required")
	}
	if cfg.Instaling.Password == "" {
		return nil, nil, fmt.Errorf("INSTALING_PASSWORD environment variable is required")
	}

	httpClient, err := instaling.NewHTTPClient(instaling.HTTPClientOptions{
		BaseURL:   cfg.Instaling.BaseURL,
		Timeout:   time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second,
		UserAgent: cfg.HTTP.UserAgent,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("instaling.NewHTTPClient() > %w", err)
	}
	closeClient := func() {
		_ = httpClient.Close()
	}

	connector := instaling.NewConnector(httpClient, instaling.ConnectorConfig{
		Credentials: instaling.Credentials{
			Username: cfg.Instaling.Username,
			Password: cfg.Instaling.Password,
		},
		MaxRetryAttempts: cfg.HTTP.RetryAttempts,
		Corrections:      correction.ToWords(corrections),
	})
	session, err := connector.Connect(ctx)
	if err != nil {
		closeClient()
		return nil, nil, fmt.Errorf("connector.Connect() > %w", err)
	}
	return session, closeClient, nil
}
