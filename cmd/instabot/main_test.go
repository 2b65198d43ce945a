package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/instabot/internal/correction"
	"github.com/at-ishikawa/instabot/internal/testutil"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "instabot", cmd.Use)
	assert.True(t, cmd.HasSubCommands())
	for _, name := range []string{"run", "check", "corrections"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestRunCommand(t *testing.T) {
	fake := testutil.NewFakeInstaling(t,
		testutil.FakeWord{ID: "1", AudioName: "eins", Expected: "eins"},
		testutil.FakeWord{ID: "2", AudioName: "two", Expected: "zwei"},
	)
	dir := t.TempDir()
	configPath := testutil.SetupTestConfig(t, dir, fake.URL)
	t.Setenv("INSTALING_USERNAME", testutil.Username)
	t.Setenv("INSTALING_PASSWORD", testutil.Password)

	output, err := executeCommand(t, "--config", configPath, "run")
	require.NoError(t, err)
	assert.Contains(t, output, "✓ eins")
	assert.Contains(t, output, "✗ two")
	assert.Contains(t, output, "Answered 2 words")
	assert.Contains(t, output, "No more words to practice today")

	assert.Equal(t, map[string]string{"1": "eins", "2": "two"}, fake.Answers())

	got, err := correction.NewYAMLRepository(testutil.CorrectionsFile(dir)).FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []correction.Correction{{WordID: "2", Answer: "zwei"}}, got)

	output, err = executeCommand(t, "--config", configPath, "corrections", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "WORD ID")
	assert.Contains(t, output, "zwei")
}

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		wantOutput string
		wantErr    string
	}{
		{
			name:       "valid credentials",
			password:   "secret",
			wantOutput: "Logged in as student@example.com (session abc123)",
		},
		{
			name:     "wrong password",
			password: "wrong",
			wantErr:  "the service rejected the credentials of student@example.com",
		},
		{
			name:    "missing password",
			wantErr: "INSTALING_PASSWORD environment variable is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeInstaling(t)
			configPath := testutil.SetupTestConfig(t, t.TempDir(), fake.URL)
			t.Setenv("INSTALING_USERNAME", testutil.Username)
			t.Setenv("INSTALING_PASSWORD", tt.password)

			output, err := executeCommand(t, "--config", configPath, "check")
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, output, tt.wantOutput)
		})
	}
}

func TestCorrectionsMigrateCommand_RequiresMySQL(t *testing.T) {
	configPath := testutil.SetupTestConfig(t, t.TempDir(), "https://instaling.pl")

	_, err := executeCommand(t, "--config", configPath, "corrections", "migrate")
	assert.ErrorContains(t, err, "corrections.backend must be mysql")
}
