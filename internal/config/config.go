package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	CorrectionsBackendNone  = "none"
	CorrectionsBackendYAML  = "yaml"
	CorrectionsBackendMySQL = "mysql"
)

type Config struct {
	Instaling   InstalingConfig   `mapstructure:"instaling"`
	HTTP        HTTPConfig        `mapstructure:"http"`
	Practice    PracticeConfig    `mapstructure:"practice"`
	Corrections CorrectionsConfig `mapstructure:"corrections"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

type InstalingConfig struct {
	BaseURL  string `mapstructure:"base_url" validate:"required,url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts  uint   `mapstructure:"retry_attempts" validate:"lte=10"`
	UserAgent      string `mapstructure:"user_agent"`
}

type PracticeConfig struct {
	// MaxWords stops the run after this many answers. 0 runs until the service has no words left.
	MaxWords int `mapstructure:"max_words" validate:"gte=0"`
	// AnswersPerMinute paces the answers. 0 answers as fast as possible.
	AnswersPerMinute int `mapstructure:"answers_per_minute" validate:"gte=0"`
}

type CorrectionsConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=none yaml mysql"`
	File    string `mapstructure:"file" validate:"required_if=Backend yaml,omitempty,parentdir"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/instabot")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("instaling.base_url", "https://instaling.pl")
	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.retry_attempts", 0)
	v.SetDefault("practice.max_words", 0)
	v.SetDefault("practice.answers_per_minute", 0)
	v.SetDefault("corrections.backend", CorrectionsBackendNone)
	v.SetDefault("corrections.file", "corrections.yml")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "instabot")
	v.SetDefault("database.username", "user")

	// Credentials are bound to environment variables so they can stay out of the config file
	if err := v.BindEnv("instaling.username", "INSTALING_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind INSTALING_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("instaling.password", "INSTALING_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind INSTALING_PASSWORD environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
