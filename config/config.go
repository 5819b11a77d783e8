package config

import (
	"fmt"
	"strings"

	"github.com/docebot/docebot/internal"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

// doceboEnvVars maps the Docebo credential config keys to the exact legacy
// environment variable names they must be read from.
var doceboEnvVars = map[string]string{
	"docebo.domain":        "DOCEBO_DOMAIN",
	"docebo.client_id":     "DOCEBO_CLIENT_ID",
	"docebo.client_secret": "DOCEBO_CLIENT_SECRET",
	"docebo.username":      "DOCEBO_USERNAME",
	"docebo.password":      "DOCEBO_PASSWORD",
}

// LoadConfig loads the config file and ENV variables into a Config struct.
// The five DOCEBO_* credentials are required; loading fails fast naming any
// that are missing.
func LoadConfig(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("DOCEBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional. Everything required comes from ENV.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	for key, envVar := range doceboEnvVars {
		if err := viper.BindEnv(key, envVar); err != nil {
			log.Fatalf("Error binding environment variable: %s", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.max_request_size", 5242880)
	viper.SetDefault("chat.search_page_size", 50)
	viper.SetDefault("chat.display_limit", 10)
	viper.SetDefault("chat.fetch_timeout_seconds", 15)
	viper.SetDefault("chat.csv.max_rows", 1000)
	viper.SetDefault("chat.csv.batch_size", 3)
	viper.SetDefault("chat.csv.batch_pause_ms", 500)
	viper.SetDefault("log.level", "info")
}

// validateConfig checks the unmarshalled config. Missing Docebo credentials
// are reported with the ENV variable names an operator must set.
func validateConfig(cfg *Config) error {
	validate := validator.New()
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var missing []string
	for _, fieldErr := range validationErrors {
		key := "docebo." + strings.ToLower(fieldErr.StructField())
		// StructField names don't carry underscores; recover the config key
		// from the known credential set.
		switch fieldErr.StructField() {
		case "ClientID":
			key = "docebo.client_id"
		case "ClientSecret":
			key = "docebo.client_secret"
		}
		if envVar, found := doceboEnvVars[key]; found {
			missing = append(missing, envVar)
		} else {
			missing = append(missing, fieldErr.Namespace())
		}
	}

	return fmt.Errorf(
		"missing required configuration: %s",
		strings.Join(missing, ", "),
	)
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}
