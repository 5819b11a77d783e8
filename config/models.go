package config

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Docebo DoceboConfig `mapstructure:"docebo"`
	Server ServerConfig `mapstructure:"server"`
	Chat   ChatConfig   `mapstructure:"chat"`
	Log    LogConfig    `mapstructure:"log"`
	Auth   AuthConfig   `mapstructure:"auth"`
}

// DoceboConfig holds the credentials for the Docebo LMS API. All fields are
// required and are loaded from ENV, not the config file.
type DoceboConfig struct {
	Domain       string `mapstructure:"domain"        validate:"required"`
	ClientID     string `mapstructure:"client_id"     validate:"required"`
	ClientSecret string `mapstructure:"client_secret" validate:"required"`
	Username     string `mapstructure:"username"      validate:"required"`
	Password     string `mapstructure:"password"      validate:"required"`
}

type ServerConfig struct {
	Port           int   `mapstructure:"port"`
	MaxRequestSize int64 `mapstructure:"max_request_size"`
}

// ChatConfig tunes the chat handlers.
type ChatConfig struct {
	// SearchPageSize is the page size requested from the Docebo search endpoints.
	SearchPageSize int `mapstructure:"search_page_size"`
	// DisplayLimit caps how many results are rendered into a chat response.
	DisplayLimit int `mapstructure:"display_limit"`
	// FetchTimeoutSeconds bounds long-running enrollment fetches. On timeout the
	// handler returns a soft-failure response rather than an error.
	FetchTimeoutSeconds int       `mapstructure:"fetch_timeout_seconds"`
	CSV                 CSVConfig `mapstructure:"csv"`
}

// CSVConfig tunes bulk CSV enrollment processing.
type CSVConfig struct {
	MaxRows      int `mapstructure:"max_rows"`
	BatchSize    int `mapstructure:"batch_size"`
	BatchPauseMS int `mapstructure:"batch_pause_ms"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	Required bool   `mapstructure:"required"`
}
