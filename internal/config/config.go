package config

import (
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Auth       AuthConfig       `json:"auth"`
	Slack      SlackConfig      `json:"slack"`
	Asana      AsanaConfig      `json:"asana"`
	Summarizer SummarizerConfig `json:"summarizer"`
	Email      EmailConfig      `json:"email"`
	URLs       URLConfig        `json:"urls"`
	Blockers   BlockersConfig   `json:"blockers"`
}

type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslmode"`
}

type AuthConfig struct {
	// JWTSecret verifies the bearer tokens minted by the identity
	// provider; this service never issues tokens itself.
	JWTSecret string `json:"jwt_secret"`
}

type SlackConfig struct {
	ClientID      string `json:"client_id"`
	ClientSecret  string `json:"client_secret"`
	SigningSecret string `json:"signing_secret"`
	BotToken      string `json:"bot_token"`
}

type AsanaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type SummarizerConfig struct {
	// Provider selects the model backend: "anthropic" or "groq".
	Provider        string `json:"provider"`
	AnthropicAPIKey string `json:"anthropic_api_key"`
	GroqAPIKey      string `json:"groq_api_key"`
	Model           string `json:"model"`
	MaxTokens       int    `json:"max_tokens"`
}

type EmailConfig struct {
	ResendAPIKey string `json:"resend_api_key"`
	From         string `json:"from"`
}

type URLConfig struct {
	APIBase  string `json:"api_base"`
	Frontend string `json:"frontend"`
}

type BlockersConfig struct {
	// StrictIndex rejects resolutions addressing indexes beyond the
	// summary's real blockers list. Off by default for compatibility.
	StrictIndex bool `json:"strict_index"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "teampulse")
	viper.SetDefault("database.database", "teampulse")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("summarizer.provider", "anthropic")
	// Model left empty so each provider picks its own default.
	viper.SetDefault("summarizer.max_tokens", 1024)
	viper.SetDefault("email.from", "TeamPulse <noreply@teampulse.dev>")
	viper.SetDefault("urls.api_base", "http://localhost:3000")
	viper.SetDefault("urls.frontend", "http://localhost:5173")
	viper.SetDefault("blockers.strict_index", false)

	// Read config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file is fine; defaults plus env cover everything.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loadEnvOverrides(&cfg)

	return &cfg, nil
}

func loadEnvOverrides(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}

	// Database overrides
	if dbHost := os.Getenv("POSTGRES_HOST"); dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPort := os.Getenv("POSTGRES_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			cfg.Database.Port = port
		}
	}
	if dbUser := os.Getenv("POSTGRES_USER"); dbUser != "" {
		cfg.Database.User = dbUser
	}
	if dbPass := os.Getenv("POSTGRES_PASSWORD"); dbPass != "" {
		cfg.Database.Password = dbPass
	}
	if dbName := os.Getenv("POSTGRES_DB"); dbName != "" {
		cfg.Database.Database = dbName
	}

	if v := os.Getenv("SUPABASE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	if v := os.Getenv("SLACK_CLIENT_ID"); v != "" {
		cfg.Slack.ClientID = v
	}
	if v := os.Getenv("SLACK_CLIENT_SECRET"); v != "" {
		cfg.Slack.ClientSecret = v
	}
	if v := os.Getenv("SLACK_SIGNING_SECRET"); v != "" {
		cfg.Slack.SigningSecret = v
	}
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		cfg.Slack.BotToken = v
	}

	if v := os.Getenv("ASANA_CLIENT_ID"); v != "" {
		cfg.Asana.ClientID = v
	}
	if v := os.Getenv("ASANA_CLIENT_SECRET"); v != "" {
		cfg.Asana.ClientSecret = v
	}

	if v := os.Getenv("SUMMARIZER_PROVIDER"); v != "" {
		cfg.Summarizer.Provider = v
	}
	if v := os.Getenv("SUMMARIZER_MODEL"); v != "" {
		cfg.Summarizer.Model = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Summarizer.AnthropicAPIKey = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Summarizer.GroqAPIKey = v
	}

	if v := os.Getenv("RESEND_API_KEY"); v != "" {
		cfg.Email.ResendAPIKey = v
	}

	if v := os.Getenv("API_BASE_URL"); v != "" {
		cfg.URLs.APIBase = v
	}
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.URLs.Frontend = v
	}

	if v := os.Getenv("BLOCKERS_STRICT_INDEX"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			cfg.Blockers.StrictIndex = strict
		}
	}
}
