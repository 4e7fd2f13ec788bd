package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	RiotAPIKey string
	DBPath     string
	ServerPort string
	LogLevel   string

	// OAuth login against the Riot identity provider.
	RiotClientID     string
	RiotClientSecret string
	RiotRedirectURI  string
	RiotAuthURL      string
	RiotTokenURL     string
}

// Load reads configuration from the environment. Missing credentials are not
// fatal at startup: the endpoints that need them respond with a configuration
// error instead (handlers check HasRiotKey / HasOAuth).
func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		RiotAPIKey:       getEnv("RIOT_API_KEY", ""),
		DBPath:           getEnv("DB_PATH", "fahelper.db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RiotClientID:     getEnv("RIOT_CLIENT_ID", ""),
		RiotClientSecret: getEnv("RIOT_CLIENT_SECRET", ""),
		RiotRedirectURI:  getEnv("RIOT_REDIRECT_URI", ""),
		RiotAuthURL:      getEnv("RIOT_AUTH_URL", "https://auth.riotgames.com/authorize"),
		RiotTokenURL:     getEnv("RIOT_TOKEN_URL", "https://auth.riotgames.com/token"),
	}

	if cfg.RiotAPIKey == "" {
		logger.Warn().Msg("RIOT_API_KEY not set, riot endpoints will report a configuration error")
	}
	if !cfg.HasOAuth() {
		logger.Warn().Msg("riot OAuth not fully configured, login endpoints will report a configuration error")
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Bool("riot_key", cfg.HasRiotKey()).
		Bool("riot_oauth", cfg.HasOAuth()).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) HasRiotKey() bool {
	return c.RiotAPIKey != ""
}

func (c *Config) HasOAuth() bool {
	return c.RiotClientID != "" && c.RiotClientSecret != "" && c.RiotRedirectURI != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
