package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/code-sage/internal/logger"
)

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Database        string
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Config holds the application's configuration values.
type Config struct {
	ServerPort   string
	LogLevel     slog.Level
	Logging      logger.Config
	LLMProvider  string
	ModelName    string
	OllamaHost   string
	GeminiAPIKey string
	LLMTimeout   time.Duration
	UploadDir    string
	CacheByHash  bool
	Database     DBConfig
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, and validates required fields. It uses the Viper
// library to handle configuration loading and precedence.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("LLM_PROVIDER", "ollama")
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("LLM_TIMEOUT", "2m")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("CACHE_BY_HASH", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_NAME", "code_sage")
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DB_CONN_MAX_IDLE_TIME", "5m")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Debug("no .env file loaded", "error", err)
		}
	}

	provider := strings.ToLower(viper.GetString("LLM_PROVIDER"))
	switch provider {
	case "ollama":
	case "gemini":
		if viper.GetString("GEMINI_API_KEY") == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set for the gemini provider")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	// Each provider ships its own default model when none is configured.
	modelName := viper.GetString("MODEL_NAME")
	if modelName == "" {
		switch provider {
		case "gemini":
			modelName = "gemini-2.5-flash"
		default:
			modelName = "gemma3:latest"
		}
	}

	// Parse the log level string into a slog.Level type.
	var logLevel slog.Level
	logLevelStr := strings.ToLower(viper.GetString("LOG_LEVEL"))
	switch logLevelStr {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		slog.Warn("unrecognized log level, defaulting to info", "provided", logLevelStr)
		logLevel = slog.LevelInfo
	}

	return &Config{
		ServerPort: viper.GetString("SERVER_PORT"),
		LogLevel:   logLevel,
		Logging: logger.Config{
			Level:  logLevelStr,
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		LLMProvider:  provider,
		ModelName:    modelName,
		OllamaHost:   viper.GetString("OLLAMA_HOST"),
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
		LLMTimeout:   viper.GetDuration("LLM_TIMEOUT"),
		UploadDir:    viper.GetString("UPLOAD_DIR"),
		CacheByHash:  viper.GetBool("CACHE_BY_HASH"),
		Database: DBConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			Username:        viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Database:        viper.GetString("DB_NAME"),
			ConnMaxLifetime: viper.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: viper.GetDuration("DB_CONN_MAX_IDLE_TIME"),
		},
	}, nil
}
