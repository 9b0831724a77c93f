package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"homework_status_bot/internal/infra/practicum"

	"github.com/joho/godotenv"
)

const (
	defaultPollSchedule   = "@every 10m"
	defaultRequestTimeout = 30 * time.Second
	defaultLogFile        = "homework_bot.log"
	defaultLogMaxSizeMB   = 5
	defaultLogMaxBackups  = 5
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string
	TelegramToken     string
	TelegramChatID    string // Numeric chat ID or @channel username
	PracticumEndpoint string
	TelegramAPIURL    string // Empty means the public Bot API
	PollSchedule      string // Cron spec or Go duration
	RequestTimeout    time.Duration
	StrictConfig      bool // Missing credentials become fatal
	LogLevel          string
	Environment       string
	LogFile           string // Empty disables the file sink
	LogMaxSizeMB      int
	LogMaxBackups     int
}

// Load reads configuration from environment variables and .env file (if present).
// Missing credentials are not an error here; see MissingCredentials.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.PracticumToken = lookup("PRACTICUM_TOKEN", "practicum")
	cfg.TelegramToken = lookup("TELEGRAM_TOKEN", "telegram_token")
	cfg.TelegramChatID = lookup("TELEGRAM_CHAT_ID", "telegram_chat_id")

	cfg.PracticumEndpoint = os.Getenv("PRACTICUM_ENDPOINT")
	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = practicum.DefaultEndpoint
	}
	cfg.TelegramAPIURL = os.Getenv("TELEGRAM_API_URL")

	cfg.PollSchedule = strings.TrimSpace(os.Getenv("POLL_SCHEDULE"))
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = defaultPollSchedule // Default: every 10 minutes
	}

	cfg.RequestTimeout = defaultRequestTimeout
	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		cfg.RequestTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
		}
		if cfg.RequestTimeout <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: must be positive, got %s", raw)
		}
	}

	if raw := os.Getenv("STRICT_CONFIG"); raw != "" {
		cfg.StrictConfig, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid STRICT_CONFIG: %w", err)
		}
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.LogFile = defaultLogFile
	if raw, ok := os.LookupEnv("LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(raw)
	}

	cfg.LogMaxSizeMB, err = positiveInt("LOG_MAX_SIZE_MB", defaultLogMaxSizeMB)
	if err != nil {
		return nil, err
	}
	cfg.LogMaxBackups, err = positiveInt("LOG_MAX_BACKUPS", defaultLogMaxBackups)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// MissingCredentials lists the required variables that are not set.
func (c *AppConfig) MissingCredentials() []string {
	var missing []string
	if c.PracticumToken == "" {
		missing = append(missing, "PRACTICUM_TOKEN")
	}
	if c.TelegramToken == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.TelegramChatID == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	return missing
}

// lookup returns the first non-empty variable among name and its legacy spellings.
func lookup(name string, legacy ...string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	for _, l := range legacy {
		if v := strings.TrimSpace(os.Getenv(l)); v != "" {
			return v
		}
	}
	return ""
}

func positiveInt(name string, def int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", name, n)
	}
	return n, nil
}
