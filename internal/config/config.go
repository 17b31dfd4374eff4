// Package config assembles the bot's configuration from the environment,
// optional .env files and an optional YAML team file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/redsoxbot/soxbot/internal/logger"
	"github.com/redsoxbot/soxbot/internal/notifier"
	"github.com/redsoxbot/soxbot/internal/roster"
	"github.com/redsoxbot/soxbot/internal/storage"
)

// Store backends
const (
	StoreS3     = "s3"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// StoreConfig selects and configures the marker store
type StoreConfig struct {
	Kind            string
	S3              storage.S3Config
	DataDir         string
	Namespace       string
	TransactionsKey string
}

// Config is everything a command needs, passed explicitly to constructors
type Config struct {
	Team           Team
	Store          StoreConfig
	Platform       string
	Credentials    notifier.Credentials
	SummaryURL     string
	NewsURL        string
	PushgatewayURL string
	LogLevel       string
	GitHubActions  bool
}

// LoadEnv loads environment variables from .env files in the working
// directory. Values already in the environment are overridden.
func LoadEnv() {
	files := []string{".env", ".env.local"}
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Overload(file); err != nil {
			logger.Warn("Failed to load env file", logger.Fields{"file": file, "error": err.Error()})
			continue
		}
		loaded = append(loaded, file)
	}
	if len(loaded) == 0 {
		logger.Debug("No local env files loaded; relying on process environment", nil)
	} else {
		logger.Debug("Loaded env files", logger.Fields{"files": strings.Join(loaded, ", ")})
	}
}

// Load builds a Config from the environment. teamFile, when set, is a YAML
// file overriding the default team.
func Load(teamFile string) (*Config, error) {
	team := DefaultTeam()
	if teamFile != "" {
		var err error
		team, err = LoadTeam(teamFile)
		if err != nil {
			return nil, err
		}
	}
	if _, err := team.Location(); err != nil {
		return nil, err
	}

	inActions := GetEnvBool("GITHUB_ACTIONS", false)

	// Local runs use a named AWS profile; CI gets credentials from the environment
	profile := ""
	if !inActions {
		profile = GetEnv("AWS_PERSONAL_PROFILE", "")
	}

	cfg := &Config{
		Team: team,
		Store: StoreConfig{
			Kind: strings.ToLower(GetEnv("STORE", StoreS3)),
			S3: storage.S3Config{
				Bucket:    GetEnv("S3_BUCKET", "redsox-data"),
				Prefix:    GetEnv("S3_PREFIX", ""),
				Region:    GetEnv("AWS_REGION", "us-west-1"),
				Endpoint:  GetEnv("S3_ENDPOINT", ""),
				Profile:   profile,
				AccessKey: GetEnv("S3_ACCESS_KEY", ""),
				SecretKey: GetEnv("S3_SECRET_KEY", ""),
			},
			DataDir:         GetEnv("DATA_DIR", "~/.local/share/soxbot"),
			Namespace:       GetEnv("MARKER_NAMESPACE", storage.DefaultNamespace),
			TransactionsKey: GetEnv("TRANSACTIONS_ARCHIVE_KEY", roster.DefaultArchiveKey),
		},
		Platform: strings.ToLower(GetEnv("PLATFORM", notifier.PlatformBluesky)),
		Credentials: notifier.Credentials{
			Bluesky: notifier.BlueskyConfig{
				Handle:      os.Getenv("BLUESKY_HANDLE"),
				AppPassword: os.Getenv("BLUESKY_APP_PASSWORD"),
				Service:     GetEnv("BLUESKY_SERVICE", notifier.DefaultBlueskyService),
			},
			Twitter: notifier.TwitterConfig{
				APIKey:       os.Getenv("TWITTER_API_KEY"),
				APISecret:    os.Getenv("TWITTER_API_SECRET"),
				AccessToken:  os.Getenv("TWITTER_ACCESS_TOKEN"),
				AccessSecret: os.Getenv("TWITTER_ACCESS_SECRET"),
			},
			Telegram: notifier.TelegramConfig{
				BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
				ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
			},
		},
		SummaryURL:     GetEnv("SUMMARY_URL", team.SummaryURL),
		NewsURL:        GetEnv("NEWS_URL", team.NewsURL()),
		PushgatewayURL: GetEnv("PUSHGATEWAY_URL", ""),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
		GitHubActions:  inActions,
	}

	switch cfg.Store.Kind {
	case StoreS3, StoreFile, StoreMemory:
	default:
		return nil, fmt.Errorf("invalid STORE: %s (must be s3, file or memory)", cfg.Store.Kind)
	}

	return cfg, nil
}

// GetEnv gets an environment variable with a default value
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool gets a boolean environment variable with a default value
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
