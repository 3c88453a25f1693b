package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"meater/internal/credentials"
	"meater/internal/meater"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "MEATER"

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; an unreadable one is.
func Load(cfgFile string) error {
	// .env is optional
	_ = godotenv.Load()

	setDefaults()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(viper.GetString("data_dir"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

func setDefaults() {
	viper.SetDefault("api_url", meater.DefaultBaseURL)
	viper.SetDefault("poll_interval", "2s")
	viper.SetDefault("http_timeout", "10s")
	viper.SetDefault("log_file", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("metrics_addr", "")

	if dir, err := credentials.DefaultDataDir(); err == nil {
		viper.SetDefault("data_dir", dir)
	}

	// History Defaults
	viper.SetDefault("history.enabled", false)
	viper.SetDefault("history.type", "sqlite")

	// Notification Defaults
	viper.SetDefault("notifications.slack.enabled", os.Getenv("SLACK_BOT_USER_TOKEN") != "")
	viper.SetDefault("notifications.slack.channel", "#bbq")
	viper.SetDefault("notifications.discord.enabled", os.Getenv("DISCORD_WEBHOOK_URL") != "")
}

// Settings is a typed snapshot of the loaded configuration.
type Settings struct {
	APIURL       string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	DataDir      string
	LogFile      string
	Verbose      bool
	MetricsAddr  string

	History       HistorySettings
	Notifications NotificationSettings
}

// HistorySettings selects the reading history backend.
type HistorySettings struct {
	Enabled bool
	Type    string
	DSN     string
}

// NotificationSettings reports which providers are switched on.
type NotificationSettings struct {
	Slack        bool
	SlackChannel string
	Discord      bool
}

// Current reads the active configuration. Paths that default relative to
// the data directory are resolved here so that an overridden data_dir moves
// them too.
func Current() Settings {
	s := Settings{
		APIURL:       viper.GetString("api_url"),
		PollInterval: duration("poll_interval"),
		HTTPTimeout:  duration("http_timeout"),
		DataDir:      viper.GetString("data_dir"),
		LogFile:      viper.GetString("log_file"),
		Verbose:      viper.GetBool("verbose"),
		MetricsAddr:  viper.GetString("metrics_addr"),
		History: HistorySettings{
			Enabled: viper.GetBool("history.enabled"),
			Type:    viper.GetString("history.type"),
			DSN:     viper.GetString("history.dsn"),
		},
		Notifications: NotificationSettings{
			Slack:        viper.GetBool("notifications.slack.enabled"),
			SlackChannel: viper.GetString("notifications.slack.channel"),
			Discord:      viper.GetBool("notifications.discord.enabled"),
		},
	}

	if s.History.DSN == "" && s.DataDir != "" && !strings.HasPrefix(strings.ToLower(s.History.Type), "postgres") {
		s.History.DSN = filepath.Join(s.DataDir, "history.db")
	}
	return s
}

// DefaultLogFile is where the full-screen dashboard logs when log_file is unset.
func (s Settings) DefaultLogFile() string {
	if s.LogFile != "" {
		return s.LogFile
	}
	if s.DataDir == "" {
		return ""
	}
	return filepath.Join(s.DataDir, "meater.log")
}

// duration reads a duration setting. Bare integers are taken as seconds.
func duration(key string) time.Duration {
	switch v := viper.Get(key).(type) {
	case int, int32, int64:
		return time.Duration(viper.GetInt64(key)) * time.Second
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return viper.GetDuration(key)
}
