package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "diagonator/internal/platform/errors"
)

const (
	KeyConfigFile      = "config"
	KeyServerURL       = "server-url"
	KeyAnalyticsFile   = "analytics-file"
	KeyRequestTimeout  = "request-timeout"
	KeySelector        = "selector"
	KeySelectorCommand = "selector-command"
	KeyChallengeMode   = "challenge-mode"
	KeyWakeHour        = "wake-hour"
	KeyBedtimeHour     = "bedtime-hour"
	KeyLogLevel        = "log-level"
	KeyListen          = "listen"

	EnvPrefix = "DIAGONATOR"

	SelectorDmenu = "dmenu"
	SelectorTUI   = "tui"
)

var keys = []string{
	KeyConfigFile,
	KeyServerURL,
	KeyAnalyticsFile,
	KeyRequestTimeout,
	KeySelector,
	KeySelectorCommand,
	KeyChallengeMode,
	KeyWakeHour,
	KeyBedtimeHour,
	KeyLogLevel,
	KeyListen,
}

type Config struct {
	ServerURL string
	// AnalyticsFile is optional; empty disables the event log.
	AnalyticsFile   string
	RequestTimeout  time.Duration
	Selector        string
	SelectorCommand string
	ChallengeMode   string
	WakeHour        int
	BedtimeHour     int
	LogLevel        string
	Listen          string
}

func Defaults() Config {
	return Config{
		RequestTimeout: 10 * time.Second,
		Selector:       SelectorDmenu,
		ChallengeMode:  "plain",
		WakeHour:       8,
		BedtimeHour:    23,
		LogLevel:       "warn",
		Listen:         "127.0.0.1:8050",
	}
}

// RegisterFlags adds every configuration key as a flag. Environment variables
// (DIAGONATOR_SERVER_URL, ...) and the optional config file fill in whatever
// is not given on the command line.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Defaults()
	flags.String(KeyConfigFile, "", "YAML configuration file")
	flags.String(KeyServerURL, "", "server endpoint: unix socket path, unix:// or http(s):// URL")
	flags.String(KeyAnalyticsFile, "", "sqlite event log; empty disables logging")
	flags.Duration(KeyRequestTimeout, d.RequestTimeout, "timeout for each request to the server")
	flags.String(KeySelector, d.Selector, "line selector: dmenu or tui")
	flags.String(KeySelectorCommand, "", "menu program used by the dmenu selector")
	flags.String(KeyChallengeMode, d.ChallengeMode, "confirmation challenge: plain or countdown")
	flags.Int(KeyWakeHour, d.WakeHour, "wake hour for the countdown challenge")
	flags.Int(KeyBedtimeHour, d.BedtimeHour, "bedtime hour for the countdown challenge")
	flags.String(KeyLogLevel, d.LogLevel, "log level: trace, debug, info, warn, error")
	flags.String(KeyListen, d.Listen, "analytics server listen address")
}

// Load resolves flags, environment and config file, in that order of precedence.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	if path := strings.TrimSpace(v.GetString(KeyConfigFile)); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read config %s: %v", apperrors.ErrInvalidInput, path, err)
		}
	}

	cfg := Config{
		ServerURL:       strings.TrimSpace(v.GetString(KeyServerURL)),
		AnalyticsFile:   strings.TrimSpace(v.GetString(KeyAnalyticsFile)),
		RequestTimeout:  v.GetDuration(KeyRequestTimeout),
		Selector:        strings.ToLower(strings.TrimSpace(v.GetString(KeySelector))),
		SelectorCommand: strings.TrimSpace(v.GetString(KeySelectorCommand)),
		ChallengeMode:   strings.ToLower(strings.TrimSpace(v.GetString(KeyChallengeMode))),
		WakeHour:        v.GetInt(KeyWakeHour),
		BedtimeHour:     v.GetInt(KeyBedtimeHour),
		LogLevel:        strings.TrimSpace(v.GetString(KeyLogLevel)),
		Listen:          strings.TrimSpace(v.GetString(KeyListen)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", apperrors.ErrInvalidInput, KeyRequestTimeout)
	}
	switch c.Selector {
	case SelectorDmenu, SelectorTUI:
	default:
		return fmt.Errorf("%w: unknown %s %q", apperrors.ErrInvalidInput, KeySelector, c.Selector)
	}
	return nil
}

// RequireServer is checked by commands that talk to the server.
func (c Config) RequireServer() error {
	if c.ServerURL == "" {
		return fmt.Errorf("%w: %s is required (flag --%s or %s_SERVER_URL)", apperrors.ErrInvalidInput, KeyServerURL, KeyServerURL, EnvPrefix)
	}
	return nil
}

func (c Config) AnalyticsEnabled() bool {
	return c.AnalyticsFile != ""
}
