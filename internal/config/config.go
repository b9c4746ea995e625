package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/questagent/internal/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	defaultCollectorURL = "https://collector.rilix.cloud/api/v1/telemetry"
	defaultLicenseURL   = "http://127.0.0.1:17999/license"
	defaultUserAgent    = "questagent/1.0"
	defaultLogDir       = "/var/log/questagent"
	defaultJournalDB    = "/var/lib/questagent/journal.db"
	defaultADBPath      = "adb"
	defaultGameProcess  = "com.rilix.coaster"
	defaultBoardConfig  = "/etc/questagent/board.conf"
	defaultStationFile  = "/etc/questagent/station.json"
	defaultAnydeskSpare = "999999999"
)

type Config struct {
	CollectorURL       string `mapstructure:"collector_url"`
	Token              string `mapstructure:"token"`
	UserAgent          string `mapstructure:"user_agent"`
	LicenseURL         string `mapstructure:"license_url"`
	LogDir             string `mapstructure:"log_dir"`
	Journal            bool   `mapstructure:"journal"`
	JournalDB          string `mapstructure:"journal_db"`
	ADBPath            string `mapstructure:"adb_path"`
	GameProcess        string `mapstructure:"game_process"`
	BoardConfig        string `mapstructure:"board_config"`
	StationFile        string `mapstructure:"station_file"`
	AnydeskPlaceholder string `mapstructure:"anydesk_placeholder"`
	Interval           int    `mapstructure:"interval"`
	LogLevel           string `mapstructure:"log_level"`
	Debug              bool   `mapstructure:"debug"`
	Verbose            bool   `mapstructure:"verbose"`
}

// Load reads configuration from defaults, an optional TOML file and command
// line flags, in ascending order of precedence. The config file is taken from
// QUESTAGENT_CONFIG when set, otherwise searched in /etc/questagent and /etc.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	setDefaults(v)

	fs := pflag.NewFlagSet("questagent", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.String("collector-url", defaultCollectorURL, "Remote collector endpoint")
	fs.String("token", "", "Bearer token for the remote collector")
	fs.String("license-url", defaultLicenseURL, "Local license service endpoint")
	fs.String("log-dir", defaultLogDir, "Directory for the local telemetry log")
	fs.Bool("journal", false, "Enable the sqlite delivery journal")
	fs.String("journal-db", defaultJournalDB, "Path to the delivery journal database")
	fs.String("adb-path", defaultADBPath, "Path to the adb binary")
	fs.Int("interval", 0, "Interval between passes in seconds (0 = single pass)")
	fs.String("log-level", DefaultLogLevel, "Logging level (debug, info, warning, error)")
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	if path := os.Getenv("QUESTAGENT_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("questagent")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/questagent")
		v.AddConfigPath("/etc")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Command line flags override config file values
	fs.Visit(func(f *pflag.Flag) {
		v.Set(strings.ReplaceAll(f.Name, "-", "_"), f.Value.String())
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded configuration for values no pass could run with.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}
	if c.Interval < 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}
	if c.CollectorURL == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "collector_url must be set")
	}
	if c.LogDir == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "log_dir must be set")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("collector_url", defaultCollectorURL)
	v.SetDefault("token", "")
	v.SetDefault("user_agent", defaultUserAgent)
	v.SetDefault("license_url", defaultLicenseURL)
	v.SetDefault("log_dir", defaultLogDir)
	v.SetDefault("journal", false)
	v.SetDefault("journal_db", defaultJournalDB)
	v.SetDefault("adb_path", defaultADBPath)
	v.SetDefault("game_process", defaultGameProcess)
	v.SetDefault("board_config", defaultBoardConfig)
	v.SetDefault("station_file", defaultStationFile)
	v.SetDefault("anydesk_placeholder", defaultAnydeskSpare)
	v.SetDefault("interval", 0)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
}

// ApplyLogLevel maps the configured level onto the global zerolog level.
// Called after logger.Init so the configured level wins over Init's default.
func ApplyLogLevel(c *Config) {
	switch {
	case c.Debug || c.LogLevel == string(LogLevelDebug):
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case c.Verbose || c.LogLevel == string(LogLevelInfo):
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case c.LogLevel == string(LogLevelError):
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
