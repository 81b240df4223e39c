package config

import (
	"errors"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"
	configPathEnv   = "LOVDATA_SCANNER_CONFIG"

	sheetIDEnv        = "GOOGLE_SHEET_ID"
	sheetTabEnv       = "GOOGLE_SHEET_TAB"
	serviceAccountEnv = "GOOGLE_SA_JSON"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Lovdata       LovdataConfig      `yaml:"lovdata"`
	Sheet         SheetConfig        `yaml:"sheet"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// LovdataConfig describes the public-data API and the two fixed packages.
type LovdataConfig struct {
	BaseURL            string `yaml:"baseUrl"`
	LawsPackage        string `yaml:"lawsPackage"`
	RegulationsPackage string `yaml:"regulationsPackage"`
}

// SheetConfig identifies the ledger spreadsheet and its credentials. The
// service-account JSON only comes from the environment, never from the
// config file.
type SheetConfig struct {
	SpreadsheetID      string `yaml:"spreadsheetId"`
	Tab                string `yaml:"tab"`
	ServiceAccountJSON string `yaml:"-"`
}

// DatabaseConfig describes the optional Postgres run-history store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// SchedulerConfig defines when recurring runs execute.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

// Validate fails fast on missing required external configuration, before any
// work begins.
func (c Config) Validate() error {
	if c.Sheet.SpreadsheetID == "" {
		return errors.New("config: missing ledger spreadsheet id (GOOGLE_SHEET_ID)")
	}
	if c.Sheet.ServiceAccountJSON == "" {
		return errors.New("config: missing service account credentials (GOOGLE_SA_JSON)")
	}
	if c.Sheet.Tab == "" {
		return errors.New("config: missing ledger tab name")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(sheetIDEnv); v != "" {
		c.Sheet.SpreadsheetID = v
	}
	if v := os.Getenv(sheetTabEnv); v != "" {
		c.Sheet.Tab = v
	}
	if v := os.Getenv(serviceAccountEnv); v != "" {
		c.Sheet.ServiceAccountJSON = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Lovdata.BaseURL != "" {
		base.Lovdata.BaseURL = override.Lovdata.BaseURL
	}
	if override.Lovdata.LawsPackage != "" {
		base.Lovdata.LawsPackage = override.Lovdata.LawsPackage
	}
	if override.Lovdata.RegulationsPackage != "" {
		base.Lovdata.RegulationsPackage = override.Lovdata.RegulationsPackage
	}

	if override.Sheet.SpreadsheetID != "" {
		base.Sheet.SpreadsheetID = override.Sheet.SpreadsheetID
	}
	if override.Sheet.Tab != "" {
		base.Sheet.Tab = override.Sheet.Tab
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Lovdata: LovdataConfig{
			BaseURL:            "https://api.lovdata.no/v1",
			LawsPackage:        "gjeldende-lover.tar.bz2",
			RegulationsPackage: "gjeldende-sentrale-forskrifter.tar.bz2",
		},
		Sheet:     SheetConfig{Tab: "Norway Trial"},
		Scheduler: SchedulerConfig{CronExpression: "0 6 * * *", Timezone: defaultTimezone, location: tz},
	}
}
