package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scraper   ScraperConfig   `yaml:"scraper"`
	Builder   BuilderConfig   `yaml:"builder"`
	Storage   StorageConfig   `yaml:"storage"`
	Email     EmailConfig     `yaml:"email"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Predictor PredictorConfig `yaml:"predictor"`
	Health    HealthConfig    `yaml:"health"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ScraperConfig struct {
	EnabledSources []string          `yaml:"enabled_sources"`
	Timeout        time.Duration     `yaml:"timeout"`
	UserAgent      string            `yaml:"user_agent"`
	MatchLimit     int               `yaml:"match_limit"` // Max matches to keep per run
	BetExplorer    BetExplorerConfig `yaml:"betexplorer"`
	OddsPortal     OddsPortalConfig  `yaml:"oddsportal"`
}

type BetExplorerConfig struct {
	BaseURL string `yaml:"base_url"`
}

type OddsPortalConfig struct {
	BaseURL string `yaml:"base_url"`
	// Headless render wait budget; OddsPortal draws odds client-side
	RenderTimeout time.Duration `yaml:"render_timeout"`
}

type BuilderConfig struct {
	TargetMin     float64 `yaml:"target_min"`     // Lower bound for combined odds (default: 3.0)
	TargetMax     float64 `yaml:"target_max"`     // Upper bound for combined odds (default: 4.0)
	LegsMin       int     `yaml:"legs_min"`       // Minimum legs per accumulator (default: 3)
	LegsMax       int     `yaml:"legs_max"`       // Maximum legs per accumulator (default: 4)
	MinOdds       float64 `yaml:"min_odds"`       // Selections at or below this are discarded (default: 1.01)
	Stake         float64 `yaml:"stake"`
	StartBankroll float64 `yaml:"start_bankroll"` // Used by the weekly rollover report
}

type StorageConfig struct {
	PostgresDSN string      `yaml:"postgres_dsn"`
	JSONLogPath string      `yaml:"json_log_path"`
	Redis       RedisConfig `yaml:"redis"`
	Gist        GistConfig  `yaml:"gist"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // Match cache lifetime (default: 1h)
}

type GistConfig struct {
	Token string `yaml:"token"` // Usually set via GIST_TOKEN env
	ID    string `yaml:"id"`    // Existing gist to update; empty creates a new one
}

type EmailConfig struct {
	SMTPHost  string `yaml:"smtp_host"`
	SMTPPort  int    `yaml:"smtp_port"` // 465 for implicit SSL
	User      string `yaml:"user"`
	Password  string `yaml:"password"` // Usually set via SMTP_PASS env
	Recipient string `yaml:"recipient"`
	Subject   string `yaml:"subject"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"` // Usually set via TELEGRAM_BOT_TOKEN env
	ChatID   int64  `yaml:"chat_id"`
}

type PredictorConfig struct {
	APIKey   string        `yaml:"api_key"` // Usually set via HF_API_KEY env
	Model    string        `yaml:"model"`   // e.g. "AmjadKha/FootballerModel"
	MaxCalls int           `yaml:"max_calls"`
	Timeout  time.Duration `yaml:"timeout"`
}

type HealthConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
}

type ScheduleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CronExpr string `yaml:"cron_expr"` // e.g. "0 9,14,19 * * *" for three daily runs
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	FilePath string `yaml:"file_path"` // Optional JSON log file next to stdout
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	config.applyEnv()

	return &config, nil
}

// applyDefaults fills zero values with the defaults the original deployment ran with.
func (c *Config) applyDefaults() {
	if c.Scraper.Timeout <= 0 {
		c.Scraper.Timeout = 15 * time.Second
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = "Mozilla/5.0 (compatible; AccumulatorBot/1.0)"
	}
	if c.Scraper.MatchLimit <= 0 {
		c.Scraper.MatchLimit = 60
	}
	if c.Builder.TargetMin <= 0 {
		c.Builder.TargetMin = 3.0
	}
	if c.Builder.TargetMax <= 0 {
		c.Builder.TargetMax = 4.0
	}
	if c.Builder.LegsMin <= 0 {
		c.Builder.LegsMin = 3
	}
	if c.Builder.LegsMax <= 0 {
		c.Builder.LegsMax = 4
	}
	if c.Builder.MinOdds <= 0 {
		c.Builder.MinOdds = 1.01
	}
	if c.Builder.StartBankroll <= 0 {
		c.Builder.StartBankroll = 1000
	}
	if c.Builder.Stake <= 0 {
		c.Builder.Stake = c.Builder.StartBankroll
	}
	if c.Storage.JSONLogPath == "" {
		c.Storage.JSONLogPath = "accumulator_log.json"
	}
	if c.Storage.Redis.TTL <= 0 {
		c.Storage.Redis.TTL = time.Hour
	}
	if c.Predictor.MaxCalls <= 0 {
		c.Predictor.MaxCalls = 6
	}
	if c.Predictor.Timeout <= 0 {
		c.Predictor.Timeout = 20 * time.Second
	}
	if c.Health.ReadHeaderTimeout <= 0 {
		c.Health.ReadHeaderTimeout = 10 * time.Second
	}
	if c.Email.Subject == "" {
		c.Email.Subject = "Daily Accumulator Picks"
	}
}

// applyEnv overrides secrets from the environment so credentials stay out of
// the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.Storage.PostgresDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Storage.Redis.Addr = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		c.Email.SMTPHost = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("SMTP_USER"); v != "" {
		c.Email.User = v
	}
	if v := os.Getenv("SMTP_PASS"); v != "" {
		c.Email.Password = v
	}
	if v := os.Getenv("RECIPIENT"); v != "" {
		c.Email.Recipient = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if chatID, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = chatID
		}
	}
	if v := os.Getenv("GIST_TOKEN"); v != "" {
		c.Storage.Gist.Token = v
	}
	if v := os.Getenv("GIST_ID"); v != "" {
		c.Storage.Gist.ID = v
	}
	if v := os.Getenv("HF_API_KEY"); v != "" {
		c.Predictor.APIKey = v
	}
	if v := os.Getenv("HF_MODEL"); v != "" {
		c.Predictor.Model = v
	}
	if v := os.Getenv("STAKE"); v != "" {
		if stake, err := strconv.ParseFloat(v, 64); err == nil && stake > 0 {
			c.Builder.Stake = stake
		}
	}
	if v := os.Getenv("START_BANKROLL"); v != "" {
		if bankroll, err := strconv.ParseFloat(v, 64); err == nil && bankroll > 0 {
			c.Builder.StartBankroll = bankroll
		}
	}
}
