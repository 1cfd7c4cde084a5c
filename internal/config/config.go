package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token    string  `yaml:"token"`
	Mode     string  `yaml:"mode"` // polling | noop
	Workers  int     `yaml:"workers"`
	AdminIDs []int64 `yaml:"admin_ids"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type WebConfig struct {
	Port      int    `yaml:"port"`
	JWTSecret string `yaml:"jwt_secret"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type MatchConfig struct {
	SearchLimit     int           `yaml:"search_limit"`
	PremiumDays     int           `yaml:"premium_days"`
	ExpirySweep     time.Duration `yaml:"expiry_sweep"`
	RateLimitPerMin int           `yaml:"rate_limit_per_min"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Web      WebConfig      `yaml:"web"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Match    MatchConfig    `yaml:"match"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file, applies defaults, then lets the environment
// variables the deployment manifest injects (DATABASE_URL, TELEGRAM_TOKEN,
// ADMIN_USER_IDS) override the file.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(&cfg)

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Match.SearchLimit <= 0 {
		cfg.Match.SearchLimit = 20
	}
	if cfg.Match.PremiumDays <= 0 {
		cfg.Match.PremiumDays = 30
	}
	if cfg.Match.ExpirySweep <= 0 {
		cfg.Match.ExpirySweep = time.Hour
	}
	if cfg.Match.RateLimitPerMin <= 0 {
		cfg.Match.RateLimitPerMin = 20
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required (or set TELEGRAM_TOKEN)")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required (or set DATABASE_URL)")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required (or set REDIS_URL)")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("ADMIN_USER_IDS"); v != "" {
		cfg.Bot.AdminIDs = ParseAdminIDs(v)
	}
}

// ParseAdminIDs parses the comma-separated ADMIN_USER_IDS value. Blank and
// malformed entries are skipped rather than failing startup.
func ParseAdminIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
