package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	DB     DBConfig     `mapstructure:"db"`
	Cron   CronConfig   `mapstructure:"cron"`
	Market MarketConfig `mapstructure:"market"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	OddsSnapshot  string `mapstructure:"odds_snapshot"`
	SnapshotPurge string `mapstructure:"snapshot_purge"`
}

// MarketConfig holds pricing and execution defaults applied when a request
// does not override them.
type MarketConfig struct {
	// DefaultLiquidity is the LMSR b parameter for new markets; it bounds
	// the worst-case book loss at b*ln(outcomes).
	DefaultLiquidity float64 `mapstructure:"default_liquidity"`
	MaxSlippage      float64 `mapstructure:"max_slippage"`
	CashOutFee       float64 `mapstructure:"cash_out_fee"`
	// SharePrecision is the share-solver bracket width in share units.
	SharePrecision float64 `mapstructure:"share_precision"`
	// SnapshotRetention bounds how much odds history the purge sweep keeps.
	SnapshotRetention time.Duration `mapstructure:"snapshot_retention"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.odds_snapshot", "@every 1m")
	v.SetDefault("cron.snapshot_purge", "@every 6h")
	v.SetDefault("market.default_liquidity", 100.0)
	v.SetDefault("market.max_slippage", 0.05)
	v.SetDefault("market.cash_out_fee", 0.02)
	v.SetDefault("market.share_precision", 0.01)
	v.SetDefault("market.snapshot_retention", "720h")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
