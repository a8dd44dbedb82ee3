package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"bond-sale-alerts/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Market    MarketConfig    `mapstructure:"market"`
	Reserve   ReserveConfig   `mapstructure:"reserve"`
	Model     ModelConfig     `mapstructure:"model"`
	Alerting  AlertingConfig  `mapstructure:"alerting"`
	Listings  ListingsConfig  `mapstructure:"listings"`
	Export    ExportConfig    `mapstructure:"export"`
	History   HistoryConfig   `mapstructure:"history"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// SchedulerConfig governs scoring cadence.
type SchedulerConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	AlignToCycle bool          `mapstructure:"align_to_cycle"`
	StartupDelay time.Duration `mapstructure:"startup_delay"`
}

// MarketConfig drives the simulated market feed.
type MarketConfig struct {
	Sentiment         string             `mapstructure:"sentiment"`
	TrendPct          float64            `mapstructure:"trend_pct"`
	InterestRateDelta float64            `mapstructure:"interest_rate_delta"`
	CreditSpreadDelta float64            `mapstructure:"credit_spread_delta"`
	JitterPct         float64            `mapstructure:"jitter_pct"`
	Seed              int64              `mapstructure:"seed"`
	SectorTrends      map[string]float64 `mapstructure:"sector_trends"`
	SectorPerformance map[string]float64 `mapstructure:"sector_performance"`
}

// ReserveConfig sizes the instant-liquidity reserve fund.
type ReserveConfig struct {
	Total            float64 `mapstructure:"total"`
	Available        float64 `mapstructure:"available"`
	MonthlyCapacity  float64 `mapstructure:"monthly_capacity"`
	CapacityUsed     float64 `mapstructure:"capacity_used"`
	WindowDayOfMonth int     `mapstructure:"window_day_of_month"`
}

// ModelConfig identifies the prediction model build.
type ModelConfig struct {
	Version string `mapstructure:"version"`
}

// AlertingConfig defines alert thresholds and routing.
type AlertingConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	ThresholdPct float64       `mapstructure:"threshold_pct"`
	Cooldown     time.Duration `mapstructure:"cooldown"`
	Channels     []string      `mapstructure:"channels"`
}

// ListingsConfig tunes the peer-to-peer board.
type ListingsConfig struct {
	ListingFeePct float64       `mapstructure:"listing_fee_pct"`
	TradeFeePct   float64       `mapstructure:"trade_fee_pct"`
	TTL           time.Duration `mapstructure:"ttl"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
	Cycles        int `mapstructure:"cycles"`
}

// HistoryConfig bounds the in-memory record.
type HistoryConfig struct {
	MaxSamples int `mapstructure:"max_samples"`
	MaxAlerts  int `mapstructure:"max_alerts"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BONDWATCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bondwatcher")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("scheduler.interval", "30s")
	v.SetDefault("scheduler.align_to_cycle", true)
	v.SetDefault("scheduler.startup_delay", "0s")

	v.SetDefault("market.sentiment", "positive")
	v.SetDefault("market.trend_pct", 0.8)
	v.SetDefault("market.interest_rate_delta", 0.0)
	v.SetDefault("market.credit_spread_delta", 0.0)
	v.SetDefault("market.jitter_pct", 0.0)
	v.SetDefault("market.seed", int64(0))
	v.SetDefault("market.sector_trends", map[string]float64{
		"Banking & Financial Services": 0.5,
		"Renewable Energy":             0.3,
		"Energy & Petrochemicals":      -0.2,
	})
	v.SetDefault("market.sector_performance", map[string]float64{})

	v.SetDefault("reserve.total", 10_000_000.0)
	v.SetDefault("reserve.available", 8_000_000.0)
	v.SetDefault("reserve.monthly_capacity", 500_000.0)
	v.SetDefault("reserve.capacity_used", 25_000.0)
	v.SetDefault("reserve.window_day_of_month", 1)

	v.SetDefault("model.version", "1.2.3")

	v.SetDefault("alerting.enabled", true)
	v.SetDefault("alerting.threshold_pct", 85.0)
	v.SetDefault("alerting.cooldown", "10m")
	v.SetDefault("alerting.channels", []string{"log"})

	v.SetDefault("listings.listing_fee_pct", 0.3)
	v.SetDefault("listings.trade_fee_pct", 0.5)
	v.SetDefault("listings.ttl", "336h")

	v.SetDefault("export.max_data_points", 100000)
	v.SetDefault("export.cycles", 30)

	v.SetDefault("history.max_samples", 10000)
	v.SetDefault("history.max_alerts", 1000)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be greater than zero")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	if c.Export.Cycles <= 0 {
		return fmt.Errorf("export.cycles must be greater than zero")
	}
	if c.Alerting.ThresholdPct < 0 || c.Alerting.ThresholdPct > 100 {
		return fmt.Errorf("alerting.threshold_pct must be between 0 and 100")
	}
	if c.Reserve.Total < 0 || c.Reserve.Available < 0 {
		return fmt.Errorf("reserve amounts cannot be negative")
	}
	if c.Reserve.Available > c.Reserve.Total {
		return fmt.Errorf("reserve.available cannot exceed reserve.total")
	}
	if c.Reserve.WindowDayOfMonth < 1 || c.Reserve.WindowDayOfMonth > 28 {
		return fmt.Errorf("reserve.window_day_of_month must be between 1 and 28")
	}
	if c.Market.JitterPct < 0 {
		return fmt.Errorf("market.jitter_pct cannot be negative")
	}
	switch c.Market.Sentiment {
	case "very_positive", "positive", "neutral", "negative", "very_negative":
	default:
		return fmt.Errorf("market.sentiment %q is not a recognised level", c.Market.Sentiment)
	}
	if c.Listings.ListingFeePct < 0 || c.Listings.TradeFeePct < 0 {
		return fmt.Errorf("listing fees cannot be negative")
	}
	return nil
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}

// ResolveCycles returns either the CLI override or config default.
func (c *Config) ResolveCycles(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.Cycles
}
