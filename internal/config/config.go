package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Analytics AnalyticsConfig `yaml:"analytics" mapstructure:"analytics"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the warehouse backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // "postgres" or "sqlite"
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the analytics API server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RateLimitRPS  float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	AllowedOrigin string  `yaml:"allowed_origin" mapstructure:"allowed_origin"`
}

// AnalyticsConfig holds the tunable thresholds for the pattern analyzers.
// Defaults reproduce the dashboard's original cutoffs; changing them changes
// output comparability across deployments.
type AnalyticsConfig struct {
	AnomalyZCutoff   float64 `yaml:"anomaly_z_cutoff" mapstructure:"anomaly_z_cutoff"`
	AnomalyMinSample int     `yaml:"anomaly_min_sample" mapstructure:"anomaly_min_sample"`
	AnomalyMaxRows   int     `yaml:"anomaly_max_rows" mapstructure:"anomaly_max_rows"`

	RiskMinOrders int `yaml:"risk_min_orders" mapstructure:"risk_min_orders"`
	RiskMaxRows   int `yaml:"risk_max_rows" mapstructure:"risk_max_rows"`

	ForecastMinSample int `yaml:"forecast_min_sample" mapstructure:"forecast_min_sample"`

	AssocMinCoCount int `yaml:"assoc_min_co_count" mapstructure:"assoc_min_co_count"`
	AssocMaxRows    int `yaml:"assoc_max_rows" mapstructure:"assoc_max_rows"`

	SegmentMinOrders   int     `yaml:"segment_min_orders" mapstructure:"segment_min_orders"`
	KeyAccountSharePct float64 `yaml:"key_account_share_pct" mapstructure:"key_account_share_pct"`
	GrowthSharePct     float64 `yaml:"growth_share_pct" mapstructure:"growth_share_pct"`

	TrendMonths int `yaml:"trend_months" mapstructure:"trend_months"`

	DemandMonths   int `yaml:"demand_months" mapstructure:"demand_months"`
	DemandMinWeeks int `yaml:"demand_min_weeks" mapstructure:"demand_min_weeks"`
	DemandMaxRows  int `yaml:"demand_max_rows" mapstructure:"demand_max_rows"`

	ComplexityMaxRows int `yaml:"complexity_max_rows" mapstructure:"complexity_max_rows"`

	CancelSupplierMinOrders int `yaml:"cancel_supplier_min_orders" mapstructure:"cancel_supplier_min_orders"`
	CancelReasonMaxRows     int `yaml:"cancel_reason_max_rows" mapstructure:"cancel_reason_max_rows"`
	CancelSupplierMaxRows   int `yaml:"cancel_supplier_max_rows" mapstructure:"cancel_supplier_max_rows"`

	AnalyzerTimeoutSecs int `yaml:"analyzer_timeout_secs" mapstructure:"analyzer_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	Format     string `yaml:"format" mapstructure:"format"`
	File       string `yaml:"file" mapstructure:"file"` // empty = stderr only
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" mapstructure:"max_age_days"`
}

// SetDefaults registers every configuration default on the given viper
// instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit_rps", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("server.timeout_secs", 30)
	v.SetDefault("server.allowed_origin", "*")

	v.SetDefault("analytics.anomaly_z_cutoff", 2.0)
	v.SetDefault("analytics.anomaly_min_sample", 10)
	v.SetDefault("analytics.anomaly_max_rows", 50)
	v.SetDefault("analytics.risk_min_orders", 5)
	v.SetDefault("analytics.risk_max_rows", 50)
	v.SetDefault("analytics.forecast_min_sample", 10)
	v.SetDefault("analytics.assoc_min_co_count", 5)
	v.SetDefault("analytics.assoc_max_rows", 30)
	v.SetDefault("analytics.segment_min_orders", 10)
	v.SetDefault("analytics.key_account_share_pct", 10)
	v.SetDefault("analytics.growth_share_pct", 2)
	v.SetDefault("analytics.trend_months", 6)
	v.SetDefault("analytics.demand_months", 3)
	v.SetDefault("analytics.demand_min_weeks", 4)
	v.SetDefault("analytics.demand_max_rows", 50)
	v.SetDefault("analytics.complexity_max_rows", 50)
	v.SetDefault("analytics.cancel_supplier_min_orders", 20)
	v.SetDefault("analytics.cancel_reason_max_rows", 10)
	v.SetDefault("analytics.cancel_supplier_max_rows", 20)
	v.SetDefault("analytics.analyzer_timeout_secs", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 14)
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PARTSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger. When a log file is
// configured the JSON stream is additionally written there with size-based
// rotation.
func InitLogger(cfg LogConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}

	if cfg.File != "" {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			rotated,
			level,
		)
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore)
		}))
	}

	zap.ReplaceGlobals(logger)

	return nil
}
