package config

import (
	"time"

	"github.com/agriconnect/agrointel/internal/domain/recommend"
)

const (
	DefaultServerPort      = 8080
	DefaultServerMode      = "release"
	DefaultShutdownTimeout = 10 * time.Second

	DefaultRedisAddr  = "localhost:6379"
	DefaultRedisTTL   = 10 * time.Minute
	DefaultKeyPrefix  = "agrointel:"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultForecastCacheTTL = 10 * time.Minute
	DefaultPriceHorizonDays = 30
)

// ApplyDefaults fills zero-value fields in cfg with the service defaults.
// Explicitly configured values are never overwritten.  Call it after
// unmarshalling and before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.DefaultTTL == 0 {
		cfg.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultKeyPrefix
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Engine.ForecastCacheTTL == 0 {
		cfg.Engine.ForecastCacheTTL = DefaultForecastCacheTTL
	}
	if cfg.Engine.PriceHorizonDays == 0 {
		cfg.Engine.PriceHorizonDays = DefaultPriceHorizonDays
	}
	zero := recommend.Weights{}
	if cfg.Engine.Weights == zero {
		cfg.Engine.Weights = recommend.DefaultWeights()
	}
	if cfg.Engine.Calibration == (recommend.Calibration{}) {
		cfg.Engine.Calibration = recommend.DefaultCalibration()
	}
}
