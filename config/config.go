package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Encode    EncodeConfig    `mapstructure:"encode"`
	Neighbors NeighborsConfig `mapstructure:"neighbors"`
	Index     IndexConfig     `mapstructure:"index"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EncodeConfig holds the default encoder precision in degrees; 0 derives it
// from the input.
type EncodeConfig struct {
	Precision float64 `mapstructure:"precision"`
}

type NeighborsConfig struct {
	Layer int `mapstructure:"layer"`
}

// IndexConfig configures the in-memory place index used by nearby lookups.
type IndexConfig struct {
	Technique  string `mapstructure:"technique"`
	Length     int    `mapstructure:"length"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// Load reads config.yaml from the working directory if present, then
// GEOHASH_* environment variables, over the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GEOHASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("encode.precision", 0.0)
	v.SetDefault("neighbors.layer", 1)
	v.SetDefault("index.technique", "geohashing")
	v.SetDefault("index.length", 6)
	v.SetDefault("index.max_retries", 5)

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

// InitLogger builds the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}
