package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// AppCfg service-level settings.
type AppCfg struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// CatalogCfg catalog feed settings.
type CatalogCfg struct {
	FeedURL        string  `mapstructure:"feed_url"`
	TTLMinutes     int     `mapstructure:"ttl_minutes"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	RatePerSecond  float64 `mapstructure:"rate_per_second"`
	Burst          int     `mapstructure:"burst"`
}

// CacheCfg extraction result cache settings.
type CacheCfg struct {
	L1Size   int    `mapstructure:"l1_size"`
	UseRedis bool   `mapstructure:"use_redis"`
	RedisURL string `mapstructure:"redis_url"`
}

// Config full service configuration.
type Config struct {
	App     AppCfg     `mapstructure:"app"`
	Catalog CatalogCfg `mapstructure:"catalog"`
	Cache   CacheCfg   `mapstructure:"cache"`
}

// Load reads config/app.yaml with environment overrides
// (e.g. CATALOG_FEED_URL, CACHE_REDIS_URL).
func Load() (*Config, error) {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("catalog.feed_url", "")
	viper.SetDefault("catalog.ttl_minutes", 10)
	viper.SetDefault("catalog.timeout_seconds", 30)
	viper.SetDefault("catalog.rate_per_second", 1)
	viper.SetDefault("catalog.burst", 5)
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("cache.use_redis", false)
	viper.SetDefault("cache.redis_url", "redis://localhost:6379")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("warning: cannot read config file: %v", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
