package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	Cache           CacheConfig          `mapstructure:"cache"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	AWS             AWSConfig            `mapstructure:"aws"`
	Logging         LoggingConfig        `mapstructure:"logging"`
	Valuation       ValuationConfig      `mapstructure:"valuation"`
	Worker          WorkerConfig         `mapstructure:"worker"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType   `mapstructure:"type"`
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

type CacheDriver string

const (
	MemoryCache CacheDriver = "memory"
	RedisCache  CacheDriver = "redis"
)

type CacheConfig struct {
	Driver CacheDriver   `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type ExternalClientConfig struct {
	ECOS ECOSConfig `mapstructure:"ecos"`
}

// SeriesConfig identifies one statistic table/item pair on the statistics service.
type SeriesConfig struct {
	StatCode  string `mapstructure:"statCode"`
	Frequency string `mapstructure:"frequency"`
	ItemCode  string `mapstructure:"itemCode"`
}

type ECOSConfig struct {
	BaseURL         string                  `mapstructure:"baseUrl"`
	APIKey          string                  `mapstructure:"apiKey"`
	APIKeySecretID  string                  `mapstructure:"apiKeySecretId"`
	Timeout         time.Duration           `mapstructure:"timeout"`
	MaxLookbackDays int                     `mapstructure:"maxLookbackDays"`
	Series          map[string]SeriesConfig `mapstructure:"series"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type RateAggregation string

const (
	LastRate     RateAggregation = "last"
	WeightedRate RateAggregation = "weighted"
)

type ValuationConfig struct {
	RateAggregation RateAggregation `mapstructure:"rateAggregation"`
	KRWUnitValue    int64           `mapstructure:"krwUnitValue"`
	Timezone        string          `mapstructure:"timezone"`
}

type WorkerConfig struct {
	WarmSpec string `mapstructure:"warmSpec"`
}

// SeriesFor looks up a series by asset code. viper lowercases map keys, so both
// spellings are accepted.
func (c ECOSConfig) SeriesFor(code string) (SeriesConfig, bool) {
	if s, ok := c.Series[strings.ToLower(code)]; ok {
		return s, true
	}
	s, ok := c.Series[strings.ToUpper(code)]
	return s, ok
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.readTimeout", 30*time.Second)
	v.SetDefault("service.writeTimeout", 30*time.Second)
	v.SetDefault("cache.driver", string(MemoryCache))
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("externalClients.ecos.baseUrl", "https://ecos.bok.or.kr/api/StatisticSearch")
	v.SetDefault("externalClients.ecos.timeout", 8*time.Second)
	v.SetDefault("externalClients.ecos.maxLookbackDays", 10)
	v.SetDefault("externalClients.ecos.series", map[string]interface{}{
		"usd":  map[string]interface{}{"statCode": "731Y001", "frequency": "D", "itemCode": "0000001"},
		"jpy":  map[string]interface{}{"statCode": "731Y001", "frequency": "D", "itemCode": "0000002"},
		"cny":  map[string]interface{}{"statCode": "731Y001", "frequency": "D", "itemCode": "0000053"},
		"gold": map[string]interface{}{"statCode": "902Y003", "frequency": "M", "itemCode": "010102"},
	})
	v.SetDefault("aws.region", "ap-northeast-2")
	v.SetDefault("logging.level", "info")
	v.SetDefault("valuation.rateAggregation", string(LastRate))
	v.SetDefault("valuation.krwUnitValue", 10000)
	v.SetDefault("valuation.timezone", "Asia/Seoul")
	v.SetDefault("worker.warmSpec", "@every 55m")
}

// LoadConfig reads appsettings.yaml from path, overlays appsettings.<env>.yaml when env
// is set, and lets environment variables override both.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to merge %s settings: %w", env, err)
		}
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values the rest of the service relies on.
func (c *Config) Validate() error {
	switch c.Service.Type {
	case API, WORKER:
	default:
		return fmt.Errorf("invalid service type %q", c.Service.Type)
	}
	switch c.Cache.Driver {
	case MemoryCache, RedisCache:
	default:
		return fmt.Errorf("invalid cache driver %q", c.Cache.Driver)
	}
	// the worker only fills the cache, so it has to be one the API processes can read
	if c.Service.Type == WORKER && c.Cache.Driver != RedisCache {
		return fmt.Errorf("service type %s requires cache driver %q, got %q", WORKER, RedisCache, c.Cache.Driver)
	}
	switch c.Valuation.RateAggregation {
	case LastRate, WeightedRate:
	default:
		return fmt.Errorf("invalid rate aggregation %q", c.Valuation.RateAggregation)
	}
	if c.ExternalClients.ECOS.MaxLookbackDays < 0 {
		return fmt.Errorf("maxLookbackDays must not be negative")
	}
	for _, code := range []string{"USD", "JPY", "CNY", "GOLD"} {
		if _, ok := c.ExternalClients.ECOS.SeriesFor(code); !ok {
			return fmt.Errorf("missing series configuration for %s", code)
		}
	}
	return nil
}

// Location returns the timezone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Valuation.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
