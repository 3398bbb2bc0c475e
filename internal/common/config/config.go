// internal/common/config/config.go
package config

import (
	"fmt"
	"time"

	"commerce-nlu/internal/nlu/pipeline"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig               `mapstructure:"app"`
	Camunda  CamundaConfig           `mapstructure:"camunda"`
	Database DatabaseConfig          `mapstructure:"database"`
	Workers  map[string]WorkerConfig `mapstructure:"workers"`
	Logging  LoggingConfig           `mapstructure:"logging"`
	NLU      NLUConfig               `mapstructure:"nlu"`
	Catalog  CatalogConfig           `mapstructure:"catalog"`
	Cache    CacheConfig             `mapstructure:"cache"`
	Feedback FeedbackConfig          `mapstructure:"feedback"`
	Registry RegistryConfig          `mapstructure:"registry"`
	Metrics  MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// --- Parser Configuration ---

// NLUConfig exposes every parser threshold. Zero values fall back to the
// parser defaults.
type NLUConfig struct {
	Fuzzy struct {
		ShortMaxLen    int     `mapstructure:"short_max_len"`
		MediumMaxLen   int     `mapstructure:"medium_max_len"`
		ShortDistance  int     `mapstructure:"short_distance"`
		MediumDistance int     `mapstructure:"medium_distance"`
		LongDistance   int     `mapstructure:"long_distance"`
		ShortRatio     float64 `mapstructure:"short_ratio"`
		MediumRatio    float64 `mapstructure:"medium_ratio"`
		LongRatio      float64 `mapstructure:"long_ratio"`
		ShortFloor     float64 `mapstructure:"short_floor"`
		MediumFloor    float64 `mapstructure:"medium_floor"`
		LongFloor      float64 `mapstructure:"long_floor"`
	} `mapstructure:"fuzzy"`

	Language struct {
		MixedScriptMinRatio         float64 `mapstructure:"mixed_script_min_ratio"`
		HindiDominantRatio          float64 `mapstructure:"hindi_dominant_ratio"`
		EnglishDominantRatio        float64 `mapstructure:"english_dominant_ratio"`
		TransliterationRatio        float64 `mapstructure:"transliteration_ratio"`
		TransliterationPrimaryRatio float64 `mapstructure:"transliteration_primary_ratio"`
	} `mapstructure:"language"`

	SearchMinScore   float64 `mapstructure:"search_min_score"`
	DefaultThreshold int     `mapstructure:"default_threshold"`
	DefaultUnit      string  `mapstructure:"default_unit"`
}

// PipelineOptions overlays the configured values on the parser defaults.
func (n NLUConfig) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()

	f := &opts.Fuzzy
	setInt(&f.ShortMaxLen, n.Fuzzy.ShortMaxLen)
	setInt(&f.MediumMaxLen, n.Fuzzy.MediumMaxLen)
	setInt(&f.ShortDistance, n.Fuzzy.ShortDistance)
	setInt(&f.MediumDistance, n.Fuzzy.MediumDistance)
	setInt(&f.LongDistance, n.Fuzzy.LongDistance)
	setFloat(&f.ShortRatio, n.Fuzzy.ShortRatio)
	setFloat(&f.MediumRatio, n.Fuzzy.MediumRatio)
	setFloat(&f.LongRatio, n.Fuzzy.LongRatio)
	setFloat(&f.ShortFloor, n.Fuzzy.ShortFloor)
	setFloat(&f.MediumFloor, n.Fuzzy.MediumFloor)
	setFloat(&f.LongFloor, n.Fuzzy.LongFloor)

	l := &opts.Language
	setFloat(&l.MixedScriptMinRatio, n.Language.MixedScriptMinRatio)
	setFloat(&l.HindiDominantRatio, n.Language.HindiDominantRatio)
	setFloat(&l.EnglishDominantRatio, n.Language.EnglishDominantRatio)
	setFloat(&l.TransliterationRatio, n.Language.TransliterationRatio)
	setFloat(&l.TransliterationPrimaryRatio, n.Language.TransliterationPrimaryRatio)

	setFloat(&opts.Entities.SearchMinScore, n.SearchMinScore)
	setInt(&opts.Entities.DefaultThreshold, n.DefaultThreshold)
	if n.DefaultUnit != "" {
		opts.Entities.DefaultUnit = n.DefaultUnit
	}
	return opts
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}

// CatalogConfig lists where extra product names are loaded from at
// startup. Sources are merged in the order given.
type CatalogConfig struct {
	Sources       []string `mapstructure:"sources"` // yaml, postgres, elasticsearch
	YAMLPath      string   `mapstructure:"yaml_path"`
	PostgresTable string   `mapstructure:"postgres_table"`
	ESIndex       string   `mapstructure:"es_index"`
	Strict        bool     `mapstructure:"strict"`
	Timeout       int      `mapstructure:"timeout"` // milliseconds
}

// CacheConfig holds settings for the parse result cache.
type CacheConfig struct {
	Enabled   bool  `mapstructure:"enabled"`
	UseRedis  bool  `mapstructure:"use_redis"`
	TTL       int   `mapstructure:"ttl"` // seconds
	L1MaxCost int64 `mapstructure:"l1_max_cost"`
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// FeedbackConfig controls publishing of unrecognized commands.
type FeedbackConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	TopicARN string `mapstructure:"topic_arn"`
	Region   string `mapstructure:"region"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}
