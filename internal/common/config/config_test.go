package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-nlu/internal/nlu/pipeline"
)

const sampleYAML = `
app:
  name: commerce-nlu
camunda:
  broker_address: localhost:26500
workers:
  parse-command:
    enabled: true
nlu:
  search_min_score: 0.7
  default_threshold: 8
  fuzzy:
    long_floor: 0.62
catalog:
  sources: [yaml]
  yaml_path: configs/products.yaml
cache:
  enabled: true
`

// ==========================
// Loading
// ==========================

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "commerce-nlu", cfg.App.Name)
	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, "product_aliases", cfg.Catalog.PostgresTable)
	assert.Equal(t, "products", cfg.Catalog.ESIndex)
	assert.Equal(t, 3600, cfg.Cache.TTL)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)

	w := GetWorkerConfig(cfg, "parse-command")
	assert.True(t, w.Enabled)
	assert.Equal(t, 3, w.MaxRetries)
	assert.Equal(t, 30000, w.Timeout)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing broker", func(c *Config) { c.Camunda.BrokerAddress = "" }, "camunda.broker_address"},
		{"postgres source without host", func(c *Config) { c.Catalog.Sources = []string{"postgres"} }, "database.postgres"},
		{"es source without address", func(c *Config) { c.Catalog.Sources = []string{"elasticsearch"} }, "elasticsearch"},
		{"unknown source", func(c *Config) { c.Catalog.Sources = []string{"csv"} }, "unknown catalog source"},
		{"redis cache without address", func(c *Config) { c.Cache.Enabled, c.Cache.UseRedis = true, true }, "database.redis.address"},
		{"feedback without topic", func(c *Config) { c.Feedback.Enabled = true }, "feedback.topic_arn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Camunda: CamundaConfig{BrokerAddress: "localhost:26500"}}
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Parser options
// ==========================

func TestNLUConfig_PipelineOptions(t *testing.T) {
	var n NLUConfig
	n.SearchMinScore = 0.7
	n.DefaultThreshold = 8
	n.Fuzzy.LongFloor = 0.62
	n.Language.HindiDominantRatio = 0.4

	opts := n.PipelineOptions()
	defaults := pipeline.DefaultOptions()

	assert.Equal(t, 0.7, opts.Entities.SearchMinScore)
	assert.Equal(t, 8, opts.Entities.DefaultThreshold)
	assert.Equal(t, "kg", opts.Entities.DefaultUnit)
	assert.Equal(t, 0.62, opts.Fuzzy.LongFloor)
	assert.Equal(t, defaults.Fuzzy.ShortFloor, opts.Fuzzy.ShortFloor)
	assert.Equal(t, 0.4, opts.Language.HindiDominantRatio)
	assert.Equal(t, defaults.Language.MixedScriptMinRatio, opts.Language.MixedScriptMinRatio)
}

func TestNLUConfig_ZeroValueKeepsDefaults(t *testing.T) {
	assert.Equal(t, pipeline.DefaultOptions().Fuzzy, NLUConfig{}.PipelineOptions().Fuzzy)
}

func TestLoadFromFile_Environment(t *testing.T) {
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("NLU_TEST_BROKER", "zeebe:26500")
	t.Setenv("FEEDBACK_TOPIC_ARN", "arn:aws:sns:ap-south-1:000000000000:nlu-feedback")

	yaml := sampleYAML + "  ttl: 3600\nfeedback:\n  enabled: true\n"
	yaml = strings.Replace(yaml, "localhost:26500", "${NLU_TEST_BROKER}", 1)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 120, cfg.Cache.TTL)
	assert.Equal(t, "arn:aws:sns:ap-south-1:000000000000:nlu-feedback", cfg.Feedback.TopicARN)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
