package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"seoscout/pkg/classify"
)

// Config is the root configuration.
type Config struct {
	Domain      string             `yaml:"domain"`
	Competitors []string           `yaml:"competitors"`
	Profiles    []classify.Profile `yaml:"profiles"`
	Database    DatabaseConfig     `yaml:"database"`
	Embedding   EmbeddingConfig    `yaml:"embedding"`
	Cluster     ClusterConfig      `yaml:"cluster"`
	SERP        SERPConfig         `yaml:"serp"`
	Trends      TrendsConfig       `yaml:"trends"`
	Outline     OutlineConfig      `yaml:"outline"`
	Report      ReportConfig       `yaml:"report"`
	Log         LogConfig          `yaml:"log"`
}

// DatabaseConfig configures SQLite storage for ranking history.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig selects the embedding strategy. "semantic" needs an
// endpoint; "frequency" is the self-contained TF-IDF fallback.
type EmbeddingConfig struct {
	Strategy string `yaml:"strategy"` // "semantic" or "frequency"
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
}

// ClusterConfig configures the clustering engine defaults.
type ClusterConfig struct {
	Method              string  `yaml:"method"` // kmeans, dbscan, graph
	Clusters            int     `yaml:"clusters"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// SERPConfig configures the SERP/keyword-data API client.
type SERPConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKey     string `yaml:"api_key"`
	NumResults int    `yaml:"num_results"`
	CacheSize  int    `yaml:"cache_size"`
}

// TrendsConfig configures trends RSS feeds and default seed keywords.
type TrendsConfig struct {
	Feeds []FeedItem `yaml:"feeds"`
	Seeds []string   `yaml:"seeds"`
}

// FeedItem is a single trends feed entry.
type FeedItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// OutlineConfig configures the LLM-backed content outline generator.
type OutlineConfig struct {
	Provider    string `yaml:"provider"` // "openai" or "anthropic"
	Model       string `yaml:"model"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"` // custom endpoint (optional)
	TargetWords int    `yaml:"target_words"`
}

// ReportConfig configures report shaping defaults.
type ReportConfig struct {
	Metric string `yaml:"metric"`
	TopN   int    `yaml:"top_n"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./seoscout.db"},
		Embedding: EmbeddingConfig{
			Strategy: "frequency",
			Model:    "nomic-embed-text",
		},
		Cluster: ClusterConfig{
			Method:              "kmeans",
			SimilarityThreshold: 0.7,
		},
		SERP: SERPConfig{
			NumResults: 10,
			CacheSize:  256,
		},
		Trends: TrendsConfig{
			Feeds: []FeedItem{
				{Name: "Google Trends US", URL: "https://trends.google.com/trending/rss?geo=US"},
			},
		},
		Outline: OutlineConfig{
			Provider:    "openai",
			TargetWords: 1500,
		},
		Report: ReportConfig{
			Metric: "volume",
			TopN:   5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SEOSCOUT_DOMAIN"); v != "" {
		cfg.Domain = v
	}
	if v := os.Getenv("SEOSCOUT_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SERP_API_KEY"); v != "" {
		cfg.SERP.APIKey = v
	}
	if v := os.Getenv("SERP_API_ENDPOINT"); v != "" {
		cfg.SERP.Endpoint = v
	}
	if v := os.Getenv("EMBEDDING_ENDPOINT"); v != "" {
		cfg.Embedding.Endpoint = v
		cfg.Embedding.Strategy = "semantic"
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		cfg.Embedding.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Outline.APIKey = v
	}
}
