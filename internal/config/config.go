package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":8080"`

	// DatabaseURL is optional: when empty, translation history is not
	// recorded.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	BilingualEndpoint    string `envconfig:"BILINGUAL_ENDPOINT" default:"http://127.0.0.1:8845/v1"`
	BilingualModel       string `envconfig:"BILINGUAL_MODEL" default:"ai4bharat/IndicTrans2-1B"`
	BilingualSizeMB      int    `envconfig:"BILINGUAL_SIZE_MB" default:"4500"`
	MultilingualEndpoint string `envconfig:"MULTILINGUAL_ENDPOINT" default:"http://127.0.0.1:8846/v1"`
	MultilingualModel    string `envconfig:"MULTILINGUAL_MODEL" default:"facebook/nllb-200-distilled-600M"`
	MultilingualSizeMB   int    `envconfig:"MULTILINGUAL_SIZE_MB" default:"2500"`
	MemoryBudgetMB       int    `envconfig:"MODEL_MEMORY_BUDGET_MB" default:"8192"`

	MaxChunkChars       int `envconfig:"MAX_CHUNK_CHARS" default:"600"`
	SingleShotMaxChars  int `envconfig:"SINGLE_SHOT_MAX_CHARS" default:"800"`
	ChunkTimeoutSeconds int `envconfig:"CHUNK_TIMEOUT_SECONDS" default:"120"`
	TargetConcurrency   int `envconfig:"TARGET_CONCURRENCY" default:"4"`

	SkipMultilingualForIndic bool `envconfig:"SKIP_MULTILINGUAL_FOR_INDIC" default:"true"`

	QualityLengthWeight    float64 `envconfig:"QUALITY_LENGTH_WEIGHT" default:"0.2"`
	QualityCharacterWeight float64 `envconfig:"QUALITY_CHARACTER_WEIGHT" default:"0.2"`
	QualityScriptWeight    float64 `envconfig:"QUALITY_SCRIPT_WEIGHT" default:"0.3"`
	QualitySemanticWeight  float64 `envconfig:"QUALITY_SEMANTIC_WEIGHT" default:"0.3"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("LISTEN_ADDR is required")
	}
	if strings.TrimSpace(c.BilingualEndpoint) == "" {
		return fmt.Errorf("BILINGUAL_ENDPOINT is required")
	}
	if strings.TrimSpace(c.MultilingualEndpoint) == "" {
		return fmt.Errorf("MULTILINGUAL_ENDPOINT is required")
	}
	if c.MaxChunkChars < 100 {
		return fmt.Errorf("MAX_CHUNK_CHARS must be >= 100")
	}
	if c.SingleShotMaxChars < c.MaxChunkChars {
		return fmt.Errorf("SINGLE_SHOT_MAX_CHARS (%d) cannot be below MAX_CHUNK_CHARS (%d)",
			c.SingleShotMaxChars, c.MaxChunkChars)
	}
	if c.ChunkTimeoutSeconds < 1 {
		return fmt.Errorf("CHUNK_TIMEOUT_SECONDS must be >= 1")
	}
	if c.TargetConcurrency < 1 {
		return fmt.Errorf("TARGET_CONCURRENCY must be >= 1")
	}
	if c.MemoryBudgetMB < 1 {
		return fmt.Errorf("MODEL_MEMORY_BUDGET_MB must be >= 1")
	}
	for _, weight := range []float64{
		c.QualityLengthWeight, c.QualityCharacterWeight,
		c.QualityScriptWeight, c.QualitySemanticWeight,
	} {
		if weight < 0 || weight > 1 {
			return fmt.Errorf("quality weights must be within [0, 1]")
		}
	}
	return nil
}

// HistoryEnabled reports whether translation history persistence is
// configured.
func (c *Config) HistoryEnabled() bool {
	return c != nil && strings.TrimSpace(c.DatabaseURL) != ""
}
