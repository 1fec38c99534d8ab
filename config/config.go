package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string              `mapstructure:"port"`
	APIKey              string              `mapstructure:"API_KEY"`
	Chunking            ChunkingConfig      `mapstructure:"chunking"`
	Embedding           EmbeddingConfig     `mapstructure:"embedding"`
	WeaviateStoreConfig WeaviateStoreConfig `mapstructure:"weaviate_store_config"`
}

type ChunkingConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	MaxWords         int  `mapstructure:"max_words"`
	OverlapSentences int  `mapstructure:"overlap_sentences"`
}

// EmbeddingConfig selects the embedding provider: "service" reaches the
// in-house embeddings HTTP service at Endpoint, "openai" reaches an
// OpenAI-compatible API at BaseURL with Model.
type EmbeddingConfig struct {
	Provider     string `mapstructure:"provider"`
	Endpoint     string `mapstructure:"endpoint"`
	BaseURL      string `mapstructure:"base_url"`
	Model        string `mapstructure:"model"`
	VectorSize   int    `mapstructure:"vector_size"`
	OpenAIAPIKey string `mapstructure:"OPENAI_API_KEY"`
}

type WeaviateStoreConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("port", "8000")
	v.SetDefault("chunking.enabled", true)
	v.SetDefault("chunking.max_words", 300)
	v.SetDefault("chunking.overlap_sentences", 2)
	v.SetDefault("embedding.provider", "service")
	v.SetDefault("embedding.vector_size", 384)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Bind environment variables for secrets
	v.BindEnv("API_KEY")
	v.BindEnv("embedding.OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("weaviate_store_config.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
