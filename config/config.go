package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendWeaviate = "weaviate"
	BackendMemory   = "memory"

	DefaultEmbeddingModel = "text-embedding-3-small"
)

type Config struct {
	Port               string `mapstructure:"PORT"`
	OpenAIAPIKey       string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL      string `mapstructure:"OPENAI_BASE_URL"`
	GeminiAPIKey       string `mapstructure:"GEMINI_API_KEY"`
	EmbeddingProvider  string `mapstructure:"EMBEDDING_PROVIDER"`
	EmbeddingModelName string `mapstructure:"EMBEDDING_MODEL_NAME"`

	StoreBackend           string `mapstructure:"STORE_BACKEND"`
	StoreTable             string `mapstructure:"STORE_TABLE"`
	SupabaseURL            string `mapstructure:"SUPABASE_URL"`
	SupabaseServiceRoleKey string `mapstructure:"SUPABASE_SERVICE_ROLE_KEY"`
	DatabaseURL            string `mapstructure:"DATABASE_URL"`
	WeaviateHost           string `mapstructure:"WEAVIATE_HOST"`
	WeaviateAPIKey         string `mapstructure:"WEAVIATE_APIKEY"`

	MaxUploadBytes             int64         `mapstructure:"MAX_UPLOAD_BYTES"`
	ExternalCallTimeout        time.Duration `mapstructure:"EXTERNAL_CALL_TIMEOUT"`
	EmbeddingMaxRetries        int           `mapstructure:"EMBEDDING_MAX_RETRIES"`
	EmbeddingRequestsPerSecond float64       `mapstructure:"EMBEDDING_REQUESTS_PER_SECOND"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]any{
	"PORT":                          "8000",
	"OPENAI_API_KEY":                "",
	"OPENAI_BASE_URL":               "",
	"GEMINI_API_KEY":                "",
	"EMBEDDING_PROVIDER":            ProviderOpenAI,
	"EMBEDDING_MODEL_NAME":          DefaultEmbeddingModel,
	"STORE_BACKEND":                 BackendSupabase,
	"STORE_TABLE":                   "pdf",
	"SUPABASE_URL":                  "",
	"SUPABASE_SERVICE_ROLE_KEY":     "",
	"DATABASE_URL":                  "",
	"WEAVIATE_HOST":                 "",
	"WEAVIATE_APIKEY":               "",
	"MAX_UPLOAD_BYTES":              int64(10 << 20),
	"EXTERNAL_CALL_TIMEOUT":         30 * time.Second,
	"EMBEDDING_MAX_RETRIES":         3,
	"EMBEDDING_REQUESTS_PER_SECOND": 5.0,
	"LOG_LEVEL":                     "info",
	"LOG_FORMAT":                    "json",
}

// LoadConfig reads configuration from the environment and, when configPath is
// not empty, from a YAML file. Environment variables win over the file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.EmbeddingProvider = strings.ToLower(strings.TrimSpace(config.EmbeddingProvider))
	config.StoreBackend = strings.ToLower(strings.TrimSpace(config.StoreBackend))
	if config.EmbeddingModelName == "" {
		config.EmbeddingModelName = DefaultEmbeddingModel
	}

	return &config, nil
}

// Validate reports every required setting missing for the selected embedding
// provider and store backend.
func (c *Config) Validate() error {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	switch c.EmbeddingProvider {
	case ProviderOpenAI:
		require(EnvOpenAIAPIKey, c.OpenAIAPIKey)
	case ProviderGemini:
		require("GEMINI_API_KEY", c.GeminiAPIKey)
	default:
		return fmt.Errorf("unsupported embedding provider: %q", c.EmbeddingProvider)
	}

	switch c.StoreBackend {
	case BackendSupabase:
		require(EnvSupabaseURL, c.SupabaseURL)
		require(EnvSupabaseServiceRoleKey, c.SupabaseServiceRoleKey)
	case BackendPostgres:
		require("DATABASE_URL", c.DatabaseURL)
	case BackendWeaviate:
		require("WEAVIATE_HOST", c.WeaviateHost)
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported store backend: %q", c.StoreBackend)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	if c.ExternalCallTimeout <= 0 {
		return errors.New("EXTERNAL_CALL_TIMEOUT must be positive")
	}
	return nil
}
