package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Gemini     GeminiConfig
	Assembly   AssemblyAIConfig
	Extraction ExtractionConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_minutes"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration for the quick-summary cache
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
}

// StorageConfig holds MinIO object storage configuration for uploaded recordings
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-recordings"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:""`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// GeminiConfig holds configuration for the generative-AI extraction backend
type GeminiConfig struct {
	APIKey  string `envconfig:"GEMINI_API_KEY" default:""`
	BaseURL string `envconfig:"GEMINI_API_URL" default:"https://generativelanguage.googleapis.com"`
	Model   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
}

// AssemblyAIConfig holds configuration for speech-to-text transcription
type AssemblyAIConfig struct {
	APIKey         string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	WebhookBaseURL string `envconfig:"ASSEMBLYAI_WEBHOOK_BASE_URL" default:""`
	WebhookSecret  string `envconfig:"ASSEMBLYAI_WEBHOOK_SECRET" default:""`
}

// ExtractionConfig holds tunables for the extraction pipeline
type ExtractionConfig struct {
	// MaxTranscriptChars bounds transcript length before any backend call.
	MaxTranscriptChars int `envconfig:"EXTRACTION_MAX_TRANSCRIPT_CHARS" default:"20000"`
	// QuickSummaryLimit clamps the transcript excerpt sent for a quick summary.
	QuickSummaryLimit int `envconfig:"EXTRACTION_QUICK_SUMMARY_LIMIT" default:"2000"`
	// QuickSummaryCacheTTL is in seconds.
	QuickSummaryCacheTTL int `envconfig:"EXTRACTION_QUICK_SUMMARY_CACHE_TTL" default:"3600"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Extraction.MaxTranscriptChars <= 0 {
		return fmt.Errorf("EXTRACTION_MAX_TRANSCRIPT_CHARS must be positive")
	}
	if c.Extraction.QuickSummaryLimit <= 0 {
		return fmt.Errorf("EXTRACTION_QUICK_SUMMARY_LIMIT must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
