package config

import (
	"os"
	"strconv"
	"strings"

	"resume-intake/internal/domain"
)

// Default model candidates, tried in order.
var defaultAIModels = []string{"gemini-1.5-pro", "gemini-pro", "gemini-pro-vision"}

// Local frontends allowed by default. Credentialed CORS needs explicit origins.
var defaultAllowedOrigins = []string{
	"http://localhost:5173", // SvelteKit dev server
	"http://localhost:4173", // SvelteKit preview
	"http://localhost:3000", // Alternative dev port
}

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort          string
	MaxFileSize         int64
	LogLevel            string
	TempDir             string
	PDFEngine           string
	AIProvider          string
	AIModels            []string
	GenAIAPIKey         string
	GoogleCloudProject  string
	GoogleCloudLocation string
	OpenAIAPIKey        string
	OpenAIBaseURL       string
	DatabaseURL         string
	SupabaseURL         string
	SupabaseKey         string
	RabbitMQURL         string
	AllowedOrigins      []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	genAIKey := getEnvOrDefault("GENAI_API_KEY", "")

	defaultProvider := "none"
	if genAIKey != "" {
		defaultProvider = "gemini"
	}

	return &AppConfig{
		// PaaS platforms provide the listening port via PORT.
		ServerPort:          getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:         getEnvInt64OrDefault("MAX_FILE_SIZE", 5*1024*1024), // 5MB default
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		TempDir:             getEnvOrDefault("TEMP_DIR", os.TempDir()),
		PDFEngine:           strings.ToLower(getEnvOrDefault("PDF_ENGINE", "fitz")),
		AIProvider:          strings.ToLower(getEnvOrDefault("AI_PROVIDER", defaultProvider)),
		AIModels:            getEnvListOrDefault("AI_MODELS", defaultAIModels),
		GenAIAPIKey:         genAIKey,
		GoogleCloudProject:  getEnvOrDefault("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation: getEnvOrDefault("GOOGLE_CLOUD_LOCATION", "us-central1"),
		OpenAIAPIKey:        getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:       getEnvOrDefault("OPENAI_BASE_URL", ""),
		DatabaseURL:         getEnvOrDefault("DATABASE_URL", ""),
		SupabaseURL:         getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:         getEnvOrDefault("SUPABASE_SERVICE_KEY", ""),
		RabbitMQURL:         getEnvOrDefault("RABBITMQ_URL", ""),
		AllowedOrigins:      getEnvListOrDefault("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetTempDir returns the directory used for transient PDF files
func (c *AppConfig) GetTempDir() string {
	return c.TempDir
}

// GetPDFEngine returns the configured PDF page engine name
func (c *AppConfig) GetPDFEngine() string {
	return c.PDFEngine
}

// GetAIProvider returns the generative model provider name
func (c *AppConfig) GetAIProvider() string {
	return c.AIProvider
}

// GetAIModels returns the ordered model candidates
func (c *AppConfig) GetAIModels() []string {
	return c.AIModels
}

func (c *AppConfig) GetGenAIAPIKey() string {
	return c.GenAIAPIKey
}

func (c *AppConfig) GetGoogleCloudProject() string {
	return c.GoogleCloudProject
}

func (c *AppConfig) GetGoogleCloudLocation() string {
	return c.GoogleCloudLocation
}

func (c *AppConfig) GetOpenAIAPIKey() string {
	return c.OpenAIAPIKey
}

func (c *AppConfig) GetOpenAIBaseURL() string {
	return c.OpenAIBaseURL
}

// GetDatabaseURL returns the Postgres connection string
func (c *AppConfig) GetDatabaseURL() string {
	return c.DatabaseURL
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase service key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetRabbitMQURL returns the broker URL; empty disables event publishing
func (c *AppConfig) GetRabbitMQURL() string {
	return c.RabbitMQURL
}

// GetAllowedOrigins returns the CORS allowed origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return items
}
