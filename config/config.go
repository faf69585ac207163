package config

import (
	"os"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	AWS      AWSConfig
	Azure    AzureConfig
	Bedrock  BedrockConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig holds the optional bearer-token secret. When Secret is
// empty the API is served unauthenticated.
type AuthConfig struct {
	Secret string
}

type AWSConfig struct {
	AccessKey string
	SecretKey string
	Region    string
}

type AzureConfig struct {
	TenantID       string
	ClientID       string
	ClientSecret   string
	StorageAccount string
	ContainerName  string
}

type BedrockConfig struct {
	DefaultModelID string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8081"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			User:     getEnv("PG_USER", "postgres"),
			Password: getEnv("PG_PASSWORD", "postgres"),
			DBName:   getEnv("PG_DATABASE", "warehouse"),
			SSLMode:  getEnv("PG_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			Secret: getEnv("API_JWT_SECRET", ""),
		},
		AWS: AWSConfig{
			AccessKey: getEnv("AWS_ACCESS_KEY", os.Getenv("AWS_ACCESS_KEY_ID")),
			SecretKey: getEnv("AWS_SECRET_KEY", os.Getenv("AWS_SECRET_ACCESS_KEY")),
			Region:    getEnv("AWS_REGION", "us-east-1"),
		},
		Azure: AzureConfig{
			TenantID:       getEnv("AZURE_TENANT_ID", ""),
			ClientID:       getEnv("AZURE_CLIENT_ID", ""),
			ClientSecret:   getEnv("AZURE_CLIENT_SECRET", ""),
			StorageAccount: getEnv("AZURE_STORAGE_ACCOUNT_NAME", ""),
			ContainerName:  getEnv("AZURE_CONTAINER_NAME", ""),
		},
		Bedrock: BedrockConfig{
			DefaultModelID: getEnv("BEDROCK_MODEL_ID", "anthropic.claude-3-5-haiku-20241022-v1:0"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
