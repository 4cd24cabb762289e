package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	GCPProject      string
	StorageBucket   string
	StorageDriver   string
	CredentialsPath string
	Environment     string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GCPProject:      getEnv("GCP_PROJECT_ID", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		StorageDriver:   getEnv("STORAGE_DRIVER", "firestore"),
		CredentialsPath: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
