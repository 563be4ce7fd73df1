package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Model    ModelConfig
	Pipeline PipelineConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port string
	Mode string // gin mode: debug | release
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ModelConfig struct {
	ServiceURL string // URL развернутого модельного сервиса
	Timeout    int    // таймаут запроса в секундах
}

type PipelineConfig struct {
	SchemaPath            string // путь к артефакту схемы модели
	MaxBatchSize          int    // максимальное число записей в одном запросе
	UnknownCategoryPolicy string // fail | reference
}

type AuthConfig struct {
	JWTSecret string // если пусто — API открыт без авторизации
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("HTTP_PORT", "8000"),
			Mode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "churn_user"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "churn_db"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Model: ModelConfig{
			ServiceURL: getEnv("MODEL_SERVICE_URL", "http://localhost:8501"),
			Timeout:    getEnvAsInt("MODEL_TIMEOUT_SEC", 30),
		},
		Pipeline: PipelineConfig{
			SchemaPath:            getEnv("SCHEMA_PATH", "artifacts/churn_schema.json"),
			MaxBatchSize:          getEnvAsInt("MAX_BATCH_SIZE", 500),
			UnknownCategoryPolicy: getEnv("UNKNOWN_CATEGORY_POLICY", "fail"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt получает переменную окружения как int
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
