package config

import (
	"os"
	"strconv"
)

type Config struct {
	Sheet   SheetConfig
	Service ServiceConfig
	MQTT    MQTTConfig
	Agent   AgentConfig
}

type SheetConfig struct {
	CSVURL      string // URL экспорта опубликованной таблицы в CSV
	RecordLimit int    // сколько последних записей забирать
}

type ServiceConfig struct {
	URL       string // базовый URL churn-service
	JWTSecret string // общий секрет для сервисного токена, пусто = без авторизации
	Timeout   int    // таймаут запроса в секундах
}

type MQTTConfig struct {
	Broker   string // пусто = алерты по MQTT выключены
	ClientID string
	Topic    string
	QoS      int
}

type AgentConfig struct {
	IntervalSec    int     // период опроса таблицы
	ChurnThreshold float64 // вероятность, начиная с которой клиент считается уходящим
	AlertRate      float64 // доля уходящих (в процентах), при которой публикуется алерт
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Sheet: SheetConfig{
			CSVURL:      getEnv("SHEET_CSV_URL", ""),
			RecordLimit: getEnvAsInt("SHEET_RECORD_LIMIT", 50),
		},
		Service: ServiceConfig{
			URL:       getEnv("CHURN_SERVICE_URL", "http://localhost:8000"),
			JWTSecret: getEnv("JWT_SECRET", ""),
			Timeout:   getEnvAsInt("SERVICE_TIMEOUT_SEC", 30),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", ""),
			ClientID: getEnv("MQTT_CLIENT_ID", "churn-agent"),
			Topic:    getEnv("MQTT_ALERT_TOPIC", "churn/alerts"),
			QoS:      getEnvAsInt("MQTT_QOS", 1),
		},
		Agent: AgentConfig{
			IntervalSec:    getEnvAsInt("POLL_INTERVAL_SEC", 300),
			ChurnThreshold: getEnvAsFloat("CHURN_THRESHOLD", 0.5),
			AlertRate:      getEnvAsFloat("ALERT_CHURN_RATE", 30.0),
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

// getEnvAsFloat получает переменную окружения как float64
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
