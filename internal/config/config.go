package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	DBHost             string
	DBPort             int
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	DBTimezone         string
	DBMaxIdleConns     int
	DBMaxOpenConns     int
	ServerPort         int
	ServerHost         string
	ServerFramework    string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	ShutdownTimeout    time.Duration
	AppEnv             string
	LogLevel           string
	AppName            string
	CorsAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	SwaggerHost        string
	SwaggerBasePath    string
	SwaggerSchemes     []string

	ForecastDays         int
	ForecastMaxDays      int
	ForecastStrategy     string
	ForecastRetrainEvery int
	ModelStore           string
	ModelDir             string
	ModelKey             string
}

// LoadConfig loads configuration from .env file or environment variables.
func LoadConfig(envFile ...string) (*AppConfig, error) {
	if len(envFile) > 0 {
		if _, err := os.Stat(envFile[0]); err == nil {
			err := godotenv.Load(envFile[0])
			if err != nil {
				log.Warn().Msgf("Could not load .env file: %v. Using environment variables or defaults.", err)
			}
		} else {
			log.Warn().Msgf("Specified .env file %s not found. Using environment variables or defaults.", envFile[0])
		}
	} else {
		if _, err := os.Stat("config.env"); err == nil {
			err := godotenv.Load("config.env")
			if err != nil {
				log.Warn().Msgf("Could not load default config.env file: %v. Using environment variables or defaults.", err)
			}
		}
	}

	cfg := &AppConfig{
		DBHost:             getStringEnv("DB_HOST", "localhost"),
		DBPort:             getIntEnv("DB_PORT", 5432),
		DBUser:             getStringEnv("DB_USER", "postgres"),
		DBPassword:         getStringEnv("DB_PASSWORD", "password"),
		DBName:             getStringEnv("DB_NAME", "daily_mood_tracker"),
		DBSslMode:          getStringEnv("DB_SSL_MODE", "disable"),
		DBTimezone:         getStringEnv("DB_TIMEZONE", "UTC"),
		DBMaxIdleConns:     getIntEnv("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:     getIntEnv("DB_MAX_OPEN_CONNS", 100),
		ServerPort:         getIntEnv("SERVER_PORT", 8080),
		ServerHost:         getStringEnv("SERVER_HOST", "0.0.0.0"),
		ServerFramework:    strings.ToLower(getStringEnv("SERVER_FRAMEWORK", "fiber")),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", "15s"),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", "30s"),
		ServerIdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", "60s"),
		ShutdownTimeout:    getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", "5s"),
		AppEnv:             strings.ToLower(getStringEnv("APP_ENV", "development")),
		LogLevel:           strings.ToLower(getStringEnv("LOG_LEVEL", "info")),
		AppName:            getStringEnv("APP_NAME", "Daily Mood Tracker"),
		CorsAllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", "*"),
		RateLimitPerSecond: getFloatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getIntEnv("RATE_LIMIT_BURST", 20),
		SwaggerHost:        getStringEnv("SWAGGER_HOST", "localhost:8080"),
		SwaggerBasePath:    getStringEnv("SWAGGER_BASE_PATH", "/"),
		SwaggerSchemes:     getSliceEnv("SWAGGER_SCHEMES", "http,https"),

		ForecastDays:         getIntEnv("FORECAST_DAYS", 7),
		ForecastMaxDays:      getIntEnv("FORECAST_MAX_DAYS", 30),
		ForecastStrategy:     strings.ToLower(getStringEnv("FORECAST_STRATEGY", "lag1")),
		ForecastRetrainEvery: getIntEnv("FORECAST_RETRAIN_EVERY", 0),
		ModelStore:           strings.ToLower(getStringEnv("MODEL_STORE", "postgres")),
		ModelDir:             getStringEnv("MODEL_DIR", "./models"),
		ModelKey:             getStringEnv("MODEL_KEY", "mood_predictor"),
	}

	if cfg.ServerFramework != "fiber" && cfg.ServerFramework != "gin" {
		log.Warn().Msgf("Invalid SERVER_FRAMEWORK '%s'. Defaulting to 'fiber'.", cfg.ServerFramework)
		cfg.ServerFramework = "fiber"
	}

	validAppEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validAppEnvs[cfg.AppEnv] {
		log.Warn().Msgf("Invalid APP_ENV '%s'. Defaulting to 'development'.", cfg.AppEnv)
		cfg.AppEnv = "development"
	}

	if cfg.ForecastStrategy != "lag1" && cfg.ForecastStrategy != "recompute" {
		log.Warn().Msgf("Invalid FORECAST_STRATEGY '%s'. Defaulting to 'lag1'.", cfg.ForecastStrategy)
		cfg.ForecastStrategy = "lag1"
	}

	validStores := map[string]bool{"postgres": true, "file": true, "memory": true}
	if !validStores[cfg.ModelStore] {
		log.Warn().Msgf("Invalid MODEL_STORE '%s'. Defaulting to 'postgres'.", cfg.ModelStore)
		cfg.ModelStore = "postgres"
	}

	if cfg.ForecastMaxDays < 1 {
		log.Warn().Msgf("Invalid FORECAST_MAX_DAYS %d. Using default 30.", cfg.ForecastMaxDays)
		cfg.ForecastMaxDays = 30
	}
	if cfg.ForecastDays < 1 || cfg.ForecastDays > cfg.ForecastMaxDays {
		log.Warn().Msgf("Invalid FORECAST_DAYS %d. Using default 7.", cfg.ForecastDays)
		cfg.ForecastDays = 7
		if cfg.ForecastDays > cfg.ForecastMaxDays {
			cfg.ForecastDays = cfg.ForecastMaxDays
		}
	}
	if cfg.ForecastRetrainEvery < 0 {
		cfg.ForecastRetrainEvery = 0
	}
	if len(cfg.CorsAllowedOrigins) == 0 {
		cfg.CorsAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

func getStringEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("Invalid value for %s: %s. Using default %d.", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getDurationEnv(key, defaultValue string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warn().Msgf("Invalid duration value for %s: %s. Using default %s.", key, valueStr, defaultValue)
		defaultDur, _ := time.ParseDuration(defaultValue)
		return defaultDur
	}
	return value
}

func getSliceEnv(key, defaultValue string) []string {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		valueStr = defaultValue
	}
	if valueStr == "" {
		return []string{}
	}
	parts := strings.Split(valueStr, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func getFloatEnv(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Warn().Msgf("Invalid float value for %s: %s. Using default %f.", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
