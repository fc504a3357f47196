package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	DBPath     string
	PhotoPath  string
	LogLevel   string
	LogFile    string

	MaxImageBytes int64

	WeatherArchiveURL  string
	WeatherForecastURL string
	OpenWeatherURL     string
	OpenWeatherAPIKey  string
	WeatherHTTPTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	timeout, err := time.ParseDuration(getEnv("WEATHER_HTTP_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_HTTP_TIMEOUT: %w", err)
	}

	maxImageBytes, err := strconv.ParseInt(getEnv("MAX_IMAGE_BYTES", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_IMAGE_BYTES: %w", err)
	}
	if maxImageBytes <= 0 {
		return nil, fmt.Errorf("invalid MAX_IMAGE_BYTES: must be positive")
	}

	return &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		DBPath:             getEnv("DB_PATH", "/data/fishedex.db"),
		PhotoPath:          getEnv("PHOTO_LOCAL_PATH", "/data/photos"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            getEnv("LOG_FILE", ""),
		MaxImageBytes:      maxImageBytes,
		WeatherArchiveURL:  getEnv("WEATHER_ARCHIVE_URL", "https://archive-api.open-meteo.com/v1/archive"),
		WeatherForecastURL: getEnv("WEATHER_FORECAST_URL", "https://api.open-meteo.com/v1/forecast"),
		OpenWeatherURL:     getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/weather"),
		OpenWeatherAPIKey:  firstEnv("OPENWEATHER_API_KEY", "WEATHER_API_KEY"),
		WeatherHTTPTimeout: timeout,
	}, nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// firstEnv returns the first non-empty value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}
