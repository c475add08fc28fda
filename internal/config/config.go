package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"efazi/internal/assist"
	"efazi/internal/geo"
	"efazi/internal/rod"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath      string
	HTTPPort      int
	TelegramToken string

	Groq       assist.Config
	Geo        geo.Config
	Thresholds rod.Thresholds
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Binary directory first (deployments drop .env beside the binary).
	exeDir := ""
	if exePath, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to the working directory (development / go run).
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	port, _ := strconv.Atoi(getEnv("PORT", "10000"))
	geoDelayMS, _ := strconv.Atoi(getEnv("GEO_REQUEST_DELAY_MS", "1100"))
	geoTimeoutS, _ := strconv.Atoi(getEnv("GEO_TIMEOUT_SECONDS", "10"))

	cfg := &AppConfig{
		DataPath:      dataPath,
		HTTPPort:      port,
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		Groq: assist.Config{
			APIKey:  getEnv("GROQ_API_KEY", ""),
			BaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getEnv("GROQ_MODEL", "llama3-8b-8192"),
		},
		Geo: geo.Config{
			OSRMBaseURL:  getEnv("OSRM_URL", "http://router.project-osrm.org"),
			OverpassURL:  getEnv("OVERPASS_URL", "http://overpass-api.de/api/interpreter"),
			RequestDelay: time.Duration(geoDelayMS) * time.Millisecond,
			Timeout:      time.Duration(geoTimeoutS) * time.Second,
		},
		Thresholds: loadThresholds(),
	}

	return cfg, nil
}

// loadThresholds starts from the standard ROD cut-offs and applies any
// per-threshold overrides from the environment. The constants are treated as
// configuration, not baked-in business logic.
func loadThresholds() rod.Thresholds {
	t := rod.DefaultThresholds()
	t.DeliveryBreach = getEnvFloat("ROD_DELIVERY_BREACH_MIN", t.DeliveryBreach)
	t.StoreProcess = getEnvFloat("ROD_STORE_PROCESS_MIN", t.StoreProcess)
	t.SlowAssign = getEnvFloat("ROD_SLOW_ASSIGN_MIN", t.SlowAssign)
	t.SlowPickup = getEnvFloat("ROD_SLOW_PICKUP_MIN", t.SlowPickup)
	t.SlowLastLeg = getEnvFloat("ROD_SLOW_LAST_LEG_MIN", t.SlowLastLeg)
	return t
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
