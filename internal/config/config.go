package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the process configuration, read from the environment after an optional .env file.
type Config struct {
	LocationsPath     string
	DurationsPath     string
	DemandHistoryPath string
	OutputDir         string

	Depots        []string
	PoolDraws     int
	PoolSeed      int64
	Trials        int
	SimSeed       int64
	FleetCapacity int
	Workers       int

	Selector          string
	SelectorTimeLimit time.Duration
	SelectorNodeLimit int

	DatabaseURL  string
	SqlitePath   string
	RedisAddr    string
	PoolCacheTTL time.Duration
	ORSAPIKey    string

	Port      string
	LogLevel  string
	LogPretty bool
}

// Load reads .env (if present) and the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found (using environment variables)")
	}

	return Config{
		LocationsPath:     Get("LOCATIONS_PATH", "data/locations.csv"),
		DurationsPath:     Get("DURATIONS_PATH", "data/durations.csv"),
		DemandHistoryPath: Get("DEMAND_HISTORY_PATH", "data/demand_history.csv"),
		OutputDir:         Get("OUTPUT_DIR", "out"),

		Depots:        GetList("DEPOTS", nil),
		PoolDraws:     GetInt("POOL_DRAWS", 1000),
		PoolSeed:      GetInt64("POOL_SEED", 80),
		Trials:        GetInt("SIM_TRIALS", 10000),
		SimSeed:       GetInt64("SIM_SEED", time.Now().UnixNano()),
		FleetCapacity: GetInt("FLEET_CAPACITY", 50),
		Workers:       GetInt("WORKERS", runtime.GOMAXPROCS(0)),

		Selector:          Get("SELECTOR", "bnb"),
		SelectorTimeLimit: GetDuration("SELECTOR_TIME_LIMIT", 60*time.Second),
		SelectorNodeLimit: GetInt("SELECTOR_NODE_LIMIT", 5_000_000),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		SqlitePath:   os.Getenv("SQLITE_PATH"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		PoolCacheTTL: GetDuration("POOL_CACHE_TTL", 24*time.Hour),
		ORSAPIKey:    os.Getenv("ORS_API_KEY"),

		Port:      Get("PORT", "8080"),
		LogLevel:  Get("LOG_LEVEL", "info"),
		LogPretty: GetBool("LOG_PRETTY", false),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(Get(key, ""), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func GetBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// GetList splits a comma separated value, dropping empty items.
func GetList(key string, fallback []string) []string {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
