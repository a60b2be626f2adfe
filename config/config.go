package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreDriverMemory = "memory"
	StoreDriverMongo  = "mongo"
)

// Config application settings
type Config struct {
	Port     int
	Debug    bool
	JWTKey   string
	SeedData bool

	StoreDriver string
	MongoURI    string
	MongoDB     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MockLatency       time.Duration
	OTPResendCooldown time.Duration
	BookingSessionTTL time.Duration

	CORSOrigins []string
}

// LoadConfig loads configuration from the environment. A .env file in the
// working directory is applied first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Port:     port,
		Debug:    getEnv("GIN_MODE", "debug") == "debug",
		JWTKey:   getEnv("JWT_KEY", "change-me-in-production"),
		SeedData: getEnvBool("SEED_DATA", true),

		StoreDriver: getEnv("STORE_DRIVER", StoreDriverMemory),
		MongoURI:    getEnv("MONGO_URI", "mongodb://127.0.0.1:27017/?replicaSet=rs0"),
		MongoDB:     getEnv("MONGO_DB", "ekta_janch"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		MockLatency:       getEnvDuration("MOCK_LATENCY", 0),
		OTPResendCooldown: getEnvDuration("OTP_RESEND_COOLDOWN", 30*time.Second),
		BookingSessionTTL: getEnvDuration("BOOKING_SESSION_TTL", 30*time.Minute),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}
}

// getEnv returns the variable or the default when unset
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
