package config

import (
	"time"

	"github.com/spf13/viper"

	"studypulse/internal/adaptive"
	"studypulse/internal/confidence"
)

// Config holds all non-AI service configuration, loaded from the
// environment with documented defaults.
type Config struct {
	Port      string
	LogMode   string
	MongoURI  string
	MongoDB   string
	RedisAddr string

	TutorUsername string
	TutorPassword string
	JWTSecret     string

	Scoring    adaptive.Params
	Confidence confidence.Thresholds

	NudgeInactiveAfter time.Duration
	NudgeInterval      time.Duration
	DashboardCacheTTL  time.Duration
}

// Load reads configuration from the environment.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_MODE", "dev")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DB", "studypulse")
	v.SetDefault("REDIS_URI", "localhost:6379")

	v.SetDefault("TUTOR_USERNAME", "tutor")
	v.SetDefault("TUTOR_PASSWORD", "password123")
	v.SetDefault("JWT_SECRET", "super-secret-key-change-in-production")

	v.SetDefault("K_FACTOR", 32)
	v.SetDefault("MIN_RATING", 400)
	v.SetDefault("MAX_RATING", 2000)
	v.SetDefault("DEFAULT_RATING", 1000)
	v.SetDefault("CONFIDENCE_HIGH_THRESHOLD", 0.75)
	v.SetDefault("CONFIDENCE_MEDIUM_THRESHOLD", 0.50)

	v.SetDefault("NUDGE_INACTIVE_AFTER", "72h")
	v.SetDefault("NUDGE_INTERVAL", "1h")
	v.SetDefault("DASHBOARD_CACHE_TTL", "60s")

	return &Config{
		Port:      v.GetString("PORT"),
		LogMode:   v.GetString("LOG_MODE"),
		MongoURI:  v.GetString("MONGO_URI"),
		MongoDB:   v.GetString("MONGO_DB"),
		RedisAddr: v.GetString("REDIS_URI"),

		TutorUsername: v.GetString("TUTOR_USERNAME"),
		TutorPassword: v.GetString("TUTOR_PASSWORD"),
		JWTSecret:     v.GetString("JWT_SECRET"),

		Scoring: adaptive.Params{
			KFactor:       v.GetInt("K_FACTOR"),
			MinRating:     v.GetInt("MIN_RATING"),
			MaxRating:     v.GetInt("MAX_RATING"),
			DefaultRating: v.GetInt("DEFAULT_RATING"),
		},
		Confidence: confidence.Thresholds{
			High:   v.GetFloat64("CONFIDENCE_HIGH_THRESHOLD"),
			Medium: v.GetFloat64("CONFIDENCE_MEDIUM_THRESHOLD"),
		},

		NudgeInactiveAfter: v.GetDuration("NUDGE_INACTIVE_AFTER"),
		NudgeInterval:      v.GetDuration("NUDGE_INTERVAL"),
		DashboardCacheTTL:  v.GetDuration("DASHBOARD_CACHE_TTL"),
	}
}
