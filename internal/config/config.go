package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Ai         AIConfig
	Onet       OnetConfig
	Assessment AssessmentConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	EventTopic         string
	OtelEnabled        bool
	OtelEndpoint       string
}

type AIConfig struct {
	LLMProvider               string // "ollama", "openai", "huggingface"
	LLMModel                  string
	LLMBaseURL                string
	LLMAPIKey                 string
	QuestionGenerationEnabled bool
	EvaluationEnabled         bool
}

type OnetConfig struct {
	BaseURL  string
	Username string
	Password string
	CacheTTL time.Duration
}

// AssessmentConfig holds the organizer/scorer tuning knobs.
type AssessmentConfig struct {
	GenerationDelayBase time.Duration
	GenerationDelayStep time.Duration
	RetryMax            int
	RetryBaseDelay      time.Duration
	SessionTTL          time.Duration

	WeightRepresentative int
	WeightNameKeyword    int
	WeightDisplayName    int
	WeightTextKeyword    int
	WeightSynonym        int
	WeightCategory       int
	MatchThreshold       int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/assessment.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			EventTopic:         getEnv("ASSESSMENT_EVENT_TOPIC", "ASSESSMENT_EVENTS"),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Ai: AIConfig{
			LLMProvider:               getEnv("LLM_PROVIDER", "openai"),
			LLMModel:                  getEnv("LLM_MODEL", "gpt-4o-mini"),
			LLMBaseURL:                getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:                 getEnv("LLM_API_KEY", ""),
			QuestionGenerationEnabled: getEnvAsBool("AI_QUESTION_GENERATION_ENABLED", true),
			EvaluationEnabled:         getEnvAsBool("AI_EVALUATION_ENABLED", false),
		},
		Onet: OnetConfig{
			BaseURL:  getEnv("ONET_BASE_URL", "https://services.onetcenter.org/ws/online/"),
			Username: getEnv("ONET_USERNAME", ""),
			Password: getEnv("ONET_PASSWORD", ""),
			CacheTTL: getEnvAsDuration("ONET_CACHE_TTL", 24*time.Hour),
		},
		Assessment: AssessmentConfig{
			GenerationDelayBase: getEnvAsDuration("GENERATION_DELAY_BASE", 3*time.Second),
			GenerationDelayStep: getEnvAsDuration("GENERATION_DELAY_STEP", 2*time.Second),
			RetryMax:            getEnvAsInt("RETRY_MAX", 3),
			RetryBaseDelay:      getEnvAsDuration("RETRY_BASE_DELAY", 2*time.Second),
			SessionTTL:          getEnvAsDuration("SESSION_TTL", 2*time.Hour),

			WeightRepresentative: getEnvAsInt("MATCH_WEIGHT_REPRESENTATIVE", 20),
			WeightNameKeyword:    getEnvAsInt("MATCH_WEIGHT_NAME_KEYWORD", 15),
			WeightDisplayName:    getEnvAsInt("MATCH_WEIGHT_DISPLAY_NAME", 15),
			WeightTextKeyword:    getEnvAsInt("MATCH_WEIGHT_TEXT_KEYWORD", 3),
			WeightSynonym:        getEnvAsInt("MATCH_WEIGHT_SYNONYM", 5),
			WeightCategory:       getEnvAsInt("MATCH_WEIGHT_CATEGORY", 2),
			MatchThreshold:       getEnvAsInt("MATCH_THRESHOLD", 3),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
