package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"resume-analyzer/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	SSEKMSKeyID     string
	DatabaseURL     string
	LLMProvider     string
	LLMModel        string
	LLMTimeout      time.Duration
	HFAPIToken      string
	HFBaseURL       string
	OpenAIAPIKey    string
	GeminiAPIKey    string
	MaxUploadBytes  int64
	AnalyzePerMin   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	rawProvider := getEnv("LLM_PROVIDER", "huggingface")
	if !KnownProvider(rawProvider) {
		telemetry.Warn("config.unknown_provider", map[string]any{
			"value":    rawProvider,
			"fallback": NormalizeProvider(rawProvider),
		})
	}

	if env == "production" && dbURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": env})
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:     dbURL,
		LLMProvider:     NormalizeProvider(rawProvider),
		LLMModel:        getEnv("LLM_MODEL", ""),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 0)) * time.Second,
		HFAPIToken:      getEnv("HF_API_TOKEN", ""),
		HFBaseURL:       getEnv("HF_API_BASE_URL", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)),
		AnalyzePerMin:   getEnvInt("RATE_LIMIT_ANALYZE_PER_MIN", 6),
	}
}

var providerAliases = map[string]string{
	"":            "huggingface",
	"huggingface": "huggingface",
	"hf":          "huggingface",
	"openai":      "openai",
	"gemini":      "gemini",
	"google":      "gemini",
	"none":        "none",
	"disabled":    "none",
	"off":         "none",
}

// NormalizeProvider maps provider aliases onto the supported names.
// Unknown values fall back to huggingface.
func NormalizeProvider(raw string) string {
	if name, ok := providerAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return name
	}
	return "huggingface"
}

// KnownProvider reports whether raw is a supported provider name or alias.
func KnownProvider(raw string) bool {
	_, ok := providerAliases[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "value": raw})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
