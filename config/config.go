package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Host string
	Port string

	DatabaseURL string

	SecretKey          string
	Algorithm          string
	AccessTokenMinutes int
	EncryptionKey      string

	StorageDriver          string // gcs|local
	StorageBucket          string
	StorageCredentialsFile string
	StorageProjectID       string
	StorageLocalDir        string
	StoragePublicBaseURL   string

	InferenceURL       string
	InferenceAPIKey    string
	InferenceWorkspace string
	InferenceWorkflow  string

	GeminiAPIKey string
	GeminiModel  string
	LLMEndpoint  string
	LLMAPIKey    string
	LLMModel     string

	ReportsDir  string
	RedisURL    string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string
	// TrustedProxies lists CIDRs whose X-Forwarded-For is believed. Empty means
	// the client IP is always the socket peer.
	TrustedProxies []string
}

// DevEncryptionKey is used when ENCRYPTION_KEY is unset. Never run production on it.
const DevEncryptionKey = "minascan-dev-encryption-key"

func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	ttl, err := strconv.Atoi(get("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil || ttl <= 0 {
		ttl = 30
	}

	bucket := get("STORAGE_BUCKET", "")
	driver := "local"
	if bucket != "" {
		driver = "gcs"
	}

	cfg := AppConfig{
		Host:        get("HOST", "0.0.0.0"),
		Port:        get("PORT", "8000"),
		DatabaseURL: get("DATABASE_URL", "sqlite://minascan.db"),

		SecretKey:          get("SECRET_KEY", "minascan-dev-secret"),
		Algorithm:          get("ALGORITHM", "HS256"),
		AccessTokenMinutes: ttl,
		EncryptionKey:      get("ENCRYPTION_KEY", DevEncryptionKey),

		StorageDriver:          get("STORAGE_DRIVER", driver),
		StorageBucket:          bucket,
		StorageCredentialsFile: get("STORAGE_CREDENTIALS_FILE", ""),
		StorageProjectID:       get("STORAGE_PROJECT_ID", ""),
		StorageLocalDir:        get("STORAGE_LOCAL_DIR", "uploads"),
		StoragePublicBaseURL:   get("STORAGE_PUBLIC_BASE_URL", ""),

		InferenceURL:       get("INFERENCE_API_URL", "https://serverless.roboflow.com"),
		InferenceAPIKey:    get("INFERENCE_API_KEY", ""),
		InferenceWorkspace: get("INFERENCE_WORKSPACE", "dl-w5fkx"),
		InferenceWorkflow:  get("INFERENCE_WORKFLOW", "detect-and-classify"),

		GeminiAPIKey: get("GEMINI_API_KEY", ""),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		LLMEndpoint:  get("LLM_ENDPOINT", ""),
		LLMAPIKey:    get("LLM_API_KEY", ""),
		LLMModel:     get("LLM_MODEL", "gpt-4o-mini"),

		ReportsDir:  get("REPORTS_DIR", "reports"),
		RedisURL:    get("REDIS_URL", ""),
		LogLevel:    get("LOG_LEVEL", "info"),
		LogFormat:   get("LOG_FORMAT", "json"),
		CORSOrigins: splitList(get("CORS_ORIGINS", "*")),

		TrustedProxies: splitList(get("TRUSTED_PROXIES", "")),
	}
	if cfg.EncryptionKey == DevEncryptionKey {
		log.Printf("[cfg] WARNING: ENCRYPTION_KEY not set, encrypted columns use the development key")
	}
	log.Printf("[cfg] %+v", cfg.Masked())
	return cfg
}

// Masked returns a copy safe to print.
func (c AppConfig) Masked() AppConfig {
	m := c
	for _, s := range []*string{&m.SecretKey, &m.EncryptionKey, &m.InferenceAPIKey, &m.GeminiAPIKey, &m.LLMAPIKey} {
		if *s != "" {
			*s = "***"
		}
	}
	if i := strings.Index(m.DatabaseURL, "@"); i > 0 {
		m.DatabaseURL = "***" + m.DatabaseURL[i:]
	}
	if i := strings.Index(m.RedisURL, "@"); i > 0 {
		m.RedisURL = "***" + m.RedisURL[i:]
	}
	return m
}

func (c AppConfig) Addr() string { return c.Host + ":" + c.Port }

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
