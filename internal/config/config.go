package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderXAI    = "xai"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	LLM struct {
		Provider string        `mapstructure:"provider"`
		BaseURL  string        `mapstructure:"base_url"`
		APIKey   string        `mapstructure:"api_key"`
		Model    string        `mapstructure:"model"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`
	Fallback struct {
		Delay time.Duration `mapstructure:"delay"`
	} `mapstructure:"fallback"`
	Session struct {
		Store string        `mapstructure:"store"`
		TTL   time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

// LoadConfig reads .env and config.yaml from path (both optional), then
// lets environment variables override them.
func LoadConfig(path string) (cfg Config, err error) {
	if path == "" {
		path = "."
	}

	if err := godotenv.Load(path + "/.env"); err != nil {
		log.Println("warning: .env file not found, use environment only.")
	}

	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("llm.provider", "LLM_PROVIDER")
	v.BindEnv("llm.base_url", "LLM_BASE_URL")
	v.BindEnv("llm.api_key", "XAI_API_KEY", "LLM_API_KEY")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.timeout", "LLM_TIMEOUT")
	v.BindEnv("fallback.delay", "FALLBACK_DELAY")
	v.BindEnv("session.store", "SESSION_STORE")
	v.BindEnv("session.ttl", "SESSION_TTL")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")
	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = DefaultBaseURL(cfg.LLM.Provider)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Println("warning: JWT_SECRET not set, session tokens will not survive a restart.")
		cfg.Auth.JWTSecret = randomSecret()
	}

	err = cfg.Validate()
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("llm.provider", ProviderXAI)
	v.SetDefault("llm.model", "grok-3")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("fallback.delay", 1500*time.Millisecond)
	v.SetDefault("session.store", StoreMemory)
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
}

// DefaultBaseURL returns the OpenAI-compatible endpoint of a provider.
func DefaultBaseURL(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderOllama:
		return "http://localhost:11434/v1"
	default:
		return "https://api.x.ai/v1"
	}
}

func (c Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderXAI, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unsupported llm provider %q", c.LLM.Provider)
	}
	switch c.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("session store %q requires redis.addr", c.Session.Store)
		}
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}
	// The worker keeps solve counters in Redis; without it events sent to
	// Kafka would never reach /api/stats.
	if len(c.Kafka.Brokers) > 0 && c.Redis.Addr == "" {
		return fmt.Errorf("kafka.brokers requires redis.addr for solve stats")
	}
	if c.Fallback.Delay < 0 {
		return fmt.Errorf("fallback delay must not be negative")
	}
	return nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("cannot generate jwt secret: %v", err)
	}
	return hex.EncodeToString(b)
}
