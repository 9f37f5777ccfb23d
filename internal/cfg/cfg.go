package cfg

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DRSN-tech/fitting-backend/pkg/e"
	"github.com/DRSN-tech/fitting-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http  *HTTPConfig
	Db    *PGDBCfg
	Redis *RedisCfg
	Llm   *LLMCfg
	Index *IndexCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	URL      string // полная строка подключения, имеет приоритет над остальными полями
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN возвращает строку подключения: либо POSTGRES_URL целиком, либо собранную из полей.
func (c *PGDBCfg) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	if c.User == "" || c.DBName == "" {
		return ""
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type RedisCfg struct {
	Enabled     bool
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	DefaultTTL  time.Duration
}

type LLMCfg struct {
	Endpoint          string
	APIKey            string
	DeploymentID      string
	APIVersion        string
	Temperature       float32
	MaxTokens         int
	RerankTemperature float32
	RerankMaxTokens   int
	MaxRetries        int
}

// IndexCfg — настройки скоринга каталога.
type IndexCfg struct {
	ExactWeight    float64
	PartialWeight  float64
	ScoreThreshold float64
	MaxPerCategory int
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	llm, err := loadLLMCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	index, err := loadIndexCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:  http,
		Db:    loadPGDBCfg(),
		Redis: redis,
		Llm:   llm,
		Index: index,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

// loadPGDBCfg не требует обязательных переменных: ненастроенное хранилище —
// допустимое состояние, поиск деградирует до кэша либо явной ошибки.
func loadPGDBCfg() *PGDBCfg {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "require"
	)

	return &PGDBCfg{
		URL:      getEnv("POSTGRES_URL"),
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     getEnv("POSTGRES_USER"),
		Password: getEnv("POSTGRES_PASSWORD"),
		DBName:   getEnv("POSTGRES_DB"),
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr        = "localhost:6379"
		defaultDB          = 0
		defaultMaxRetries  = 3
		defaultDialTimeout = 5 * time.Second
		defaultTimeout     = 3 * time.Second
		defaultTTL         = 30 * time.Minute
	)

	enabled, err := strconv.ParseBool(getEnvOrDefault("CACHE_ENABLED", "false"))
	if err != nil {
		log.Errorf(err, "invalid CACHE_ENABLED")
		return nil, err
	}

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("REDIS_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("REDIS_DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DIAL_TIMEOUT")
		return nil, err
	}

	timeout, err := parseDurationEnv("REDIS_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_TIMEOUT")
		return nil, err
	}

	// CACHE_DEFAULT_TTL задается в секундах, как в остальных сервисах
	ttlSec, err := parseIntEnv("CACHE_DEFAULT_TTL", int(defaultTTL.Seconds()))
	if err != nil {
		log.Errorf(err, "invalid CACHE_DEFAULT_TTL")
		return nil, err
	}

	return &RedisCfg{
		Enabled:     enabled,
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		DefaultTTL:  time.Duration(ttlSec) * time.Second,
	}, nil
}

func loadLLMCfg(log logger.Logger) (*LLMCfg, error) {
	const (
		defaultDeploymentID      = "gpt-4o"
		defaultAPIVersion        = "2024-02-15-preview"
		defaultTemperature       = 0.1
		defaultMaxTokens         = 500
		defaultRerankTemperature = 0.2
		defaultRerankMaxTokens   = 400
		defaultMaxRetries        = 2
	)

	temperature, err := parseFloatEnv("AZURE_OPENAI_TEMPERATURE", defaultTemperature)
	if err != nil {
		log.Errorf(err, "invalid AZURE_OPENAI_TEMPERATURE")
		return nil, err
	}

	maxTokens, err := parseIntEnv("AZURE_OPENAI_MAX_TOKENS", defaultMaxTokens)
	if err != nil {
		log.Errorf(err, "invalid AZURE_OPENAI_MAX_TOKENS")
		return nil, err
	}

	rerankTemperature, err := parseFloatEnv("LLM_RERANK_TEMPERATURE", defaultRerankTemperature)
	if err != nil {
		log.Errorf(err, "invalid LLM_RERANK_TEMPERATURE")
		return nil, err
	}

	rerankMaxTokens, err := parseIntEnv("LLM_RERANK_MAX_TOKENS", defaultRerankMaxTokens)
	if err != nil {
		log.Errorf(err, "invalid LLM_RERANK_MAX_TOKENS")
		return nil, err
	}

	maxRetries, err := parseIntEnv("LLM_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid LLM_MAX_RETRIES")
		return nil, err
	}

	return &LLMCfg{
		Endpoint:          getEnv("AZURE_OPENAI_ENDPOINT"),
		APIKey:            getEnv("AZURE_OPENAI_KEY"),
		DeploymentID:      getEnvOrDefault("AZURE_OPENAI_DEPLOYMENT_ID", defaultDeploymentID),
		APIVersion:        getEnvOrDefault("AZURE_OPENAI_API_VERSION", defaultAPIVersion),
		Temperature:       float32(temperature),
		MaxTokens:         maxTokens,
		RerankTemperature: float32(rerankTemperature),
		RerankMaxTokens:   rerankMaxTokens,
		MaxRetries:        maxRetries,
	}, nil
}

func loadIndexCfg() (*IndexCfg, error) {
	const (
		defaultExactWeight    = 1.0
		defaultPartialWeight  = 0.5
		defaultScoreThreshold = 0.0
		defaultMaxPerCategory = 10
	)

	exactWeight, err := parseFloatEnv("PRODUCT_INDEX_EXACT_WEIGHT", defaultExactWeight)
	if err != nil {
		return nil, e.Wrap("PRODUCT_INDEX_EXACT_WEIGHT", err)
	}

	partialWeight, err := parseFloatEnv("PRODUCT_INDEX_PARTIAL_WEIGHT", defaultPartialWeight)
	if err != nil {
		return nil, e.Wrap("PRODUCT_INDEX_PARTIAL_WEIGHT", err)
	}

	scoreThreshold, err := parseFloatEnv("PRODUCT_INDEX_SCORE_THRESHOLD", defaultScoreThreshold)
	if err != nil {
		return nil, e.Wrap("PRODUCT_INDEX_SCORE_THRESHOLD", err)
	}

	maxPerCategory, err := parseIntEnv("PRODUCT_INDEX_MAX_PER_CATEGORY", defaultMaxPerCategory)
	if err != nil {
		return nil, e.Wrap("PRODUCT_INDEX_MAX_PER_CATEGORY", err)
	}

	return &IndexCfg{
		ExactWeight:    exactWeight,
		PartialWeight:  partialWeight,
		ScoreThreshold: scoreThreshold,
		MaxPerCategory: maxPerCategory,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}

func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	floatValue, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return floatValue, nil
}
