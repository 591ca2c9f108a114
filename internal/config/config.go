package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza a configuração carregada do ambiente.
type Config struct {
	Port            int
	MongoURI        string
	MongoDB         string
	RedisURL        string
	JWTSecret       string
	JWTAccessTTL    time.Duration
	SweepInterval   time.Duration
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	RateLimitAuth   RateLimitConfig
	SMTP            SMTPConfig
}

// RateLimitConfig representa limites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// SMTPConfig descreve o remetente de e-mails transacionais. Opcional: com
// Host vazio o envio fica desabilitado.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled indica se o envio de e-mail está configurado.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != ""
}

// Load carrega variáveis de ambiente e aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.MongoURI = getEnv("MONGO_URI", "")
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI obrigatório")
	}
	cfg.MongoDB = getEnv("MONGO_DB", "cursinho")

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obrigatório")
	}

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if len(cfg.JWTSecret) < 32 {
		return nil, errors.New("JWT_SECRET deve ter pelo menos 32 caracteres")
	}

	// Default espelha a duração histórica das sessões da plataforma: 10 dias.
	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 240*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.JWTAccessTTL = accessTTL

	sweepInterval, err := parseDurationEnv("SWEEP_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	if sweepInterval <= 0 {
		return nil, errors.New("SWEEP_INTERVAL deve ser positivo")
	}
	cfg.SweepInterval = sweepInterval

	for _, origin := range strings.Split(getEnv("ALLOW_ORIGINS", ""), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAuth = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	smtpPortStr := getEnv("SMTP_PORT", "465")
	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil || smtpPort <= 0 {
		return nil, errors.New("SMTP_PORT inválida")
	}
	cfg.SMTP = SMTPConfig{
		Host:     strings.TrimSpace(getEnv("SMTP_HOST", "")),
		Port:     smtpPort,
		Username: getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASS", ""),
		From:     strings.TrimSpace(getEnv("SMTP_FROM", "")),
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
