package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Tables struct {
	Schema       string
	Subscription string
	Order        string
	Item         string
	Relation     string
	Retry        string
	Product      string
	Variation    string
	User         string
}

type Kafka struct {
	Brokers []string
	Topic   string
	Group   string
	Workers int
}

type Postgres struct {
	Host     string
	Port     string
	DB       string
	User     string
	Password string
	SSLMode  string
}

type Redis struct {
	URL string
	// TTL for retry records kept in Redis; zero keeps them forever.
	TTL time.Duration
}

type Breaker struct {
	Threshold   uint32
	OpenTimeout time.Duration
	MaxHalfOpen uint32
}

type Backoff struct {
	Attempts     int
	Base         time.Duration
	Max          time.Duration
	JitterFactor float64
}

type Config struct {
	HTTPAddr string
	CacheCap int

	// MetaPrefix namespaces the relation attachment keys,
	// e.g. "_" -> "_subscription_renewal".
	MetaPrefix string

	// RetryCron is the schedule on which due payment retries are picked up.
	RetryCron string

	// RetryBackend selects the retry store: "postgres", "redis" or "memory".
	RetryBackend string

	// AdminEmail receives the store-manager copies of retry emails.
	AdminEmail string

	Pg      Postgres
	Tables  Tables
	Kafka   Kafka
	Redis   Redis
	Breaker Breaker
	Backoff Backoff
}

// Load keeps the original API and fatals on error for simplicity in main().
func Load() Config {
	cfg, err := load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	return cfg
}

func load() (Config, error) {
	_ = godotenv.Load("env/.env")

	cfg := Config{
		HTTPAddr:     envDefault("HTTP_ADDR", ":8081"),
		CacheCap:     envInt("CACHE_CAP", 1000),
		MetaPrefix:   envDefault("META_PREFIX", "_"),
		RetryCron:    envDefault("RETRY_CRON", "*/5 * * * *"),
		RetryBackend: envDefault("RETRY_BACKEND", "postgres"),
		AdminEmail:   envDefault("ADMIN_EMAIL", "admin@localhost"),

		Pg: Postgres{
			Host:     strings.TrimSpace(os.Getenv("PG_HOST")),
			Port:     strings.TrimSpace(envDefault("PG_PORT", "5432")),
			DB:       strings.TrimSpace(os.Getenv("PG_DB")),
			User:     strings.TrimSpace(os.Getenv("PG_USER")),
			Password: strings.TrimSpace(os.Getenv("PG_PASSWORD")),
			SSLMode:  strings.TrimSpace(envDefault("PG_SSLMODE", "disable")),
		},

		Tables: Tables{
			Schema:       strings.TrimSpace(os.Getenv("DB_SCHEMA")),
			Subscription: strings.TrimSpace(envDefault("TBL_SUBSCRIPTION", "subscriptions")),
			Order:        strings.TrimSpace(envDefault("TBL_ORDER", "orders")),
			Item:         strings.TrimSpace(envDefault("TBL_ITEM", "line_items")),
			Relation:     strings.TrimSpace(envDefault("TBL_RELATION", "order_relations")),
			Retry:        strings.TrimSpace(envDefault("TBL_RETRY", "payment_retries")),
			Product:      strings.TrimSpace(envDefault("TBL_PRODUCT", "products")),
			Variation:    strings.TrimSpace(envDefault("TBL_VARIATION", "variations")),
			User:         strings.TrimSpace(envDefault("TBL_USER", "users")),
		},

		Kafka: Kafka{
			Brokers: splitCSV(strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))),
			Topic:   strings.TrimSpace(envDefault("KAFKA_TOPIC", "payment-events")),
			Group:   strings.TrimSpace(envDefault("KAFKA_GROUP", "subhub")),
			Workers: envInt("KAFKA_WORKERS", 10),
		},

		Redis: Redis{
			URL: strings.TrimSpace(envDefault("REDIS_URL", "redis://localhost:6379/0")),
			TTL: envDurationMS("REDIS_RETRY_TTL", 0),
		},

		Breaker: Breaker{
			Threshold:   envUint32("BREAKER_THRESHOLD", 5),
			OpenTimeout: envDurationMS("BREAKER_OPENTIMEOUT", 10*time.Second),
			MaxHalfOpen: envUint32("BREAKER_MAXHALFOPEN", 3),
		},

		Backoff: Backoff{
			Attempts:     envInt("BACKOFF_ATTEMPTS", 5),
			Base:         envDurationMS("BACKOFF_BASE", 100*time.Millisecond),
			Max:          envDurationMS("BACKOFF_MAX", 5*time.Second),
			JitterFactor: envFloat64("BACKOFF_JITTERFACTOR", 0.3),
		},
	}

	// Validate required envs and basic sanity.
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	req := map[string]string{
		"PG_HOST":       c.Pg.Host,
		"PG_DB":         c.Pg.DB,
		"PG_USER":       c.Pg.User,
		"PG_PASSWORD":   c.Pg.Password,
		"DB_SCHEMA":     c.Tables.Schema,
		"KAFKA_BROKERS": strings.Join(c.Kafka.Brokers, ","),
		"KAFKA_TOPIC":   c.Kafka.Topic,
		"KAFKA_GROUP":   c.Kafka.Group,
	}
	for k, v := range req {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &missingEnvError{Keys: missing}
	}

	switch c.RetryBackend {
	case "postgres", "redis", "memory":
	default:
		return &missingEnvError{Keys: []string{"RETRY_BACKEND"}}
	}

	if c.CacheCap <= 0 {
		log.Printf("CACHE_CAP is %d, adjusting to 1", c.CacheCap)
	}
	if c.Backoff.Attempts < 0 {
		log.Printf("BACKOFF_ATTEMPTS is %d, adjusting to 0", c.Backoff.Attempts)
	}
	if c.Backoff.Base <= 0 {
		log.Printf("BACKOFF_BASE is %v, adjusting to 100ms", c.Backoff.Base)
	}
	if c.Backoff.Max < c.Backoff.Base {
		log.Printf("BACKOFF_MAX (%v) < BACKOFF_BASE (%v), adjusting max to base", c.Backoff.Max, c.Backoff.Base)
	}
	if len(c.Kafka.Brokers) == 0 {
		return &missingEnvError{Keys: []string{"KAFKA_BROKERS"}}
	}
	return nil
}

type missingEnvError struct{ Keys []string }

func (e *missingEnvError) Error() string {
	return "missing required envs: " + strings.Join(e.Keys, ", ")
}

// DSN builds a proper Postgres URL, safely escaping user/pass and query.
func (c Config) DSN() string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Pg.User, c.Pg.Password),
		Host:   net.JoinHostPort(c.Pg.Host, c.Pg.Port),
		Path:   "/" + c.Pg.DB,
	}
	q := url.Values{}
	if c.Pg.SSLMode != "" {
		q.Set("sslmode", c.Pg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return n
}

func envUint32(k string, def uint32) uint32 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	u, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d: %v", k, v, def, err)
		return def
	}
	return uint32(u)
}

func envFloat64(k string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %.3f: %v", k, v, def, err)
		return def
	}
	return f
}

// envDurationMS supports either plain integer milliseconds ("1500") or
// Go duration strings ("1.5s", "250ms", "2m").
func envDurationMS(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	// If it looks like a duration with units, try ParseDuration first.
	if strings.IndexFunc(v, func(r rune) bool { return r < '0' || r > '9' }) != -1 {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
			return def
		}
		return d
	}
	// Otherwise treat as milliseconds.
	ms, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v: %v", k, v, def, err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
