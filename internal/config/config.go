package config // package config loads application configuration from environment variables

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/theater-ticketing/internal/utils"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	DBMaxOpenConns   int    // connection pool size
	JWTSecret        string // secret used to sign admin JWTs
	AdminSecretHash  []byte // bcrypt hash of the shared admin secret
	AdminTokenTTLMin int    // admin access token time-to-live in minutes
	BcryptCost       int    // bcrypt cost used when ADMIN_SECRET is given in clear text
	RabbitMQURL      string // broker for sale.confirmed events; empty disables publishing
	LogLevel         string // debug, info, warn or error
	ShutdownTimeout  time.Duration
}

// Load reads configuration values from environment variables and returns a
// Config.  Missing or malformed required variables cause the program to
// exit with a fatal log message.
func Load() Config {
	cfg, err := load(os.LookupEnv)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

type lookupFunc func(string) (string, bool)

func load(lookup lookupFunc) (Config, error) {
	r := reader{lookup: lookup}
	cfg := Config{
		Env:              r.must("APP_ENV"),
		Port:             r.must("APP_PORT"),
		DBUser:           r.must("DB_USER"),
		DBPass:           r.opt("DB_PASS", ""),
		DBHost:           r.must("DB_HOST"),
		DBPort:           r.must("DB_PORT"),
		DBName:           r.must("DB_NAME"),
		DBMaxOpenConns:   r.optInt("DB_MAX_OPEN_CONNS", 25),
		JWTSecret:        r.must("JWT_SECRET"),
		AdminTokenTTLMin: r.optInt("ADMIN_TOKEN_TTL_MIN", 120),
		BcryptCost:       r.optInt("BCRYPT_COST", bcrypt.DefaultCost),
		RabbitMQURL:      r.opt("RABBITMQ_URL", r.opt("AMQP_URL", "")),
		LogLevel:         r.opt("LOG_LEVEL", "info"),
		ShutdownTimeout:  r.optDur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if r.err != nil {
		return Config{}, r.err
	}

	hash, err := adminSecretHash(r, cfg.BcryptCost)
	if err != nil {
		return Config{}, err
	}
	cfg.AdminSecretHash = hash
	return cfg, nil
}

// adminSecretHash prefers ADMIN_SECRET_HASH and otherwise hashes
// ADMIN_SECRET once at startup.
func adminSecretHash(r reader, cost int) ([]byte, error) {
	if h := r.opt("ADMIN_SECRET_HASH", ""); h != "" {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_SECRET_HASH: %w", err)
		}
		return []byte(h), nil
	}
	secret := r.opt("ADMIN_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("missing required env var: ADMIN_SECRET_HASH or ADMIN_SECRET")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %d", cost)
	}
	h, err := utils.HashSecret(secret, cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin secret: %w", err)
	}
	return h, nil
}

// reader remembers the first missing or malformed variable so Load can
// report it once.
type reader struct {
	lookup lookupFunc
	err    error
}

func (r *reader) must(key string) string {
	v, ok := r.lookup(key)
	if (!ok || v == "") && r.err == nil {
		r.err = fmt.Errorf("missing required env var: %s", key)
	}
	return v
}

func (r reader) opt(key, def string) string {
	if v, ok := r.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (r *reader) optInt(key string, def int) int {
	s := r.opt(key, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("invalid int for %s: %q", key, s)
	}
	return n
}

func (r *reader) optDur(key string, def time.Duration) time.Duration {
	s := r.opt(key, "")
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("invalid duration for %s: %q", key, s)
	}
	return d
}
