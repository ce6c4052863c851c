package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func mapLookup(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"APP_ENV":      "test",
		"APP_PORT":     "8080",
		"DB_USER":      "theater",
		"DB_HOST":      "127.0.0.1",
		"DB_PORT":      "3306",
		"DB_NAME":      "theater",
		"JWT_SECRET":   "jwt-secret",
		"ADMIN_SECRET": "boleteria",
		"BCRYPT_COST":  "4",
	}
}

func TestLoad_HashesPlainAdminSecret(t *testing.T) {
	cfg, err := load(mapLookup(baseEnv()))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 120, cfg.AdminTokenTTLMin)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, bcrypt.CompareHashAndPassword(cfg.AdminSecretHash, []byte("boleteria")))
}

func TestLoad_PrefersHash(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("other"), bcrypt.MinCost)
	require.NoError(t, err)
	env := baseEnv()
	env["ADMIN_SECRET_HASH"] = string(h)

	cfg, err := load(mapLookup(env))
	require.NoError(t, err)
	assert.Equal(t, h, cfg.AdminSecretHash)
}

func TestLoad_MissingRequired(t *testing.T) {
	env := baseEnv()
	delete(env, "DB_HOST")
	_, err := load(mapLookup(env))
	assert.EqualError(t, err, "missing required env var: DB_HOST")
}

func TestLoad_MissingAdminSecret(t *testing.T) {
	env := baseEnv()
	delete(env, "ADMIN_SECRET")
	_, err := load(mapLookup(env))
	assert.ErrorContains(t, err, "ADMIN_SECRET")
}

func TestLoad_MalformedInt(t *testing.T) {
	env := baseEnv()
	env["ADMIN_TOKEN_TTL_MIN"] = "soon"
	_, err := load(mapLookup(env))
	assert.ErrorContains(t, err, "ADMIN_TOKEN_TTL_MIN")
}

func TestLoadReservationConfig(t *testing.T) {
	t.Setenv("HOLD_TTL", "45m")
	t.Setenv("SWEEP_INTERVAL", "-1s")
	t.Setenv("SEED_ON_START", "yes")

	cfg := LoadReservationConfig()
	assert.Equal(t, 45*time.Minute, cfg.HoldTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.True(t, cfg.SeedOnStart)
}

func TestLoadReservationConfig_Defaults(t *testing.T) {
	t.Setenv("HOLD_TTL", "")
	cfg := LoadReservationConfig()
	assert.Equal(t, 30*time.Minute, cfg.HoldTTL)
}

func TestLoadRateLimitConfig_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "10s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 50*time.Second, cfg.TTL)
	assert.Equal(t, "theater:rl:holds", cfg.Prefix)

	login := LoadLoginRateLimitConfig()
	assert.Equal(t, "ip", login.KeyStrategy)
}

func TestLoadRedisConfig_HostPortWins(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	assert.Equal(t, "redis:6379", LoadRedisConfig().Addr)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Methods["GET"])
	assert.True(t, cfg.Methods["HEAD"])
	assert.False(t, cfg.Methods["POST"])
}

func TestLoadConsumerConfig(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("AMQP_URL", "amqp://u:p@broker:5672/")
	t.Setenv("SALES_LOG_DIR", "/var/log/theater")

	cfg := LoadConsumerConfig()
	assert.Equal(t, "amqp://u:p@broker:5672/", cfg.RabbitMQURL)
	assert.Equal(t, "/var/log/theater", cfg.SalesLogDir)
	assert.Equal(t, "info", cfg.LogLevel)
}
