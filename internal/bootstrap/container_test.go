package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datakit/internal/config"
)

// fakeLogger records warnings so the tests can assert the fallback is reported.
type fakeLogger struct {
	warns []string
}

func (l *fakeLogger) Debug(module, message string, details map[string]interface{}) {}
func (l *fakeLogger) Info(module, message string, details map[string]interface{})  {}
func (l *fakeLogger) Warn(module, message string, details map[string]interface{}) {
	l.warns = append(l.warns, message)
}
func (l *fakeLogger) Error(module, message string, details map[string]interface{}) {}
func (l *fakeLogger) Sync() error                                                  { return nil }

func cacheConfig(redisURL string) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			RedisURL: redisURL,
			TTL:      time.Minute,
		},
	}
}

func TestNewEmployeeRepositoryMalformedRedisURLWarns(t *testing.T) {
	log := &fakeLogger{}

	repo := NewEmployeeRepository(nil, cacheConfig("not-a-redis-url"), log)

	require.NotNil(t, repo, "malformed REDIS_URL must fall back to the in-memory cache")
	require.Len(t, log.warns, 1)
	assert.Contains(t, log.warns[0], "Invalid REDIS_URL")
}

func TestNewEmployeeRepositoryNoRedisURLIsSilent(t *testing.T) {
	log := &fakeLogger{}

	repo := NewEmployeeRepository(nil, cacheConfig(""), log)

	require.NotNil(t, repo)
	assert.Empty(t, log.warns)
}

func TestNewEmployeeRepositoryValidRedisURL(t *testing.T) {
	log := &fakeLogger{}

	// redis clients connect lazily, so construction succeeds without a server.
	repo := NewEmployeeRepository(nil, cacheConfig("redis://localhost:6379/0"), log)

	require.NotNil(t, repo)
	assert.Empty(t, log.warns)
}
