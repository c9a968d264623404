package di

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"feedback-service/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	mr := miniredis.RunT(t)

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "app.db")
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = mr.Port()
	cfg.Auth.BcryptCost = 4
	return cfg
}

func TestNewContainer(t *testing.T) {
	c, err := NewContainer(testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.NotNil(t, c.DB)
	assert.NotNil(t, c.RedisClient)
	assert.NotNil(t, c.AuthUC)
	assert.NotNil(t, c.UserUC)
	assert.NotNil(t, c.FeedbackUC)

	w := httptest.NewRecorder()
	c.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewContainer_CacheDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = false

	c, err := NewContainer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NoError(t, c.Close())
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Driver = "oracle"

	_, err := NewContainer(cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "config validation failed")
}
