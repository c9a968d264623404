package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	sessionstore "feedback-service/internal/adapter/session"
	"feedback-service/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== REQUEST ID TESTS ====================

func TestRequestID(t *testing.T) {
	valid := uuid.New().String()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when missing", incoming: ""},
		{name: "kept when valid", incoming: valid, keep: true},
		{name: "replaced when malformed", incoming: "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID())

			var seen string
			r.GET("/", func(c *gin.Context) {
				seen = logger.GetRequestID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(logger.RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			header := w.Header().Get(logger.RequestIDHeader)
			assert.Equal(t, seen, header)
			_, err := uuid.Parse(header)
			assert.NoError(t, err)
			if tt.keep {
				assert.Equal(t, tt.incoming, header)
			} else {
				assert.NotEqual(t, tt.incoming, header)
			}
		})
	}
}

// ==================== LOGGER / RECOVERY TESTS ====================

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(RequestID(), Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Contains(t, entries[0].ContextMap(), "request_id")
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

// ==================== SESSION TESTS ====================

func setupSession(t *testing.T) (*gin.Engine, *sessionstore.RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	store := sessionstore.NewRedisStore(client, time.Hour, log)

	r := gin.New()
	r.Use(Session(store, "session_id", log))
	r.GET("/whoami", func(c *gin.Context) {
		identity := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"username":   identity.Username(),
			"session_id": SessionIDFrom(c),
			"logged_as":  logger.GetUsername(c.Request.Context()),
		})
	})
	return r, store, mr
}

func whoami(r *gin.Engine, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession_Authenticated(t *testing.T) {
	r, store, _ := setupSession(t)

	id, err := store.Create(context.Background(), "user1")
	require.NoError(t, err)

	w := whoami(r, id)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"user1","session_id":"`+id+`","logged_as":"user1"}`, w.Body.String())
}

func TestSession_Anonymous(t *testing.T) {
	r, _, _ := setupSession(t)

	for _, cookie := range []string{"", "unknown-session"} {
		w := whoami(r, cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"username":"","session_id":"","logged_as":""}`, w.Body.String())
	}
}

func TestSession_StoreDownIsAnonymous(t *testing.T) {
	r, _, mr := setupSession(t)
	mr.Close()

	w := whoami(r, "abc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"","session_id":"","logged_as":""}`, w.Body.String())
}

func TestIdentityFrom_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, IdentityFrom(c).IsAuthenticated())
	assert.Empty(t, SessionIDFrom(c))
}
