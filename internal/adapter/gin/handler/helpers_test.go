package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"feedback-service/internal/adapter/gin/middleware"
	sessionstore "feedback-service/internal/adapter/session"
)

const testCookie = "session_id"

type testEnv struct {
	router   *gin.Engine
	sessions *sessionstore.RedisStore
	redis    *miniredis.Miniredis
	cookie   CookieConfig
	log      *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	sessions := sessionstore.NewRedisStore(client, time.Hour, log)

	r := gin.New()
	r.Use(middleware.Session(sessions, testCookie, log))

	return &testEnv{
		router:   r,
		sessions: sessions,
		redis:    mr,
		cookie:   CookieConfig{Name: testCookie, MaxAge: 3600},
		log:      log,
	}
}

// login creates a session for username and returns its id.
func (e *testEnv) login(t *testing.T, username string) string {
	id, err := e.sessions.Create(context.Background(), username)
	require.NoError(t, err)
	return id
}

func (e *testEnv) do(method, path string, body any, sessionID string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: sessionID})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}
