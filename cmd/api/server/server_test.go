package server

import (
	"context"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"feedback-service/internal/config"
)

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{HTTPPort: "0"}}
	srv := New(cfg, zaptest.NewLogger(t), http.NotFoundHandler())

	assert.Equal(t, ":0", srv.Gin.Addr)
	assert.Equal(t, 10*time.Second, srv.Gin.ReadTimeout)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	// Shutdown may race with ListenAndServe; either order ends Start without error
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestWithSignal(t *testing.T) {
	ctx, stop := WithSignal(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled by SIGTERM")
	}
}

func TestWithSignal_Stop(t *testing.T) {
	ctx, stop := WithSignal(context.Background())
	stop()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("stop did not cancel the context")
	}
}
