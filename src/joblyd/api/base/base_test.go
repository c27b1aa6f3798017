package base

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bitswalk/jobly/src/common/version"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", h.HandleRoot)
	router.GET("/health", h.HandleHealth)
	router.GET("/version", h.HandleVersion)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHandleHealth(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("bucket gone") })

	t.Run("healthy without storage", func(t *testing.T) {
		w := serve(NewHandler(Config{Database: ok}), "/health")
		require.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, map[string]string{"database": "ok"}, resp.Checks)
	})

	t.Run("storage down", func(t *testing.T) {
		w := serve(NewHandler(Config{Database: ok, Storage: down}), "/health")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "bucket gone", resp.Checks["storage"])
	})
}

func TestHandleVersionAndRoot(t *testing.T) {
	SetVersionInfo(version.New("1.2.3", "2026-01-01", "abc1234"))
	h := NewHandler(Config{})

	w := serve(h, "/version")
	require.Equal(t, http.StatusOK, w.Code)
	var info version.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc1234", info.GitCommit)

	w = serve(h, "/")
	require.Equal(t, http.StatusOK, w.Code)
	var root APIInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.Equal(t, "1.2.3", root.Version)
	assert.Equal(t, "/auth/token", root.Endpoints.Auth.Token)
}
