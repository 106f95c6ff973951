package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/roombook/pkg/httpclient"
)

// TestRequestID はRequestIDミドルウェアを検証する。
func TestRequestID(t *testing.T) {
	t.Parallel()

	newRouter := func(seen *string, fromCtx *string) *gin.Engine {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/health", func(c *gin.Context) {
			*seen = GetRequestID(c)
			*fromCtx, _ = httpclient.RequestIDFrom(c.Request.Context())
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("ヘッダーがない場合はUUIDが採番されること", func(t *testing.T) {
		t.Parallel()

		var seen, fromCtx string
		w := httptest.NewRecorder()
		newRouter(&seen, &fromCtx).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
		assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
		assert.Equal(t, seen, fromCtx)
	})

	t.Run("クライアントのリクエストIDを引き継ぐこと", func(t *testing.T) {
		t.Parallel()

		var seen, fromCtx string
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "client-req-1")
		w := httptest.NewRecorder()
		newRouter(&seen, &fromCtx).ServeHTTP(w, req)

		assert.Equal(t, "client-req-1", seen)
		assert.Equal(t, "client-req-1", fromCtx)
		assert.Equal(t, "client-req-1", w.Header().Get("X-Request-ID"))
	})

	t.Run("長すぎるリクエストIDは採番し直すこと", func(t *testing.T) {
		t.Parallel()

		var seen, fromCtx string
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", strings.Repeat("a", 200))
		w := httptest.NewRecorder()
		newRouter(&seen, &fromCtx).ServeHTTP(w, req)

		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}

// TestLogger はアクセスログミドルウェアを検証する。
func TestLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "2xxはINFOで出力されること", status: http.StatusCreated, wantLevel: "level=INFO"},
		{name: "4xxはWARNで出力されること", status: http.StatusNotFound, wantLevel: "level=WARN"},
		{name: "5xxはERRORで出力されること", status: http.StatusInternalServerError, wantLevel: "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			router := gin.New()
			router.Use(RequestID(), Logger(slog.New(slog.NewTextHandler(&buf, nil))))
			router.DELETE("/reservations/:id", func(c *gin.Context) {
				c.Status(tt.status)
			})

			req := httptest.NewRequest(http.MethodDelete, "/reservations/1", nil)
			req.Header.Set("X-Request-ID", "req-log")
			router.ServeHTTP(httptest.NewRecorder(), req)

			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "method=DELETE")
			assert.Contains(t, out, "path=/reservations/1")
			assert.Contains(t, out, "request_id=req-log")
		})
	}
}

// TestLogger_AuthenticatedEmail は認証済みの利用者がアクセスログに出力されることを検証する。
func TestLogger_AuthenticatedEmail(t *testing.T) {
	t.Parallel()

	newRouter := func(buf *bytes.Buffer) *gin.Engine {
		router := gin.New()
		router.Use(Logger(slog.New(slog.NewTextHandler(buf, nil))))
		router.GET("/reservations", JWTAuth(testSecret), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	t.Run("認証済みの場合はメールアドレスが出力されること", func(t *testing.T) {
		t.Parallel()

		token, err := GenerateJWT(testSecret, "john", "john@example.com", time.Hour)
		require.NoError(t, err)

		var buf bytes.Buffer
		req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		newRouter(&buf).ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, buf.String(), "email=john@example.com")
		assert.Contains(t, buf.String(), "level=INFO")
	})

	t.Run("未認証の場合はメールアドレスが出力されないこと", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		newRouter(&buf).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reservations", nil))

		assert.Contains(t, buf.String(), "status=401")
		assert.NotContains(t, buf.String(), "email=")
	})
}
