package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/roombook/internal/config"
	"github.com/nao1215/roombook/internal/mailer"
	"github.com/nao1215/roombook/pkg/middleware"
)

// serviceName はヘルスチェックで返すサービス名。
const serviceName = "reservation"

// Server は予約サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// cfg はサーバー設定。
	cfg *config.Config
	// service は予約処理を行うService。
	service *Service
	// logger はサーバーのロガー。
	logger *slog.Logger
}

// NewServer は新しい予約サーバーを生成する。
func NewServer(cfg *config.Config, service *Service, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if len(cfg.CORS.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	}

	s := &Server{
		router:  router,
		cfg:     cfg,
		service: service,
		logger:  logger,
	}
	s.setupRoutes()

	return s
}

// Handler はHTTPハンドラーを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run は設定されたポートでHTTPサーバーを起動し、ctxがキャンセルされると停止する。
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%s", s.cfg.HTTP.Port))
	if err != nil {
		return fmt.Errorf("ポート %s の待ち受けに失敗: %w", s.cfg.HTTP.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve はlnでHTTPリクエストを受け付ける。
// ctxがキャンセルされると処理中のリクエストの完了を待って停止する。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout,
		WriteTimeout: s.cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTPサーバーを起動", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTPサーバーが異常終了: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("HTTPサーバーを停止中")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("")
	if s.cfg.Auth.JWTSecret != "" {
		api.Use(middleware.JWTAuth(s.cfg.Auth.JWTSecret))
	}
	{
		reservations := api.Group("/reservations")
		{
			// 予約一覧取得
			reservations.GET("", s.handleList())
			// 予約作成
			reservations.POST("", s.handleCreate())
			// 予約取消
			reservations.DELETE("/:id", s.handleCancel())
		}
		// 送信済み通知一覧
		api.GET("/mailer/outbox", s.handleOutbox())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": serviceName})
	})
}

// handleList は予約一覧取得を処理するハンドラを返す。
func (s *Server) handleList() gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := s.service.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "予約一覧の取得に失敗しました"})
			s.logger.Error("予約一覧取得エラー", "error", err, "request_id", middleware.GetRequestID(c))
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// createReservationRequest は予約作成リクエストのJSON構造。
// ポインタにすることで、キーの欠落とnullのみを拒否し、空文字は受け付ける。
type createReservationRequest struct {
	// Name は利用者名。
	Name *string `json:"name" binding:"required"`
	// Email はメールアドレス。
	Email *string `json:"email" binding:"required"`
	// Room は予約する部屋。
	Room *string `json:"room" binding:"required"`
}

// handleCreate は予約作成を処理するハンドラを返す。
// 作成した予約をレスポンスとして返す。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("リクエストが不正です: %v", err)})
			return
		}

		r, err := s.service.Create(c.Request.Context(), CreateRequest{
			Name:  *req.Name,
			Email: *req.Email,
			Room:  *req.Room,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "予約の作成に失敗しました"})
			s.logger.Error("予約作成エラー", "error", err, "request_id", middleware.GetRequestID(c))
			return
		}

		c.JSON(http.StatusCreated, r)
	}
}

// handleCancel は予約取消を処理するハンドラを返す。
// 存在しない予約の場合はボディなしの404を返す。
func (s *Server) handleCancel() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "予約IDが不正です"})
			return
		}

		err = s.service.Cancel(c.Request.Context(), id)
		if errors.Is(err, ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "予約の取消に失敗しました"})
			s.logger.Error("予約取消エラー", "error", err, "request_id", middleware.GetRequestID(c))
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// handleOutbox は送信済み通知一覧の取得を処理するハンドラを返す。
func (s *Server) handleOutbox() gin.HandlerFunc {
	return func(c *gin.Context) {
		outbox := s.service.Outbox()
		if outbox == nil {
			outbox = []mailer.Message{}
		}
		c.JSON(http.StatusOK, outbox)
	}
}
