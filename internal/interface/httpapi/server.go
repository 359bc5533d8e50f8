package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hairgator/recipe-rag/internal/core/recipe"
	"github.com/hairgator/recipe-rag/internal/core/retrieval"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 5 * time.Minute // ストリーミング生成があるため長め
	shutdownTimeout = 10 * time.Second
)

// Server はレシピ生成と検索のHTTP APIを提供する
type Server struct {
	httpServer *http.Server
	retriever  *retrieval.Service
	recipes    *recipe.Service
	logger     *slog.Logger
}

// ServerOption は Server のオプション設定
type ServerOption func(*Server)

// WithServerLogger は Server にロガーを設定する
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer は新しい Server を作成する
func NewServer(port int, retriever *retrieval.Service, recipes *recipe.Service, opts ...ServerOption) *Server {
	if retriever == nil {
		panic("httpapi.NewServer: retriever is nil")
	}
	if recipes == nil {
		panic("httpapi.NewServer: recipes is nil")
	}

	s := &Server{
		retriever: retriever,
		recipes:   recipes,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/recipe", s.handleRecipe)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/search", s.handleSearch)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withRequestLog(mux),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return s
}

// Handler はルーティング済みのHTTPハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run はサーバを起動し、ctx のキャンセルで graceful shutdown する
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return <-errCh
}

// withRequestLog はリクエストIDの採番とアクセスログを行うミドルウェア
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		s.logger.Info("http request",
			"requestId", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
