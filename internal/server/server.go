package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"funweb/internal/config"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	logger     *zap.Logger
	fsys       fs.FS
	banner     io.Writer
	engine     *gin.Engine
	httpServer *http.Server
}

// Option は Server の生成オプション
type Option func(*Server)

// WithFS は配信するファイルシステムを差し替える
// 指定しない場合は config の Root ディレクトリを使う
func WithFS(fsys fs.FS) Option {
	return func(s *Server) {
		s.fsys = fsys
	}
}

// WithBanner は起動メッセージの出力先を差し替える
func WithBanner(w io.Writer) Option {
	return func(s *Server) {
		s.banner = w
	}
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		banner: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = os.DirFS(cfg.Server.Root)
	}

	s.engine = gin.New()
	s.engine.HandleMethodNotAllowed = true
	s.setupRoutes()

	s.httpServer = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	s.engine.Use(requestLogger(s.logger), gin.Recovery())
	s.engine.SetHTMLTemplate(listingTemplate)

	static := NewStaticHandler(s.fsys, s.config.Server.Index)
	s.engine.GET("/*filepath", static.Serve)
	s.engine.HEAD("/*filepath", static.Serve)
}

// Handler はルーティング済みのハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.engine
}

// PrintBanner は起動メッセージを出力する
func PrintBanner(w io.Writer, url string) error {
	_, err := fmt.Fprintf(w, "Serving on %s\n", url)
	return err
}

// bannerURL は設定のホストと実際にリッスンしたポートからURLを組み立てる
// ポート0で起動した場合は割り当てられたポートが入る
func (s *Server) bannerURL(addr net.Addr) string {
	port := s.config.Server.Port
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	return "http://" + net.JoinHostPort(s.config.Server.Host, strconv.Itoa(port))
}

// Start はサーバーを起動し、ctx がキャンセルされるまでブロックする
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ServerAddress())
	if err != nil {
		return fmt.Errorf("サーバーの起動に失敗: %w", err)
	}

	url := s.bannerURL(ln.Addr())
	if err := PrintBanner(s.banner, url); err != nil {
		_ = ln.Close()
		return fmt.Errorf("起動メッセージの出力に失敗: %w", err)
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		s.logger.Info("HTTPサーバーを起動しています",
			zap.String("url", url),
			zap.String("root", s.config.Server.Root),
			zap.String("index", s.config.Server.Index))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの実行に失敗: %w", err)
		}
	}()

	// コンテキストかサーバーエラーを待つ
	select {
	case <-ctx.Done():
		s.logger.Info("コンテキストがキャンセルされました")
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.logger.Info("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.logger.Info("サーバーが正常にシャットダウンされました")
	return nil
}
