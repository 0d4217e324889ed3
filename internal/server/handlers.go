package server

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader はリクエストIDを返すヘッダー名
const RequestIDHeader = "X-Request-ID"

// StaticHandler はルートディレクトリのファイルを配信し、無ければ代替ページを返す
type StaticHandler struct {
	fsys  fs.FS
	index string
}

// NewStaticHandler は新しい StaticHandler を作成する
func NewStaticHandler(fsys fs.FS, index string) *StaticHandler {
	return &StaticHandler{
		fsys:  fsys,
		index: index,
	}
}

// Serve は GET/HEAD リクエストを処理する
func (h *StaticHandler) Serve(c *gin.Context) {
	route := Resolve(h.fsys, c.Request.URL.Path, h.index)

	var err error
	switch route.Kind {
	case RouteFound:
		err = h.serveFile(c, route.Path)
	case RouteRedirect:
		location := route.Path
		if c.Request.URL.RawQuery != "" {
			location += "?" + c.Request.URL.RawQuery
		}
		c.Redirect(http.StatusMovedPermanently, location)
	case RouteDirectory:
		err = h.serveListing(c, route.Path)
	default:
		c.Data(http.StatusNotFound, FallbackContentType, FallbackPage())
	}

	if err != nil {
		// 権限エラーなどは特別扱いせずこのリクエストだけ失敗させる
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// listingEntry はディレクトリ一覧の1行
type listingEntry struct {
	Name string // 表示名（ディレクトリは末尾 "/" 付き）
	Href string // 相対リンク
}

// serveListing はインデックスの無いディレクトリの一覧を返す
func (h *StaticHandler) serveListing(c *gin.Context, dir string) error {
	entries, err := fs.ReadDir(h.fsys, dir)
	if err != nil {
		return fmt.Errorf("ディレクトリの読み込みに失敗: %w", err)
	}

	items := make([]listingEntry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		items = append(items, listingEntry{Name: name, Href: name})
	}
	// 大文字小文字を区別せず名前順
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})

	c.HTML(http.StatusOK, listingTemplateName, gin.H{
		"Path":    c.Request.URL.Path,
		"Entries": items,
	})
	return nil
}

// serveFile はファイルを Content-Type 推定付きで配信する
func (h *StaticHandler) serveFile(c *gin.Context, name string) error {
	f, err := h.fsys.Open(name)
	if err != nil {
		return fmt.Errorf("ファイルのオープンに失敗: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("ファイル情報の取得に失敗: %w", err)
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(f)
		if err != nil {
			return fmt.Errorf("ファイルの読み込みに失敗: %w", err)
		}
		content = bytes.NewReader(data)
	}

	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), content)
	return nil
}

// requestLogger はリクエストIDを付与し、デバッグレベルでアクセスログを出す
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}
		logger.Debug("リクエストを処理しました", fields...)
	}
}
