package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/twitter-bridge/internal/config"
	"github.com/nao1215/twitter-bridge/pkg/httpclient"
	"github.com/nao1215/twitter-bridge/pkg/middleware"
)

const (
	// runningMessage は GET / が返すステータス文言。
	runningMessage = "Twitter Bridge Server is running!"
	// readHeaderTimeout はリクエストヘッダー読み取りの上限時間。
	readHeaderTimeout = 10 * time.Second
	// shutdownTimeout は停止時に処理中のリクエストを待つ上限時間。
	shutdownTimeout = 10 * time.Second
)

// Server はTwitterブリッジのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// upstream は上流APIクライアント。
	upstream upstreamAPI
	// userID はタイムライン取得対象のアカウントID。
	userID string
	// jwtSecret が空でない場合、転送エンドポイントにBearer認証を要求する。
	jwtSecret string
}

// NewServer は設定から新しいブリッジサーバーを生成する。
// 認証情報の欠落は警告ログのみで、エラーにはしない。
func NewServer(cfg config.Config) (*Server, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("上流APIのベースURLが設定されていません")
	}
	if missing := cfg.Credentials.Missing(); len(missing) > 0 {
		log.Printf("[WARN] 認証情報が未設定です。上流APIで認証に失敗します: %s", strings.Join(missing, ", "))
	}

	client := httpclient.New(cfg.BaseURL, httpclient.Keys{
		ConsumerKey:    cfg.Credentials.APIKey,
		ConsumerSecret: cfg.Credentials.APISecret,
		Token:          cfg.Credentials.AccessToken,
		TokenSecret:    cfg.Credentials.AccessTokenSecret,
	}, cfg.Timeout)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(cfg.AllowedOrigins))
	}

	s := &Server{
		router:    router,
		port:      cfg.Port,
		upstream:  client,
		userID:    cfg.UserID,
		jwtSecret: cfg.JWTSecret,
	}
	s.setupRoutes()

	return s, nil
}

// Handler はルーターをhttp.Handlerとして返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまで待つ。
// キャンセル後は処理中のリクエストの完了を待ってから戻る。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
	case <-ctx.Done():
	}

	log.Printf("シャットダウンを開始します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
	}
	return nil
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": runningMessage})
	})

	// ヘルスチェック（ホスティング環境の死活監視用）
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := s.router.Group("")
	if s.jwtSecret != "" {
		api.Use(middleware.JWTAuth(s.jwtSecret))
	}
	{
		api.POST("/tweet", s.handlePostTweet())
		api.GET("/timeline", s.handleGetTimeline())
	}
}

// handlePostTweet はツイート投稿を上流APIに転送するハンドラを返す。
func (s *Server) handlePostTweet() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			s.respondFailure(c, "post_tweet", localError(fmt.Errorf("リクエストボディの読み取りに失敗: %w", err)))
			return
		}

		text, f := parseTweetRequest(raw)
		if f != nil {
			s.respondFailure(c, "post_tweet", f)
			return
		}

		data, f := s.forwardTweet(s.upstreamContext(c), text)
		if f != nil {
			s.respondFailure(c, "post_tweet", f)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
	}
}

// handleGetTimeline はタイムライン取得を上流APIに転送するハンドラを返す。
func (s *Server) handleGetTimeline() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, f := s.forwardTimeline(s.upstreamContext(c))
		if f != nil {
			s.respondFailure(c, "get_timeline", f)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
	}
}

// upstreamContext は上流呼び出し用にリクエストIDを載せたコンテキストを返す。
func (s *Server) upstreamContext(c *gin.Context) context.Context {
	return httpclient.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))
}

// respondFailure は失敗結果をログに残し、JSONレスポンスに変換する。
func (s *Server) respondFailure(c *gin.Context, op string, f *Failure) {
	switch f.Kind {
	case KindLocal, KindConfig:
		log.Printf("%s でエラー: request_id=%s, kind=%s, error=%s", op, middleware.GetRequestID(c), f.Kind, f.Message)
	}
	c.JSON(f.Status, f.body())
}
