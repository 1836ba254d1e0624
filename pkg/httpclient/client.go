package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/dghubble/sling"
)

// Keys はOAuth1署名に使う認証情報。
type Keys struct {
	// ConsumerKey はAPIキー。
	ConsumerKey string
	// ConsumerSecret はAPIシークレット。
	ConsumerSecret string
	// Token はアクセストークン。
	Token string
	// TokenSecret はアクセストークンシークレット。
	TokenSecret string
}

// Response は上流APIのレスポンス。ボディは加工しない。
type Response struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ。
	Body []byte
}

// Client はOAuth1署名付きの上流API用HTTPクライアント。
type Client struct {
	// httpClient はOAuth1トランスポートを持つHTTPクライアント。
	httpClient *http.Client
	// base はベースURLを設定済みのリクエストビルダー。
	base *sling.Sling
}

// New は新しい上流API用HTTPクライアントを生成する。
// baseURLは末尾がスラッシュのURL（例: "https://api.twitter.com/"）を指定する。
// timeoutは1リクエストあたりの上限時間。
func New(baseURL string, keys Keys, timeout time.Duration) *Client {
	config := oauth1.NewConfig(keys.ConsumerKey, keys.ConsumerSecret)
	token := oauth1.NewToken(keys.Token, keys.TokenSecret)
	httpClient := config.Client(context.Background(), token)
	httpClient.Timeout = timeout

	return &Client{
		httpClient: httpClient,
		base:       sling.New().Base(baseURL).Set("Accept", "application/json"),
	}
}

// PostJSON は指定パスにJSONボディでPOSTリクエストを送信する。
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, c.base.New().Post(path).BodyJSON(body))
}

// Get は指定パスにGETリクエストを送信する。
// queryにはurlタグ付きの構造体を渡す。nilの場合はクエリを付与しない。
func (c *Client) Get(ctx context.Context, path string, query any) (*Response, error) {
	s := c.base.New().Get(path)
	if query != nil {
		s = s.QueryStruct(query)
	}
	return c.do(ctx, s)
}

// do はリクエストを組み立てて送信する共通処理。
func (c *Client) do(ctx context.Context, s *sling.Sling) (*Response, error) {
	req, err := s.Request()
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req = req.WithContext(ctx)

	// コンテキストからリクエストIDを伝播する
	if requestID, ok := ctx.Value(contextKeyRequestID).(string); ok {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyRequestID はコンテキストにリクエストIDを格納するためのキー。
const contextKeyRequestID contextKey = "request_id"

// WithRequestID はコンテキストにリクエストIDを設定する。
// 上流へのリクエストにX-Request-IDヘッダーとして付与される。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}
