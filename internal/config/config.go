package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPort はPORT未設定時のリッスンポート。
	DefaultPort = "5000"
	// DefaultBaseURL は上流APIのベースURL。
	DefaultBaseURL = "https://api.twitter.com/"
	// DefaultTimeout は上流APIへのリクエストタイムアウト。
	DefaultTimeout = 30 * time.Second
)

// Credentials はOAuth1署名に使う4つの静的な秘密情報。
type Credentials struct {
	// APIKey はコンシューマーキー。
	APIKey string
	// APISecret はコンシューマーシークレット。
	APISecret string
	// AccessToken はアクセストークン。
	AccessToken string
	// AccessTokenSecret はアクセストークンシークレット。
	AccessTokenSecret string
}

// Missing は未設定の認証情報に対応する環境変数名を返す。
func (c Credentials) Missing() []string {
	var missing []string
	for _, kv := range []struct {
		key   string
		value string
	}{
		{"TWITTER_API_KEY", c.APIKey},
		{"TWITTER_API_SECRET", c.APISecret},
		{"TWITTER_ACCESS_TOKEN", c.AccessToken},
		{"TWITTER_ACCESS_TOKEN_SECRET", c.AccessTokenSecret},
	} {
		if kv.value == "" {
			missing = append(missing, kv.key)
		}
	}
	return missing
}

// Config はブリッジサーバーの設定。構築後は変更しない。
type Config struct {
	// Credentials は上流APIの認証情報。
	Credentials Credentials
	// UserID はタイムライン取得対象のアカウントID。空の場合 /timeline は500を返す。
	UserID string
	// Port はサーバーのリッスンポート。
	Port string
	// BaseURL は上流APIのベースURL。
	BaseURL string
	// Timeout は上流APIへのリクエストタイムアウト。
	Timeout time.Duration
	// JWTSecret が空でない場合、/tweet と /timeline にBearer認証を要求する。
	JWTSecret string
	// AllowedOrigins はCORSを許可するオリジン。
	AllowedOrigins []string
}

// Load は環境変数から設定を読み込む。
// getenvにはos.Getenvを渡す。テストでは任意の関数に差し替えられる。
func Load(getenv func(string) string) (Config, error) {
	envOr := func(key, defaultValue string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return defaultValue
	}

	port := envOr("PORT", DefaultPort)
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		return Config{}, fmt.Errorf("PORTの値が不正です: %q", port)
	}

	timeout := DefaultTimeout
	if v := getenv("TWITTER_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("TWITTER_API_TIMEOUTの解析に失敗: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("TWITTER_API_TIMEOUTは正の値である必要があります: %s", v)
		}
		timeout = d
	}

	baseURL := envOr("TWITTER_API_BASE_URL", DefaultBaseURL)
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return Config{
		Credentials: Credentials{
			APIKey:            getenv("TWITTER_API_KEY"),
			APISecret:         getenv("TWITTER_API_SECRET"),
			AccessToken:       getenv("TWITTER_ACCESS_TOKEN"),
			AccessTokenSecret: getenv("TWITTER_ACCESS_TOKEN_SECRET"),
		},
		UserID:         getenv("TWITTER_USER_ID"),
		Port:           port,
		BaseURL:        baseURL,
		Timeout:        timeout,
		JWTSecret:      getenv("BRIDGE_JWT_SECRET"),
		AllowedOrigins: splitList(getenv("BRIDGE_ALLOWED_ORIGINS")),
	}, nil
}

// splitList はカンマ区切りの文字列を空要素を除いて分割する。
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
