package config

import (
	"slices"
	"testing"
	"time"
)

// mapEnv はmapから値を返すgetenv関数を生成する。
func mapEnv(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

// TestLoad はLoad関数を検証する。
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("未設定の場合にデフォルト値が使われること", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(mapEnv(nil))
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if cfg.Port != "5000" {
			t.Errorf("Port = %q, want %q", cfg.Port, "5000")
		}
		if cfg.BaseURL != DefaultBaseURL {
			t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
		}
		if cfg.UserID != "" {
			t.Errorf("UserID = %q, want empty", cfg.UserID)
		}
		if cfg.JWTSecret != "" {
			t.Errorf("JWTSecret = %q, want empty", cfg.JWTSecret)
		}
		if len(cfg.AllowedOrigins) != 0 {
			t.Errorf("AllowedOrigins = %v, want empty", cfg.AllowedOrigins)
		}
	})

	t.Run("環境変数の値が反映されること", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(mapEnv(map[string]string{
			"TWITTER_API_KEY":             "key",
			"TWITTER_API_SECRET":          "secret",
			"TWITTER_ACCESS_TOKEN":        "token",
			"TWITTER_ACCESS_TOKEN_SECRET": "token-secret",
			"TWITTER_USER_ID":             "12345",
			"PORT":                        "8080",
			"TWITTER_API_BASE_URL":        "http://localhost:9999",
			"TWITTER_API_TIMEOUT":         "5s",
			"BRIDGE_JWT_SECRET":           "jwt",
			"BRIDGE_ALLOWED_ORIGINS":      "http://a.example, ,https://b.example",
		}))
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}

		want := Credentials{
			APIKey:            "key",
			APISecret:         "secret",
			AccessToken:       "token",
			AccessTokenSecret: "token-secret",
		}
		if cfg.Credentials != want {
			t.Errorf("Credentials = %+v, want %+v", cfg.Credentials, want)
		}
		if cfg.UserID != "12345" {
			t.Errorf("UserID = %q, want %q", cfg.UserID, "12345")
		}
		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want %q", cfg.Port, "8080")
		}
		// 末尾スラッシュが補われる
		if cfg.BaseURL != "http://localhost:9999/" {
			t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "http://localhost:9999/")
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
		}
		if cfg.JWTSecret != "jwt" {
			t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "jwt")
		}
		wantOrigins := []string{"http://a.example", "https://b.example"}
		if !slices.Equal(cfg.AllowedOrigins, wantOrigins) {
			t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, wantOrigins)
		}
	})

	t.Run("PORTが数値でない場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(mapEnv(map[string]string{"PORT": "http"})); err == nil {
			t.Fatal("Load()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("タイムアウトが解析できない場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(mapEnv(map[string]string{"TWITTER_API_TIMEOUT": "soon"})); err == nil {
			t.Fatal("Load()がエラーを返すべきだが、nilが返った")
		}
	})

	t.Run("タイムアウトが0以下の場合にエラーが返ること", func(t *testing.T) {
		t.Parallel()

		if _, err := Load(mapEnv(map[string]string{"TWITTER_API_TIMEOUT": "0s"})); err == nil {
			t.Fatal("Load()がエラーを返すべきだが、nilが返った")
		}
	})
}

// TestCredentialsMissing は未設定の認証情報の検出を検証する。
func TestCredentialsMissing(t *testing.T) {
	t.Parallel()

	t.Run("すべて設定済みの場合は空であること", func(t *testing.T) {
		t.Parallel()

		c := Credentials{APIKey: "a", APISecret: "b", AccessToken: "c", AccessTokenSecret: "d"}
		if got := c.Missing(); len(got) != 0 {
			t.Errorf("Missing() = %v, want empty", got)
		}
	})

	t.Run("未設定の環境変数名が返ること", func(t *testing.T) {
		t.Parallel()

		c := Credentials{APIKey: "a", AccessToken: "c"}
		want := []string{"TWITTER_API_SECRET", "TWITTER_ACCESS_TOKEN_SECRET"}
		if got := c.Missing(); !slices.Equal(got, want) {
			t.Errorf("Missing() = %v, want %v", got, want)
		}
	})
}
