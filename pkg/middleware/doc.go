// Package middleware はブリッジサーバーで使用するGinミドルウェアを提供する。
//
// パニックリカバリ、リクエストIDの付与、CORS設定、および
// 任意で有効化するBearerトークン認証を含む。
package middleware
