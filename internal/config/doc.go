// Package config はブリッジサーバーの起動時設定を提供する。
//
// 設定はプロセス起動時に環境変数から一度だけ読み込まれ、以降は不変の値として
// サーバーに明示的に渡される。
package config
