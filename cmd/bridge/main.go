// Twitterブリッジサービスのエントリポイント。
// 環境変数から設定を読み込み、ツイート投稿とタイムライン取得を
// 上流APIに中継するHTTPサーバーを起動する。
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/twitter-bridge/internal/bridge"
	"github.com/nao1215/twitter-bridge/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	server, err := bridge.NewServer(cfg)
	if err != nil {
		log.Fatalf("ブリッジサーバーの初期化に失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("ブリッジサービスを起動します: :%s", cfg.Port)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("ブリッジサービスの実行に失敗: %v", err)
	}
	log.Printf("ブリッジサービスを停止しました")
}
