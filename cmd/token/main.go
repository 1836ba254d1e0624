// ブリッジ呼び出し用のBearerトークンを発行するコマンド。
// BRIDGE_JWT_SECRET を設定したブリッジに対して使用する。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nao1215/twitter-bridge/pkg/middleware"
)

func main() {
	client := flag.String("client", "default", "トークンに埋め込むクライアント名")
	ttl := flag.Duration("ttl", 0, "有効期限（0の場合は無期限）")
	flag.Parse()

	secret := os.Getenv("BRIDGE_JWT_SECRET")
	if secret == "" {
		log.Fatal("BRIDGE_JWT_SECRET が設定されていません")
	}

	token, err := middleware.GenerateJWT(secret, *client, *ttl)
	if err != nil {
		log.Fatalf("トークンの発行に失敗: %v", err)
	}
	fmt.Println(token)
}
