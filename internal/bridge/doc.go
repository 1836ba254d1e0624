// Package bridge はTwitter APIへの中継サーバーの内部実装を提供する。
//
// JSON形式の小さなHTTP APIを公開し、ツイート投稿とタイムライン取得を
// OAuth1署名付きで上流APIへ転送する。上流のステータスコードとボディは
// ほぼそのまま呼び出し元に返す。状態は持たず、各リクエストは独立している。
package bridge
