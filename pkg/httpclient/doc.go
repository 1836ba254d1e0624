// Package httpclient は上流APIへOAuth1署名付きHTTPリクエストを送るクライアントを提供する。
//
// レスポンスはステータスコードとボディをそのまま返し、成功・失敗の解釈は
// 呼び出し側に委ねる。ネットワークエラーやリクエスト構築の失敗のみを
// エラーとして返す。
package httpclient
