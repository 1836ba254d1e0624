package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/nao1215/twitter-bridge/pkg/httpclient"
)

const (
	// tweetPath はツイート作成エンドポイント。
	tweetPath = "2/tweets"
	// timelineMaxResults はタイムライン取得件数。
	timelineMaxResults = 10
	// timelineTweetFields はタイムライン取得時に要求するフィールド。
	timelineTweetFields = "created_at,text"
	// logPreviewRunes はログに残す投稿テキストの文字数。
	logPreviewRunes = 50
)

// upstreamAPI は上流APIクライアントのインターフェース。
type upstreamAPI interface {
	PostJSON(ctx context.Context, path string, body any) (*httpclient.Response, error)
	Get(ctx context.Context, path string, query any) (*httpclient.Response, error)
}

// tweetRequest はPOST /tweet のリクエストボディ。
// textは型を検証せず、受け取ったJSON値をそのまま上流に渡す。
type tweetRequest struct {
	Text json.RawMessage `json:"text"`
}

// timelineQuery はユーザーツイート取得時の固定クエリ。
type timelineQuery struct {
	MaxResults  int    `url:"max_results"`
	TweetFields string `url:"tweet.fields"`
}

// parseTweetRequest はリクエストボディからtextを取り出す。
// 空ボディとJSONのnullはtext未指定として扱い、構文エラーはKindLocalとする。
func parseTweetRequest(raw []byte) (json.RawMessage, *Failure) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, invalidInput("No text provided")
	}

	var req tweetRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, localError(fmt.Errorf("リクエストボディの解析に失敗: %w", err))
	}
	if isFalsy(req.Text) {
		return nil, invalidInput("No text provided")
	}
	return req.Text, nil
}

// forwardTweet はツイートを上流APIに投稿し、成功時は上流のJSONボディを返す。
// 上流が201以外を返した場合はKindUpstreamの失敗となる。
func (s *Server) forwardTweet(ctx context.Context, text json.RawMessage) (json.RawMessage, *Failure) {
	payload := map[string]json.RawMessage{"text": text}

	resp, err := s.upstream.PostJSON(ctx, tweetPath, payload)
	if err != nil {
		return nil, localError(err)
	}

	if resp.StatusCode != http.StatusCreated {
		log.Printf("ツイート投稿に失敗: status=%d, body=%s", resp.StatusCode, resp.Body)
		return nil, upstreamError("Failed to post tweet", resp.StatusCode, resp.Body)
	}

	data, f := decodeUpstream(resp.Body)
	if f != nil {
		return nil, f
	}
	log.Printf("ツイートを投稿しました: %s...", preview(text, logPreviewRunes))
	return data, nil
}

// forwardTimeline は設定されたアカウントの最新ツイートを上流APIから取得する。
// アカウントIDが未設定の場合は上流を呼び出さずKindConfigの失敗を返す。
func (s *Server) forwardTimeline(ctx context.Context) (json.RawMessage, *Failure) {
	if s.userID == "" {
		return nil, configError("User ID not configured")
	}

	path := "2/users/" + url.PathEscape(s.userID) + "/tweets"
	resp, err := s.upstream.Get(ctx, path, &timelineQuery{
		MaxResults:  timelineMaxResults,
		TweetFields: timelineTweetFields,
	})
	if err != nil {
		return nil, localError(err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("タイムライン取得に失敗: status=%d, body=%s", resp.StatusCode, resp.Body)
		return nil, upstreamError("Failed to get timeline", resp.StatusCode, resp.Body)
	}

	return decodeUpstream(resp.Body)
}

// decodeUpstream は上流の成功レスポンスがJSONであることを確認する。
func decodeUpstream(body []byte) (json.RawMessage, *Failure) {
	var data json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, localError(fmt.Errorf("上流レスポンスの解析に失敗: %w", err))
	}
	return data, nil
}

// isFalsy はJSON値が偽とみなされるかを判定する。
// 未指定、null、false、0、空文字列、空配列、空オブジェクトが該当する。
func isFalsy(raw json.RawMessage) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return true
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return true
	}
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}

// preview はログ用にtextの先頭n文字を返す。
// 文字列以外のJSON値はエンコードされた表現を切り詰める。
func preview(raw json.RawMessage, n int) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
