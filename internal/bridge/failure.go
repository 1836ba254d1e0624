package bridge

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind は転送処理の失敗の分類。
type Kind int

const (
	// KindInvalidInput は呼び出し元の入力不備。400を返す。
	KindInvalidInput Kind = iota + 1
	// KindConfig は必要な設定値の欠落。500を返す。
	KindConfig
	// KindUpstream は上流APIが成功以外のステータスを返した場合。上流のステータスをそのまま返す。
	KindUpstream
	// KindLocal はネットワークエラーやシリアライズエラーなどの予期しない失敗。500を返す。
	KindLocal
)

// String はログ出力用の名前を返す。
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindConfig:
		return "config"
	case KindUpstream:
		return "upstream"
	case KindLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Failure は転送処理の失敗結果。ハンドラーの境界でHTTPレスポンスに変換される。
type Failure struct {
	// Kind は失敗の分類。
	Kind Kind
	// Status は呼び出し元に返すHTTPステータスコード。
	Status int
	// Message はレスポンスのerrorキーに入るメッセージ。
	Message string
	// Details は上流APIのレスポンスボディ。KindUpstreamの場合のみ使用する。
	Details string
}

func invalidInput(message string) *Failure {
	return &Failure{Kind: KindInvalidInput, Status: http.StatusBadRequest, Message: message}
}

func configError(message string) *Failure {
	return &Failure{Kind: KindConfig, Status: http.StatusInternalServerError, Message: message}
}

func upstreamError(message string, status int, body []byte) *Failure {
	return &Failure{Kind: KindUpstream, Status: status, Message: message, Details: string(body)}
}

func localError(err error) *Failure {
	return &Failure{Kind: KindLocal, Status: http.StatusInternalServerError, Message: err.Error()}
}

// body はレスポンスのエンベロープを返す。
func (f *Failure) body() gin.H {
	if f.Kind == KindUpstream {
		return gin.H{"error": f.Message, "details": f.Details}
	}
	return gin.H{"error": f.Message}
}
