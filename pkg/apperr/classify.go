package apperr

import (
	"errors"
	"strings"
)

// 利用者向けメッセージ。対処ヒントまで含めて一文面で完結させます。
const (
	msgServiceUnavailable = "Gemini API サービスが一時的に利用できません。" +
		"1〜2分おいて再試行するか、ページを更新してください。" +
		"VPN 利用中の場合は接続先リージョン（米国推奨）の変更も有効です。"
	msgInvalidCredential = "API キーが無効か、設定されていません。キーを再入力してください。"
	msgSafetyRejected    = "プロンプトが安全ガイドラインに抵触したため拒否されました。" +
		"別の表現に言い換えて再試行してください。"
	msgRateLimited = "API の利用上限に達しました。" +
		"1分ほど待つか、画像サイズの縮小・プロンプトの簡素化を試してください。"
)

// Classify は生エラーを文字列化して既知のパターンと照合し、分類済みエラーへ写像します。
// 照合順序に意味があります: サービス停止(503) → キー不正 → 安全性 → 上限 の順で判定し、
// どれにも該当しなければ元メッセージを包んだ一般エラーになります。
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	s := err.Error()
	switch {
	case contains(s, "503", "UNAVAILABLE"):
		return New(KindServiceUnavailable, msgServiceUnavailable, err)
	case contains(s, "API key not valid", "API key is missing", "API_KEY_INVALID"):
		return New(KindInvalidCredential, msgInvalidCredential, err)
	case contains(s, "SAFETY", "prompt could not be submitted"):
		return New(KindSafetyRejected, msgSafetyRejected, err)
	case contains(s, "429", "RESOURCE_EXHAUSTED", "quota"):
		return New(KindRateLimited, msgRateLimited, err)
	}
	return Newf(KindUnknown, err, "API リクエストに失敗しました: %s", s)
}

// IsRetryable は一時的な上限超過として再試行してよいエラーかを返します。
// 再試行が許されるのは割り当て・レート系のみです。
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if KindOf(err) == KindRateLimited {
		return true
	}
	return contains(err.Error(), "429", "RESOURCE_EXHAUSTED", "quota")
}

// IsModelUnavailable は「このモデルでは処理できない」系の失敗かを返します。
// フォールバック候補の次モデルへ進んでよい条件です。
func IsModelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return contains(err.Error(), "404", "not found", "not supported", "text output")
}

// IsFallbackTerminal はモデル個別ではなくエンドポイント全体の失敗
// （レート上限・権限不足）かを返します。該当する場合、残りの候補を
// 試しても同じ結果になるためフォールバックを打ち切ります。
func IsFallbackTerminal(err error) bool {
	if err == nil {
		return false
	}
	return contains(err.Error(), "429", "quota", "RESOURCE_EXHAUSTED", "403", "PERMISSION_DENIED")
}

func contains(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
