package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// よく使う MIME タイプ。応答側が省略した場合の補完に使います。
const (
	MIMEPNG  = "image/png"
	MIMEJPEG = "image/jpeg"
	MIMEMP4  = "video/mp4"
)

// ImageAsset は生成・編集・合成の各段階で受け渡しされるラスター画像です。
// Data は常にデコード済みのバイナリで保持し、転送時にのみ Base64 化します。
type ImageAsset struct {
	MIMEType string
	Data     []byte
}

// VideoAsset は生成された動画のバイナリペイロードです。
type VideoAsset struct {
	MIMEType string
	Data     []byte
}

// DataURI は `data:<mime>;base64,<payload>` 形式の自己完結文字列を返します。
// UI への受け渡し形式はこの一種類のみです。
func (a ImageAsset) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", a.MIMEType, base64.StdEncoding.EncodeToString(a.Data))
}

// IsZero はデータを持たない空アセットかどうかを返します。
func (a ImageAsset) IsZero() bool {
	return len(a.Data) == 0
}

// ParseDataURI は data URI 文字列を ImageAsset に復元します。
// ブラウザ由来の入力（アップロード画像など）を受け入れる境界で使います。
func ParseDataURI(s string) (ImageAsset, error) {
	if !strings.HasPrefix(s, "data:") {
		return ImageAsset{}, fmt.Errorf("data URI 形式ではありません")
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return ImageAsset{}, fmt.Errorf("data URI の区切りが見つかりません")
	}
	mimeType, _, _ := strings.Cut(meta, ";")
	if mimeType == "" {
		return ImageAsset{}, fmt.Errorf("data URI に MIME タイプがありません")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return ImageAsset{}, fmt.Errorf("data URI の Base64 復号に失敗しました: %w", err)
	}
	return ImageAsset{MIMEType: mimeType, Data: data}, nil
}
