// Package utils は出力ファイル名まわりの小さな補助関数を提供します。
package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// ExtensionForMIME は、MIME タイプに対応するファイル拡張子を返します。
// 未知のタイプの場合は ".bin" を返します。
func ExtensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	default:
		return ".bin"
	}
}

// NewOutputName は衝突しない出力ファイル名を生成します。
// 形式は <prefix>-<ランダム8文字><拡張子> です。
func NewOutputName(prefix, mimeType string) string {
	return fmt.Sprintf("%s-%s%s", prefix, uuid.NewString()[:8], ExtensionForMIME(mimeType))
}
