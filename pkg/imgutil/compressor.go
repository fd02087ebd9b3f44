package imgutil

import (
	"bytes"
	"image"
	"image/jpeg"
)

// DefaultCompressionThreshold を超える入力画像は送信前に JPEG へ再圧縮します。
// インラインデータとして API へ渡すペイロードを抑えるための閾値です。
const (
	DefaultCompressionThreshold = 2 << 20 // 2MiB
	DefaultCompressionQuality   = 75
)

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に圧縮します。
// image.Decodeがサポートするフォーマットに対応しています。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressIfLarge は threshold を超える場合のみ JPEG 再圧縮した結果と
// その MIME タイプを返します。閾値以下・圧縮失敗時は入力をそのまま返します。
func CompressIfLarge(data []byte, mimeType string, threshold, quality int) ([]byte, string) {
	if len(data) <= threshold {
		return data, mimeType
	}
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data, mimeType
	}
	return compressed, "image/jpeg"
}
