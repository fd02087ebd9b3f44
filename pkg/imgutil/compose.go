// Package imgutil は画像のピクセル処理（マスク合成・再圧縮）を提供します。
// ネットワークを伴わない決定的な処理のみを置きます。
package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/shouni/nano-banana-kit/pkg/apperr"
	"github.com/shouni/nano-banana-kit/pkg/domain"
)

// ApplyMask はマスクの赤チャンネルをアルファ値として元画像へ適用します。
// 白(255)は保持、黒(0)は透明です。マスクの寸法が元画像と異なる場合は
// 元画像の寸法へ再標本化してから適用します。出力はアルファ保持のため
// 常に PNG です。
func ApplyMask(original, mask domain.ImageAsset) (domain.ImageAsset, error) {
	srcImg, _, err := image.Decode(bytes.NewReader(original.Data))
	if err != nil {
		return domain.ImageAsset{}, apperr.Newf(apperr.KindDecodeError, err,
			"元画像をデコードできませんでした: %v", err)
	}
	maskImg, _, err := image.Decode(bytes.NewReader(mask.Data))
	if err != nil {
		return domain.ImageAsset{}, apperr.Newf(apperr.KindDecodeError, err,
			"マスク画像をデコードできませんでした: %v", err)
	}

	bounds := srcImg.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return domain.ImageAsset{}, apperr.New(apperr.KindCanvasError,
			"描画領域を確保できませんでした（元画像の寸法が不正です）", nil)
	}

	// アルファ非乗算の NRGBA に揃えてからピクセル単位で合成する
	src := toNRGBA(srcImg, width, height)
	maskN := toNRGBA(maskImg, width, height)

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = src.Pix[i+0]
		out.Pix[i+1] = src.Pix[i+1]
		out.Pix[i+2] = src.Pix[i+2]
		out.Pix[i+3] = maskN.Pix[i+0] // マスクは灰色前提なので R をアルファに使う
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return domain.ImageAsset{}, apperr.Newf(apperr.KindCanvasError, err,
			"合成結果のエンコードに失敗しました: %v", err)
	}
	return domain.ImageAsset{MIMEType: "image/png", Data: buf.Bytes()}, nil
}

// toNRGBA は img を指定寸法の NRGBA に変換します。寸法が異なる場合は
// 双一次補間で再標本化します。
func toNRGBA(img image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
