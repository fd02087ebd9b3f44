package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// テスト用のダミー画像（10x10の赤い正方形）を作成するヘルパー
func createDummyImageData(t *testing.T, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}

	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	default:
		t.Fatalf("unsupported format: %s", format)
	}

	if err != nil {
		t.Fatalf("failed to encode dummy image: %v", err)
	}
	return buf.Bytes()
}

func TestCompressToJPEG(t *testing.T) {
	t.Run("正常なPNG画像をJPEGに圧縮できること", func(t *testing.T) {
		pngData := createDummyImageData(t, "png")

		got, err := CompressToJPEG(pngData, 75)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(got) == 0 {
			t.Error("expected output data, but got empty")
		}

		// 出力がJPEGとしてデコード可能か確認
		_, format, err := image.Decode(bytes.NewReader(got))
		if err != nil {
			t.Errorf("failed to decode output image: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("expected format jpeg, got %s", format)
		}
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		invalidData := []byte("this is not an image")
		_, err := CompressToJPEG(invalidData, 75)
		if err == nil {
			t.Error("expected error for invalid data, but got nil")
		}
	})

	t.Run("Quality設定によってサイズが変化すること", func(t *testing.T) {
		input := createDummyImageData(t, "png")

		highQuality, _ := CompressToJPEG(input, 100)
		lowQuality, _ := CompressToJPEG(input, 10)

		if len(lowQuality) >= len(highQuality) {
			t.Errorf("low quality size (%d) should be smaller than high quality size (%d)", len(lowQuality), len(highQuality))
		}
	})
}

func TestCompressIfLarge(t *testing.T) {
	t.Run("閾値以下の画像はそのまま返す", func(t *testing.T) {
		input := createDummyImageData(t, "png")

		got, mime := CompressIfLarge(input, "image/png", len(input)+1, 75)
		if !bytes.Equal(got, input) {
			t.Error("閾値以下の入力を変更してはいけない")
		}
		if mime != "image/png" {
			t.Errorf("MIME タイプが変わっています: %s", mime)
		}
	})

	t.Run("閾値超過の画像はJPEGへ再圧縮される", func(t *testing.T) {
		// PNG が縮みにくい擬似ノイズ画像なら JPEG 再圧縮で確実に小さくなる
		img := image.NewRGBA(image.Rect(0, 0, 256, 256))
		state := uint32(1)
		for i := range img.Pix {
			state = state*1664525 + 1013904223
			img.Pix[i] = uint8(state >> 24)
		}
		buf := new(bytes.Buffer)
		if err := png.Encode(buf, img); err != nil {
			t.Fatalf("failed to encode noise image: %v", err)
		}
		input := buf.Bytes()

		got, mime := CompressIfLarge(input, "image/png", 1, 10)
		if mime != "image/jpeg" {
			t.Errorf("再圧縮後の MIME タイプは image/jpeg であるべきです: %s", mime)
		}
		if _, format, err := image.Decode(bytes.NewReader(got)); err != nil || format != "jpeg" {
			t.Errorf("JPEG としてデコードできません: format=%s err=%v", format, err)
		}
	})

	t.Run("デコード不能な入力はそのまま返す", func(t *testing.T) {
		input := []byte("not an image at all")
		got, mime := CompressIfLarge(input, "application/octet-stream", 1, 75)
		if !bytes.Equal(got, input) || mime != "application/octet-stream" {
			t.Error("圧縮できない入力は無加工で返すべきです")
		}
	})
}
