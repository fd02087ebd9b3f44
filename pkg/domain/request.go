package domain

import "fmt"

// Mode は生成操作の種別です。
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeEdit     Mode = "edit"
	ModeVideo    Mode = "video"
)

// 動画生成で許可されるアスペクト比。画像生成は任意の W:H 表記を受け付けます。
const (
	VideoAspectLandscape = "16:9"
	VideoAspectPortrait  = "9:16"
)

// GenerateRequest はテキストからの画像生成要求です。
type GenerateRequest struct {
	Prompt      string
	Count       int
	AspectRatio string
}

// Validate は送信前の検証を行います。ネットワーク呼び出しより先に失敗させます。
func (r GenerateRequest) Validate() error {
	if r.Prompt == "" {
		return fmt.Errorf("プロンプトが空です")
	}
	if r.Count < 1 || r.Count > 4 {
		return fmt.Errorf("生成枚数は 1〜4 の範囲で指定してください: %d", r.Count)
	}
	return nil
}

// EditRequest は既存画像の編集・合成要求です。
// Secondary が 1 枚以上あるときは合成（ベース画像への要素転写）として扱います。
type EditRequest struct {
	Prompt    string
	Primary   ImageAsset
	Secondary []ImageAsset
}

func (r EditRequest) Validate() error {
	if r.Primary.IsZero() {
		return fmt.Errorf("編集対象の画像が指定されていません")
	}
	if r.Prompt == "" {
		return fmt.Errorf("プロンプトが空です")
	}
	return nil
}

// VideoRequest は動画生成要求です。Reference は任意の起点画像です。
type VideoRequest struct {
	Prompt      string
	AspectRatio string
	Reference   *ImageAsset
}

func (r VideoRequest) Validate() error {
	if r.Prompt == "" {
		return fmt.Errorf("プロンプトが空です")
	}
	if r.AspectRatio != VideoAspectLandscape && r.AspectRatio != VideoAspectPortrait {
		return fmt.Errorf("動画のアスペクト比は %s か %s を指定してください: %q",
			VideoAspectLandscape, VideoAspectPortrait, r.AspectRatio)
	}
	return nil
}
