package domain

// ImageAnalysis はモデルによる画像の構造化記述です。
// 合成プロンプトの材料として使うため、項目は自然言語の断片で保持します。
type ImageAnalysis struct {
	MainSubject string   `json:"mainSubject"`
	Background  string   `json:"background"`
	Lighting    string   `json:"lighting"`
	Colors      []string `json:"colors"`
	Mood        string   `json:"mood"`
	Composition string   `json:"composition"`
}

// DefaultAnalysis は解析結果を取得できなかったときの中立既定値です。
// 解析はあくまで補助情報なので、失敗をここで吸収して処理を続行させます。
func DefaultAnalysis() ImageAnalysis {
	return ImageAnalysis{
		MainSubject: "subject",
		Background:  "background",
		Lighting:    "natural lighting",
		Colors:      []string{"various"},
		Mood:        "neutral",
		Composition: "standard",
	}
}
