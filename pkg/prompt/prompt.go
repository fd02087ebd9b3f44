// Package prompt はユーザープロンプトへ品質・様式の指示句を付加する
// 決定的な文字列変換を提供します。ネットワークも状態も持ちません。
package prompt

import "strings"

var styleEnhancers = []string{
	"masterpiece",
	"best quality",
	"ultra-detailed",
	"photorealistic",
	"8k uhd",
	"high resolution",
	"sharp focus",
}

var qualityEnhancers = []string{
	"ultra realistic",
	"high quality",
	"professional",
	"detailed",
	"8k resolution",
}

var lightingAndComposition = []string{
	"perfect lighting",
	"well-composed",
	"cinematic",
	"depth of field",
}

// 分野別の付加句はいずれか 1 つだけを採用します。判定は上から順です。
var artisticKeywords = []string{"anime", "cartoon", "sketch", "painting", "digital art", "illustration"}
var portraitKeywords = []string{"portrait", "face", "person", "woman", "man", "selfie"}
var landscapeKeywords = []string{"landscape", "mountain", "ocean", "sky", "forest", "scenery"}

const (
	artisticAddendum  = "trending on artstation"
	portraitAddendum  = "professional portrait photography, soft studio lighting, shallow depth of field"
	landscapeAddendum = "professional landscape photography, golden hour, wide dynamic range"
	genericAddendum   = "professional photography, perfect composition"
)

// ForGeneration は画像生成用にプロンプトを拡張します。
// キーワードから分野を推定し、分野別付加句を最大 1 つだけ加えます。
func ForGeneration(userPrompt string) string {
	switch {
	case containsAny(userPrompt, artisticKeywords):
		return userPrompt + ", " + strings.Join(styleEnhancers[:3], ", ") + ", " + artisticAddendum
	case containsAny(userPrompt, portraitKeywords):
		return userPrompt + ", " + strings.Join(styleEnhancers, ", ") + ", " + portraitAddendum
	case containsAny(userPrompt, landscapeKeywords):
		return userPrompt + ", " + strings.Join(styleEnhancers, ", ") + ", " + landscapeAddendum
	}
	return userPrompt + ", " + strings.Join(styleEnhancers, ", ") + ", " + genericAddendum
}

// ForEdit は画像編集用にプロンプトを拡張します。
// hasSecondary が真のときは 2 枚の画像を継ぎ目なく合成させる指示に、
// 偽のときは被写体の同一性を保持させる指示になります。
func ForEdit(userPrompt string, hasSecondary bool) string {
	quality := strings.Join(qualityEnhancers, ", ") + ", " + strings.Join(lightingAndComposition, ", ")

	if hasSecondary {
		return userPrompt + ". Seamlessly blend and merge these images with natural transitions. " +
			"Match lighting, shadows, color temperature, and perspective perfectly. " +
			quality + ". Ensure perfect integration with no visible seams or artifacts."
	}

	return userPrompt + ". " + quality + ". " +
		"CRITICAL: You MUST preserve the original subject's facial features, identity, and key characteristics. " +
		"Only apply the requested style or effect without altering the person's face, skin tone, or identity."
}

// ComposeEdit はスタイル・加工の定型指示句を前置し、品質句を後置します。
// 指示句カタログ自体は呼び出し側のデータであり、ここでは合成のみを行います。
func ComposeEdit(basePrompt, styleDirective, processDirective string) string {
	final := basePrompt
	if styleDirective != "" {
		final = styleDirective + " " + final
	}
	if processDirective != "" {
		final = processDirective + " " + final
	}
	return final + " Ultra high quality, professional result, 8K resolution."
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
