// Package analyzer は画像の構造化解析と、それを材料にした合成プロンプトの
// 生成を担当します。解析は補助情報であり、失敗してもフローを止めません。
package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/domain"
)

// DefaultModel は解析に使うモデルです。画像理解とテキスト出力ができれば十分です。
const DefaultModel = "gemini-2.0-flash-exp"

const analysisPrompt = `Analyze this image and provide detailed information in JSON format:
{
    "mainSubject": "describe the main subject/person/object",
    "background": "describe the background environment",
    "lighting": "describe the lighting conditions",
    "colors": ["list", "dominant", "colors"],
    "mood": "describe the overall mood/atmosphere",
    "composition": "describe the composition and perspective"
}`

// ContentGenerator は解析に必要な最小限の通信窓口です。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Analyzer は画像解析器です。
type Analyzer struct {
	client ContentGenerator
	model  string
}

// New は Analyzer を初期化します。
func New(client ContentGenerator, model string) (*Analyzer, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Analyzer{client: client, model: model}, nil
}

// Analyze は画像 1 枚の構造化記述を取得します。通信は 1 往復のみで再試行しません。
// 応答の JSON 解析に失敗した場合は中立の既定値を返します（解析エラーは伝播させない）。
func (a *Analyzer) Analyze(ctx context.Context, image domain.ImageAsset) (domain.ImageAnalysis, error) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: image.MIMEType, Data: image.Data}},
		genai.NewPartFromText(analysisPrompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := a.client.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return domain.ImageAnalysis{}, fmt.Errorf("画像解析に失敗しました: %w", err)
	}

	text := extractText(resp)
	var analysis domain.ImageAnalysis
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &analysis); err != nil {
		slog.WarnContext(ctx, "解析応答のJSONを読めなかったため既定値で続行します", "error", err)
		return domain.DefaultAnalysis(), nil
	}
	return analysis, nil
}

// SmartMergePrompt は base と source の 2 枚を並行解析し、両者の属性を織り込んだ
// 合成指示文を返します。どちらかの解析が失敗した場合は、ベース画像の同一性保持と
// ソース画像からの要素転写だけを指示する固定文へ退避します。この関数は決して
// エラーを返しません。
func (a *Analyzer) SmartMergePrompt(ctx context.Context, userPrompt string, base, source domain.ImageAsset) string {
	var baseAnalysis, sourceAnalysis domain.ImageAnalysis

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		baseAnalysis, err = a.Analyze(gctx, base)
		return err
	})
	g.Go(func() error {
		var err error
		sourceAnalysis, err = a.Analyze(gctx, source)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "画像解析に失敗したため固定の合成指示へ退避します", "error", err)
		return FallbackMergePrompt(userPrompt)
	}

	return fmt.Sprintf(`%s

Technical requirements for perfect synthesis:
- Preserve the identity, face, and body of %s from the first (base) image exactly as they are
- Transfer only the clothing/product elements of %s from the second (source) image onto the base subject
- Match lighting: harmonize %s with %s
- Color grading: blend %s with %s
- Maintain %s mood while incorporating %s elements
- Preserve original %s while integrating new elements
- Create seamless transitions with no visible edges or artifacts
- Ensure perspective consistency and natural shadows
- Apply professional color correction and exposure matching
- Ultra realistic, photorealistic quality, 8K resolution`,
		userPrompt,
		baseAnalysis.MainSubject,
		firstNonEmpty(sourceAnalysis.MainSubject, sourceAnalysis.Background),
		baseAnalysis.Lighting, sourceAnalysis.Lighting,
		strings.Join(baseAnalysis.Colors, ", "), strings.Join(sourceAnalysis.Colors, ", "),
		baseAnalysis.Mood, sourceAnalysis.Mood,
		baseAnalysis.Composition,
	)
}

// FallbackMergePrompt は解析不能時の固定合成指示です。
// ベースの同一性保持と要素転写のルールだけは必ず伝えます。
func FallbackMergePrompt(userPrompt string) string {
	return userPrompt + ". Preserve the identity and face of the subject in the first (base) image, " +
		"and transfer only the clothing/product elements from the second (source) image. " +
		"Seamlessly merge these images with perfect lighting, color matching, and perspective. " +
		"Ultra realistic, professional quality."
}

// SuggestPrompt は画像から編集プロンプト案を生成します（補助機能）。
// 失敗時は固定の汎用プロンプトを返し、エラーにはしません。
func (a *Analyzer) SuggestPrompt(ctx context.Context, image domain.ImageAsset, styleDirective, customText string) string {
	instruction := "この画像を分析して、創造的な編集プロンプトを日本語で1つ生成してください。"
	if styleDirective != "" {
		instruction += " 次のスタイルへ変換するプロンプトにしてください: " + styleDirective
	}
	if customText != "" {
		instruction += " 利用者の要望: " + customText
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: image.MIMEType, Data: image.Data}},
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := a.client.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		slog.WarnContext(ctx, "プロンプト提案の取得に失敗しました", "error", err)
		return "画像を高品質に仕上げてください。"
	}
	if text := strings.TrimSpace(extractText(resp)); text != "" {
		return text
	}
	return "画像を高品質に仕上げてください。"
}

// extractText は最初の候補からテキストパーツを連結して返します。
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// stripCodeFences は ```json 〜 ``` のコードフェンスを除去します。
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
