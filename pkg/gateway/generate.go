package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/apperr"
	"github.com/shouni/nano-banana-kit/pkg/domain"
	"github.com/shouni/nano-banana-kit/pkg/prompt"
)

// Generate はテキストから画像を生成します。候補モデルを先頭から順に試し、
// そのモデルが使えない場合だけ次へ進みます。割り当て超過と権限エラーは
// フォールバックしても無駄なので即座に打ち切ります。
func (g *Gateway) Generate(ctx context.Context, req domain.GenerateRequest) ([]domain.ImageAsset, error) {
	if err := g.requireCredential(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	enhanced := prompt.ForGeneration(req.Prompt)

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE"},
	}
	if req.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: req.AspectRatio}
	}

	var lastErr error
	for _, model := range g.imageModels {
		images, err := g.generateWithModel(ctx, model, enhanced, req.Count, config)
		if err != nil {
			if apperr.IsFallbackTerminal(err) {
				return nil, apperr.Classify(err)
			}
			if apperr.IsModelUnavailable(err) {
				slog.InfoContext(ctx, "モデルが利用できないため次の候補へ進みます", "model", model)
				continue
			}
			slog.WarnContext(ctx, "画像生成に失敗しました。次の候補を試します", "model", model, "error", err)
			lastErr = err
			continue
		}
		if len(images) == 0 {
			// 成功応答でも画像ゼロなら実質失敗として次の候補へ
			slog.WarnContext(ctx, "応答に画像が含まれないため次の候補へ進みます", "model", model)
			lastErr = fmt.Errorf("model %s returned no image", model)
			continue
		}
		return images, nil
	}

	return nil, apperr.New(apperr.KindAllModelsExhausted, "すべての候補モデルで画像を生成できませんでした", lastErr)
}

// generateWithModel は 1 モデルに対して req.Count 回の生成を順に行います。
// 1 リクエスト 1 画像の API なので、枚数分を逐次呼び出します。
func (g *Gateway) generateWithModel(ctx context.Context, model, enhanced string, count int, config *genai.GenerateContentConfig) ([]domain.ImageAsset, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(enhanced)}, genai.RoleUser),
	}

	images := make([]domain.ImageAsset, 0, count)
	for i := 0; i < count; i++ {
		resp, err := g.client.GenerateContent(ctx, model, contents, config)
		if err != nil {
			return nil, err
		}
		images = append(images, extractImages(resp, domain.MIMEJPEG)...)
	}
	return images, nil
}

// extractImages は応答からインライン画像を取り出します。MIME タイプが欠落、
// もしくは汎用バイナリ型として誤申告されている場合は defaultMIME で補います。
func extractImages(resp *genai.GenerateContentResponse, defaultMIME string) []domain.ImageAsset {
	if resp == nil {
		return nil
	}
	var images []domain.ImageAsset
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			mime := part.InlineData.MIMEType
			if !strings.HasPrefix(mime, "image/") {
				mime = defaultMIME
			}
			images = append(images, domain.ImageAsset{MIMEType: mime, Data: part.InlineData.Data})
		}
	}
	return images
}
