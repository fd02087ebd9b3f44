package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/analyzer"
	"github.com/shouni/nano-banana-kit/pkg/apperr"
	"github.com/shouni/nano-banana-kit/pkg/domain"
	"github.com/shouni/nano-banana-kit/pkg/imgutil"
	"github.com/shouni/nano-banana-kit/pkg/prompt"
)

// Edit は既存画像をプロンプトで編集します。2 枚目以降の画像があれば合成モードとして
// 扱い、先に両画像を解析した合成指示文を組み立てます。フォールバックの進み方は
// Generate と同じです。
func (g *Gateway) Edit(ctx context.Context, req domain.EditRequest) ([]domain.ImageAsset, error) {
	if err := g.requireCredential(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	parts := g.buildEditParts(ctx, req)

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var lastErr error
	for _, model := range g.imageModels {
		resp, err := g.client.GenerateContent(ctx, model, contents, config)
		if err != nil {
			if apperr.IsFallbackTerminal(err) {
				return nil, apperr.Classify(err)
			}
			if apperr.IsModelUnavailable(err) {
				slog.InfoContext(ctx, "モデルが利用できないため次の候補へ進みます", "model", model)
				continue
			}
			slog.WarnContext(ctx, "画像編集に失敗しました。次の候補を試します", "model", model, "error", err)
			lastErr = err
			continue
		}
		images := extractImages(resp, domain.MIMEPNG)
		if len(images) == 0 {
			// テキストのみの応答は編集未対応モデルとみなして次へ
			slog.WarnContext(ctx, "応答に画像が含まれないため次の候補へ進みます", "model", model)
			lastErr = fmt.Errorf("model %s returned no image", model)
			continue
		}
		return images, nil
	}

	return nil, apperr.New(apperr.KindAllModelsExhausted, "すべての候補モデルで画像を編集できませんでした", lastErr)
}

// buildEditParts は編集リクエストの送信パーツを組み立てます。
// 大きな入力画像は送信前に再圧縮し、指示文は画像の後ろに置きます。
func (g *Gateway) buildEditParts(ctx context.Context, req domain.EditRequest) []*genai.Part {
	var instruction string
	if len(req.Secondary) > 0 {
		if g.merger != nil {
			instruction = g.merger.SmartMergePrompt(ctx, req.Prompt, req.Primary, req.Secondary[0])
		} else {
			instruction = analyzer.FallbackMergePrompt(req.Prompt)
		}
	} else {
		instruction = prompt.ForEdit(req.Prompt, false)
	}

	assets := append([]domain.ImageAsset{req.Primary}, req.Secondary...)
	parts := make([]*genai.Part, 0, len(assets)+1)
	for _, asset := range assets {
		data, mime := imgutil.CompressIfLarge(asset.Data, asset.MIMEType, imgutil.DefaultCompressionThreshold, imgutil.DefaultCompressionQuality)
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: data}})
	}
	parts = append(parts, genai.NewPartFromText(instruction))
	return parts
}
