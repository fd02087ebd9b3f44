package gateway

import (
	"context"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/apperr"
	"github.com/shouni/nano-banana-kit/pkg/domain"
)

// GenerateVideo は動画生成ジョブを投入し、完了までポーリングして結果を返します。
// 動画モデルは単一候補のため、画像のようなフォールバックはありません。
// progress は nil 可で、段階が進むたびに呼ばれます。
func (g *Gateway) GenerateVideo(ctx context.Context, req domain.VideoRequest, progress ProgressFunc) (domain.VideoAsset, error) {
	if err := g.requireCredential(); err != nil {
		return domain.VideoAsset{}, err
	}
	if err := req.Validate(); err != nil {
		return domain.VideoAsset{}, err
	}

	config := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		AspectRatio:    req.AspectRatio,
	}

	var refImage *genai.Image
	if req.Reference != nil && !req.Reference.IsZero() {
		refImage = &genai.Image{ImageBytes: req.Reference.Data, MIMEType: req.Reference.MIMEType}
	}

	op, err := g.client.GenerateVideos(ctx, g.videoModel, req.Prompt, refImage, config)
	if err != nil {
		return domain.VideoAsset{}, apperr.Classify(err)
	}

	notify(progress, StageSubmitted, "動画生成ジョブを受け付けました。完了まで数分かかります")
	slog.InfoContext(ctx, "動画生成ジョブを投入しました", "model", g.videoModel, "aspect", req.AspectRatio)

	return g.pollVideo(ctx, op, progress)
}

func notify(progress ProgressFunc, stage ProgressStage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
