package gateway

import (
	"context"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/domain"
)

// GenerativeClient は Gateway が必要とする生成 API の窓口です。
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
	ListModels(ctx context.Context) ([]string, error)
}

// ByteFetcher は動画ファイルなどの生バイト列をURLから取得します。
type ByteFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// MergePromptBuilder は 2 枚合成時の指示文を組み立てます。失敗時も必ず文字列を返します。
type MergePromptBuilder interface {
	SmartMergePrompt(ctx context.Context, userPrompt string, base, source domain.ImageAsset) string
}

// ProgressStage は動画ジョブの進行段階です。
type ProgressStage string

const (
	StageSubmitted   ProgressStage = "submitted"
	StageProcessing  ProgressStage = "processing"
	StageDownloading ProgressStage = "downloading"
)

// ProgressFunc は長時間ジョブの進行通知コールバックです。nil 可。
type ProgressFunc func(stage ProgressStage, message string)
