// Package gateway は生成 API への全リクエストを束ねる玄関口です。
// モデル候補のフォールバック、割り当て超過時の再試行、動画ジョブの
// ポーリングといった配信都合の制御はすべてここに集約します。
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/apperr"
)

// 画像生成のモデル候補です。先頭から順に試行します。
var defaultImageModels = []string{
	"gemini-2.5-flash-image-preview",
	"gemini-2.0-flash-exp",
	"gemini-1.5-flash",
}

const (
	// 動画生成は単一候補です。フォールバック先はありません。
	defaultVideoModel = "veo-3.0-generate-001"
	// 資格情報の疎通確認に使う軽量モデル
	validationModel = "gemini-1.5-flash"

	defaultPollInterval = 10 * time.Second
)

// Gateway は生成 API への統合窓口です。
type Gateway struct {
	client  GenerativeClient
	fetcher ByteFetcher
	merger  MergePromptBuilder

	credential   string
	imageModels  []string
	videoModel   string
	pollInterval time.Duration
}

// New は依存関係を注入して Gateway を初期化します。
// merger は nil を許容します（2 枚合成時は固定指示文へ退避）。
func New(client GenerativeClient, fetcher ByteFetcher, merger MergePromptBuilder, credential string) (*Gateway, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	return &Gateway{
		client:       client,
		fetcher:      fetcher,
		merger:       merger,
		credential:   credential,
		imageModels:  defaultImageModels,
		videoModel:   defaultVideoModel,
		pollInterval: defaultPollInterval,
	}, nil
}

// requireCredential は通信前の早期確認です。資格情報なしでは一切リクエストしません。
func (g *Gateway) requireCredential() error {
	if strings.TrimSpace(g.credential) == "" {
		return apperr.New(apperr.KindMissingCredential, "APIキーが設定されていません。auth set で登録するか GEMINI_API_KEY を設定してください", nil)
	}
	return nil
}

// ValidateCredential は軽量モデルへの 1 リクエストで資格情報の有効性を確認します。
// 割り当て超過だけは再試行します（キーは有効なのに失敗扱いになるのを防ぐため）。
func (g *Gateway) ValidateCredential(ctx context.Context) error {
	if err := g.requireCredential(); err != nil {
		return err
	}

	return apperr.RetryOnQuota(ctx, apperr.DefaultMaxAttempts, apperr.DefaultBaseDelay, func() error {
		contents := []*genai.Content{
			genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText("Hello")}, genai.RoleUser),
		}
		if _, err := g.client.GenerateContent(ctx, validationModel, contents, nil); err != nil {
			return apperr.Classify(err)
		}
		return nil
	})
}

// ListModels は利用可能なモデル名の一覧を返します（診断用）。
func (g *Gateway) ListModels(ctx context.Context) ([]string, error) {
	if err := g.requireCredential(); err != nil {
		return nil, err
	}
	names, err := g.client.ListModels(ctx)
	if err != nil {
		return nil, apperr.Classify(err)
	}
	return names, nil
}

// ImageModels は現在のフォールバック候補を試行順で返します（表示用コピー）。
func (g *Gateway) ImageModels() []string {
	out := make([]string, len(g.imageModels))
	copy(out, g.imageModels)
	return out
}
