// Package adapters は外部サービスとの具体的な接続を実装します。
// 上位層はここで定義する型を直接は参照せず、各パッケージの
// インターフェース越しに利用します。
package adapters

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIClient は genai SDK の薄いラッパーです。
type GenAIClient struct {
	client *genai.Client
}

// NewGenAIClient は API キー認証の Gemini クライアントを作ります。
func NewGenAIClient(ctx context.Context, apiKey string) (*GenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("Gemini クライアントの初期化に失敗しました: %w", err)
	}
	return &GenAIClient{client: client}, nil
}

func (c *GenAIClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}

func (c *GenAIClient) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return c.client.Models.GenerateVideos(ctx, model, prompt, image, config)
}

func (c *GenAIClient) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return c.client.Operations.GetVideosOperation(ctx, op, nil)
}

// ListModels は利用可能なモデル名を列挙します。
func (c *GenAIClient) ListModels(ctx context.Context) ([]string, error) {
	var names []string
	for model, err := range c.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("モデル一覧の取得に失敗しました: %w", err)
		}
		names = append(names, model.Name)
	}
	return names, nil
}
