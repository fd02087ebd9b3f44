package gateway

import (
	"context"
	"time"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/domain"
)

// mockClient は GenerativeClient のテストダブルです。
type mockClient struct {
	GenerateContentFunc    func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateVideosFunc     func(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	GetVideosOperationFunc func(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
	ListModelsFunc         func(ctx context.Context) ([]string, error)

	contentCalls []string
	pollCalls    int
}

func (m *mockClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.contentCalls = append(m.contentCalls, model)
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, model, contents, config)
	}
	return imageResponse("image/png", []byte("img")), nil
}

func (m *mockClient) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	if m.GenerateVideosFunc != nil {
		return m.GenerateVideosFunc(ctx, model, prompt, image, config)
	}
	return &genai.GenerateVideosOperation{}, nil
}

func (m *mockClient) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	m.pollCalls++
	if m.GetVideosOperationFunc != nil {
		return m.GetVideosOperationFunc(ctx, op)
	}
	return op, nil
}

func (m *mockClient) ListModels(ctx context.Context) ([]string, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []string{"gemini-1.5-flash"}, nil
}

// mockFetcher は ByteFetcher のテストダブルです。
type mockFetcher struct {
	FetchBytesFunc func(ctx context.Context, url string) ([]byte, error)

	urls []string
}

func (m *mockFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.urls = append(m.urls, url)
	if m.FetchBytesFunc != nil {
		return m.FetchBytesFunc(ctx, url)
	}
	return []byte("video-bytes"), nil
}

// mockMerger は MergePromptBuilder のテストダブルです。
type mockMerger struct {
	result string
	calls  int
}

func (m *mockMerger) SmartMergePrompt(ctx context.Context, userPrompt string, base, source domain.ImageAsset) string {
	m.calls++
	if m.result != "" {
		return m.result
	}
	return userPrompt
}

// imageResponse はインライン画像 1 枚の応答を組み立てます。
func imageResponse(mime string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: mime, Data: data}}},
				},
			},
		},
	}
}

// textOnlyResponse は画像を含まないテキスト応答です。
func textOnlyResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}

// newTestGateway は短いポーリング間隔を持つテスト用 Gateway を返します。
func newTestGateway(client *mockClient, fetcher *mockFetcher, merger MergePromptBuilder) *Gateway {
	g, err := New(client, fetcher, merger, "test-api-key-0123456789")
	if err != nil {
		panic(err)
	}
	g.pollInterval = time.Millisecond
	return g
}
