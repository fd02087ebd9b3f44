package analyzer

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// mockContentGenerator は ContentGenerator のテストダブルです。
// SmartMergePrompt から並行に呼ばれるため呼び出し回数はロックで守ります。
type mockContentGenerator struct {
	GenerateContentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	mu    sync.Mutex
	calls int
}

func (m *mockContentGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, model, contents, config)
	}
	return nil, nil
}

// textResponse はテキストのみの応答を組み立てるヘルパーです。
func textResponse(text string) *genai.GenerateContentResponse {
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
