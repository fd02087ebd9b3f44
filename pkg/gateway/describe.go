package gateway

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/apperr"
	"github.com/shouni/nano-banana-kit/pkg/domain"
)

// 文書・画像の説明生成に使うテキストモデル
const describeModel = "gemini-2.5-flash"

// DescribeDocument は PDF や画像などの添付ファイルをテキストで説明します。
// 画像生成とは独立した補助機能で、フォールバックは行いません。
func (g *Gateway) DescribeDocument(ctx context.Context, doc domain.ImageAsset, instruction string) (string, error) {
	if err := g.requireCredential(); err != nil {
		return "", err
	}
	if doc.IsZero() {
		return "", apperr.New(apperr.KindMissingResult, "説明対象のファイルが指定されていません", nil)
	}
	if strings.TrimSpace(instruction) == "" {
		instruction = "このファイルの内容を日本語で要約してください。"
	}

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: doc.MIMEType, Data: doc.Data}},
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.GenerateContent(ctx, describeModel, contents, nil)
	if err != nil {
		return "", apperr.Classify(err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return "", apperr.New(apperr.KindMissingResult, "応答にテキストが含まれていません", nil)
	}
	return text, nil
}

// extractText は最初の候補のテキストパーツを連結します。
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
