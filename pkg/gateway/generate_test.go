package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/apperr"
	"github.com/shouni/nano-banana-kit/pkg/domain"
)

func TestGenerate(t *testing.T) {
	t.Run("APIキーなしでは通信せずMissingCredentialを返す", func(t *testing.T) {
		client := &mockClient{}
		g, err := New(client, &mockFetcher{}, nil, "")
		require.NoError(t, err)

		_, err = g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
		require.Error(t, err)
		assert.Equal(t, apperr.KindMissingCredential, apperr.KindOf(err))
		assert.Empty(t, client.contentCalls, "通信が発生してはいけないのだ")
	})

	t.Run("不正なリクエストは通信前に弾く", func(t *testing.T) {
		client := &mockClient{}
		g := newTestGateway(client, &mockFetcher{}, nil)

		_, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "", Count: 1})
		assert.Error(t, err)
		assert.Empty(t, client.contentCalls)
	})

	t.Run("先頭モデルが成功すればフォールバックしない", func(t *testing.T) {
		client := &mockClient{}
		g := newTestGateway(client, &mockFetcher{}, nil)

		images, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, []string{"gemini-2.5-flash-image-preview"}, client.contentCalls)
	})

	t.Run("モデル未提供エラーなら次の候補へ進む", func(t *testing.T) {
		client := &mockClient{}
		client.GenerateContentFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			if model == "gemini-2.5-flash-image-preview" {
				return nil, errors.New("404: model is not found")
			}
			return imageResponse("image/png", []byte("img")), nil
		}
		g := newTestGateway(client, &mockFetcher{}, nil)

		images, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Equal(t, []string{"gemini-2.5-flash-image-preview", "gemini-2.0-flash-exp"}, client.contentCalls)
	})

	t.Run("割り当て超過は即打ち切りで後続モデルを試さない", func(t *testing.T) {
		client := &mockClient{}
		client.GenerateContentFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("429: RESOURCE_EXHAUSTED quota exceeded")
		}
		g := newTestGateway(client, &mockFetcher{}, nil)

		_, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
		require.Error(t, err)
		assert.Equal(t, apperr.KindRateLimited, apperr.KindOf(err))
		assert.Len(t, client.contentCalls, 1)
	})

	t.Run("画像ゼロの成功応答も次の候補へ進む", func(t *testing.T) {
		client := &mockClient{}
		client.GenerateContentFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			if model == "gemini-2.5-flash-image-preview" {
				return textOnlyResponse("画像は生成できませんでした"), nil
			}
			return imageResponse("image/png", []byte("img")), nil
		}
		g := newTestGateway(client, &mockFetcher{}, nil)

		images, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
		require.NoError(t, err)
		require.Len(t, images, 1)
		assert.Len(t, client.contentCalls, 2)
	})

	t.Run("全候補が尽きたらAllModelsExhausted", func(t *testing.T) {
		sentinel := errors.New("500: internal")
		client := &mockClient{}
		client.GenerateContentFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, sentinel
		}
		g := newTestGateway(client, &mockFetcher{}, nil)

		_, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
		require.Error(t, err)
		assert.Equal(t, apperr.KindAllModelsExhausted, apperr.KindOf(err))
		assert.ErrorIs(t, err, sentinel, "最後の失敗原因を保持するのだ")
		assert.Len(t, client.contentCalls, len(defaultImageModels))
	})

	t.Run("枚数分だけリクエストが発行される", func(t *testing.T) {
		client := &mockClient{}
		g := newTestGateway(client, &mockFetcher{}, nil)

		images, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 3})
		require.NoError(t, err)
		assert.Len(t, images, 3)
		assert.Len(t, client.contentCalls, 3)
	})

	t.Run("MIMEタイプの欠落や汎用バイナリ型はJPEGとして補完される", func(t *testing.T) {
		for _, reported := range []string{"", "application/octet-stream"} {
			client := &mockClient{}
			client.GenerateContentFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
				return imageResponse(reported, []byte("img")), nil
			}
			g := newTestGateway(client, &mockFetcher{}, nil)

			images, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
			require.NoError(t, err)
			require.Len(t, images, 1)
			assert.Equal(t, domain.MIMEJPEG, images[0].MIMEType, "reported=%q", reported)
		}
	})

	t.Run("結果はデータURIへ変換できる", func(t *testing.T) {
		g := newTestGateway(&mockClient{}, &mockFetcher{}, nil)

		images, err := g.Generate(context.Background(), domain.GenerateRequest{Prompt: "a red bird", Count: 1})
		require.NoError(t, err)
		require.Len(t, images, 1)

		roundTrip, err := domain.ParseDataURI(images[0].DataURI())
		require.NoError(t, err)
		assert.Equal(t, images[0], roundTrip)
	})
}

func TestValidateCredential(t *testing.T) {
	t.Run("疎通成功でnilを返す", func(t *testing.T) {
		client := &mockClient{}
		client.GenerateContentFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			assert.Equal(t, validationModel, model)
			return textOnlyResponse("Hello!"), nil
		}
		g := newTestGateway(client, &mockFetcher{}, nil)

		assert.NoError(t, g.ValidateCredential(context.Background()))
	})

	t.Run("キー不正はInvalidCredentialになり再試行しない", func(t *testing.T) {
		client := &mockClient{}
		client.GenerateContentFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("400: API key not valid")
		}
		g := newTestGateway(client, &mockFetcher{}, nil)

		err := g.ValidateCredential(context.Background())
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidCredential, apperr.KindOf(err))
		assert.Len(t, client.contentCalls, 1)
	})
}
