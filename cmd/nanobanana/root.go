package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"github.com/shouni/nano-banana-kit/pkg/adapters"
	"github.com/shouni/nano-banana-kit/pkg/analyzer"
	"github.com/shouni/nano-banana-kit/pkg/credential"
	"github.com/shouni/nano-banana-kit/pkg/gateway"
)

var verbose bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nanobanana",
		Short:         "Gemini による画像・動画生成ツール",
		Long:          "nanobanana は Gemini API を使って画像の生成・編集・合成と動画生成を行う CLI です。",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env は任意。なければ環境変数と保存済みキーだけで動きます
			_ = godotenv.Load()

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細ログを出力する")

	cmd.AddCommand(
		newGenerateCmd(),
		newEditCmd(),
		newVideoCmd(),
		newDescribeCmd(),
		newModelsCmd(),
		newAuthCmd(),
	)
	return cmd
}

// buildGateway は保存済み資格情報から Gateway 一式を組み立てます。
// キー未設定でもここでは失敗させず、操作時の分類済みエラーに任せます。
func buildGateway(ctx context.Context) (*gateway.Gateway, error) {
	store, err := credential.NewStore()
	if err != nil {
		return nil, err
	}
	key, err := store.Load()
	if err != nil {
		return nil, err
	}
	if key == "" {
		return gatewayWithoutClient()
	}

	client, err := adapters.NewGenAIClient(ctx, key)
	if err != nil {
		return nil, err
	}
	merger, err := analyzer.New(client, "")
	if err != nil {
		return nil, err
	}
	return gateway.New(client, adapters.NewHTTPFetcher(), merger, key)
}

// gatewayWithoutClient はキー未設定時のプレースホルダです。
// すべての操作が MissingCredential の案内文で失敗します。
func gatewayWithoutClient() (*gateway.Gateway, error) {
	return gateway.New(noCredentialClient{}, adapters.NewHTTPFetcher(), nil, "")
}

// noCredentialClient はキー未設定時に Gateway へ渡す実装です。
// 資格情報の事前確認が先に失敗するため、通常ここへは到達しません。
type noCredentialClient struct{}

func (noCredentialClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, fmt.Errorf("API key is missing")
}

func (noCredentialClient) GenerateVideos(ctx context.Context, model, prompt string, image *genai.Image, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return nil, fmt.Errorf("API key is missing")
}

func (noCredentialClient) GetVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return nil, fmt.Errorf("API key is missing")
}

func (noCredentialClient) ListModels(ctx context.Context) ([]string, error) {
	return nil, fmt.Errorf("API key is missing")
}

// printError は分類済みエラーの文面を赤字で表示します。
func printError(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, "エラー:", err)
}

func printSaved(path string) {
	fmt.Printf("%s %s\n", color.GreenString("保存しました:"), path)
}
