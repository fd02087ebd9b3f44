package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shouni/nano-banana-kit/pkg/domain"
	"github.com/shouni/nano-banana-kit/pkg/gateway"
	"github.com/shouni/nano-banana-kit/pkg/utils"
)

func newVideoCmd() *cobra.Command {
	var (
		aspect    string
		imagePath string
		outDir    string
	)

	cmd := &cobra.Command{
		Use:   "video <プロンプト>",
		Short: "テキスト（と参照画像）から動画を生成する",
		Long: "動画生成ジョブを投入し、完了までポーリングして結果を保存します。\n" +
			"完了まで数分かかることがあります。Ctrl-C で待機を中断できます\n" +
			"（投入済みジョブ自体は取り消されません）。",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			req := domain.VideoRequest{Prompt: args[0], AspectRatio: aspect}
			if imagePath != "" {
				ref, err := readImageFile(imagePath)
				if err != nil {
					printError(err)
					return err
				}
				req.Reference = &ref
			}

			g, err := buildGateway(ctx)
			if err != nil {
				printError(err)
				return err
			}

			progress := func(stage gateway.ProgressStage, message string) {
				fmt.Println(color.CyanString("[%s]", string(stage)), message)
			}

			video, err := g.GenerateVideo(ctx, req, progress)
			if err != nil {
				printError(err)
				return err
			}

			path := filepath.Join(outDir, utils.NewOutputName("video", video.MIMEType))
			if err := os.WriteFile(path, video.Data, 0o644); err != nil {
				printError(err)
				return err
			}
			printSaved(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&aspect, "aspect", domain.VideoAspectLandscape, "縦横比 (16:9 または 9:16)")
	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "動画の起点にする参照画像ファイル")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "出力先ディレクトリ")
	return cmd
}
