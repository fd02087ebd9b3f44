package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shouni/nano-banana-kit/pkg/domain"
	"github.com/shouni/nano-banana-kit/pkg/utils"
)

func newGenerateCmd() *cobra.Command {
	var (
		count   int
		aspect  string
		outDir  string
		dataURI bool
	)

	cmd := &cobra.Command{
		Use:   "generate <プロンプト>",
		Short: "テキストから画像を生成する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := buildGateway(ctx)
			if err != nil {
				printError(err)
				return err
			}

			images, err := g.Generate(ctx, domain.GenerateRequest{
				Prompt:      args[0],
				Count:       count,
				AspectRatio: aspect,
			})
			if err != nil {
				printError(err)
				return err
			}

			if dataURI {
				for _, img := range images {
					fmt.Println(img.DataURI())
				}
				return nil
			}

			for _, img := range images {
				path := filepath.Join(outDir, utils.NewOutputName("generated", img.MIMEType))
				if err := os.WriteFile(path, img.Data, 0o644); err != nil {
					printError(err)
					return err
				}
				printSaved(path)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "生成枚数 (1〜4)")
	cmd.Flags().StringVar(&aspect, "aspect", "", "縦横比 (例: 1:1, 16:9)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "出力先ディレクトリ")
	cmd.Flags().BoolVar(&dataURI, "data-uri", false, "ファイルに保存せず data URI を標準出力へ書く")
	return cmd
}
