package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shouni/nano-banana-kit/pkg/domain"
	"github.com/shouni/nano-banana-kit/pkg/imgutil"
	"github.com/shouni/nano-banana-kit/pkg/utils"
)

func newEditCmd() *cobra.Command {
	var (
		sourcePath string
		maskPath   string
		outDir     string
		dataURI    bool
	)

	cmd := &cobra.Command{
		Use:   "edit <画像ファイル> <プロンプト>",
		Short: "既存の画像をプロンプトで編集する",
		Long: "既存の画像をプロンプトで編集します。--source で 2 枚目の画像を渡すと、\n" +
			"両方を解析した上で被写体を保ったまま要素を合成します。\n" +
			"--mask で白黒マスクを渡すと、白い領域だけを編集対象にします。",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			primary, err := readImageFile(args[0])
			if err != nil {
				printError(err)
				return err
			}

			if maskPath != "" {
				mask, err := readImageFile(maskPath)
				if err != nil {
					printError(err)
					return err
				}
				primary, err = imgutil.ApplyMask(primary, mask)
				if err != nil {
					printError(err)
					return err
				}
			}

			req := domain.EditRequest{Prompt: args[1], Primary: primary}
			if sourcePath != "" {
				source, err := readImageFile(sourcePath)
				if err != nil {
					printError(err)
					return err
				}
				req.Secondary = []domain.ImageAsset{source}
			}

			g, err := buildGateway(ctx)
			if err != nil {
				printError(err)
				return err
			}

			images, err := g.Edit(ctx, req)
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
				path := filepath.Join(outDir, utils.NewOutputName("edited", img.MIMEType))
				if err := os.WriteFile(path, img.Data, 0o644); err != nil {
					printError(err)
					return err
				}
				printSaved(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourcePath, "source", "s", "", "合成する 2 枚目の画像ファイル")
	cmd.Flags().StringVarP(&maskPath, "mask", "m", "", "編集領域を白で示すマスク画像ファイル")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "出力先ディレクトリ")
	cmd.Flags().BoolVar(&dataURI, "data-uri", false, "ファイルに保存せず data URI を標準出力へ書く")
	return cmd
}

// readImageFile はローカルファイルを ImageAsset として読み込みます。
// MIME タイプは先頭バイトから推定します。
func readImageFile(path string) (domain.ImageAsset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("画像ファイルを読み込めませんでした: %w", err)
	}
	return domain.ImageAsset{MIMEType: http.DetectContentType(data), Data: data}, nil
}
