package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var instruction string

	cmd := &cobra.Command{
		Use:   "describe <ファイル>",
		Short: "画像や PDF の内容をテキストで説明する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			doc, err := readImageFile(args[0])
			if err != nil {
				printError(err)
				return err
			}

			g, err := buildGateway(ctx)
			if err != nil {
				printError(err)
				return err
			}

			text, err := g.DescribeDocument(ctx, doc, instruction)
			if err != nil {
				printError(err)
				return err
			}

			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&instruction, "prompt", "p", "", "説明の観点を指定する指示文")
	return cmd
}
