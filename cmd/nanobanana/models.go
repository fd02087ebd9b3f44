package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "利用可能なモデルの一覧を表示する（診断用）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := buildGateway(ctx)
			if err != nil {
				printError(err)
				return err
			}

			names, err := g.ListModels(ctx)
			if err != nil {
				printError(err)
				return err
			}

			fmt.Println(color.New(color.Bold).Sprint("画像生成の試行順:"))
			for i, model := range g.ImageModels() {
				fmt.Printf("  %d. %s\n", i+1, model)
			}

			fmt.Println(color.New(color.Bold).Sprint("利用可能なモデル:"))
			for _, name := range names {
				fmt.Println("  " + name)
			}
			return nil
		},
	}
}
