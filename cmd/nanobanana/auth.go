package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shouni/nano-banana-kit/pkg/credential"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "API キーの登録と確認",
	}
	cmd.AddCommand(newAuthSetCmd(), newAuthStatusCmd())
	return cmd
}

func newAuthSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <APIキー>",
		Short: "API キーを保存し、疎通確認を行う",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := credential.NewStore()
			if err != nil {
				printError(err)
				return err
			}
			if err := store.Save(args[0]); err != nil {
				printError(err)
				return err
			}

			g, err := buildGateway(ctx)
			if err != nil {
				printError(err)
				return err
			}
			if err := g.ValidateCredential(ctx); err != nil {
				printError(err)
				return err
			}

			fmt.Println(color.GreenString("API キーを保存しました:"), store.Path())
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "現在の API キー設定を表示する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := credential.NewStore()
			if err != nil {
				printError(err)
				return err
			}
			key, err := store.Load()
			if err != nil {
				printError(err)
				return err
			}

			fmt.Println("キー:", credential.Masked(key))
			fmt.Println("保存先:", store.Path())
			return nil
		},
	}
}
