package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"reelvault/internal/builder"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the encrypted catalog from the provider account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			passphrase, err := readPassphrase(cmd)
			if err != nil {
				return err
			}

			b, err := builder.New(cfg, passphrase, ctx.ensureLogger())
			if err != nil {
				return err
			}

			summary, err := b.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Catalog built: %d items (%d new, %d refreshed, %d cached) -> %s\n",
				summary.Items, summary.New, summary.Refreshed, summary.FromCache, cfg.Build.OutputPath)
			return nil
		},
	}
}
