package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reelvault/internal/envelope"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Unlock the catalog and start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.ensureLibrary()
			if err != nil {
				return err
			}

			passphrase, err := readPassphrase(cmd)
			if err != nil {
				return err
			}

			if err := lib.Open(cmd.Context(), passphrase); err != nil {
				if errors.Is(err, envelope.ErrAuthentication) {
					return errors.New("passphrase rejected")
				}
				return err
			}

			cat := lib.Catalog()
			fmt.Fprintf(cmd.OutOrStdout(), "Unlocked catalog: %d items (updated %s)\n", len(cat.Items), cat.Updated)
			return nil
		},
	}
}
