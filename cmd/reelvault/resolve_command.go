package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelvault/internal/catalog"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var linkIndex int
	var episodeRef string

	cmd := &cobra.Command{
		Use:   "resolve <id-or-query>",
		Short: "Resolve a catalog item to a direct stream URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := ctx.resumedLibrary(cmd)
			if err != nil {
				return err
			}

			item, err := findItem(lib, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(item.Links) == 0 {
				return fmt.Errorf("%s has no links to resolve", catalog.DisplayTitle(item))
			}

			index := 0
			switch {
			case linkIndex > 0:
				if linkIndex > len(item.Links) {
					return fmt.Errorf("link %d out of range (item has %d links)", linkIndex, len(item.Links))
				}
				index = linkIndex - 1
			case episodeRef != "":
				if !item.IsPack {
					return errors.New("--episode applies only to season packs")
				}
				i, err := findEpisode(item, episodeRef)
				if err != nil {
					return err
				}
				if url := item.Episodes[i].StreamURL; url != "" {
					fmt.Fprintln(cmd.OutOrStdout(), url)
					return nil
				}
				if i >= len(item.Links) {
					return fmt.Errorf("no link recorded for episode %s", episodeRef)
				}
				index = i
			case item.IsPack:
				return errors.New("item is a season pack; pick an episode with --episode or a link with --link")
			}

			url, err := lib.Resolve(cmd.Context(), item.Links[index])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", catalog.DisplayTitle(item), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}

	cmd.Flags().IntVarP(&linkIndex, "link", "l", 0, "1-based link position to resolve")
	cmd.Flags().StringVarP(&episodeRef, "episode", "e", "", "Episode to resolve from a season pack (S01E02, 1x02, or a number)")
	return cmd
}
