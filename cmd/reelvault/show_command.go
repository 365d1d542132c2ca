package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelvault/internal/catalog"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-or-query>",
		Short: "Display details for one catalog item",
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

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, catalog.DisplayTitle(item))
			fmt.Fprintf(out, "  ID:       %s\n", item.ID)
			fmt.Fprintf(out, "  Type:     %s\n", item.Type)
			fmt.Fprintf(out, "  Size:     %s\n", formatSize(item.Size))
			if item.Added != "" {
				fmt.Fprintf(out, "  Added:    %s\n", item.Added)
			}
			fmt.Fprintf(out, "  Filename: %s\n", item.Filename)
			if meta := item.TMDB; meta != nil {
				if meta.Rating > 0 {
					fmt.Fprintf(out, "  Rating:   %.1f\n", meta.Rating)
				}
				if len(meta.Genres) > 0 {
					fmt.Fprintf(out, "  Genres:   %s\n", strings.Join(meta.Genres, ", "))
				}
				if meta.Overview != "" {
					fmt.Fprintf(out, "  Overview: %s\n", meta.Overview)
				}
			}

			if item.IsPack {
				rows := make([][]string, 0, len(item.Episodes))
				for i := range item.Episodes {
					ep := &item.Episodes[i]
					rows = append(rows, []string{
						fmt.Sprintf("%d", i+1),
						catalog.EpisodeLabel(ep),
						formatSize(ep.Size),
					})
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Episode", "Size"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight},
				))
			} else {
				fmt.Fprintf(out, "  Links:    %d\n", len(item.Links))
			}
			return nil
		},
	}
}
