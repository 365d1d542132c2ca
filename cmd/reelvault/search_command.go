package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelvault/internal/catalog"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var typeFilter string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch typeFilter {
			case catalog.FilterAll, catalog.TypeMovie, catalog.TypeTV:
			default:
				return fmt.Errorf("invalid --type %q (use all, movie, or tv)", typeFilter)
			}

			lib, err := ctx.resumedLibrary(cmd)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			items, err := lib.Search(typeFilter, query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No matches.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for i := range items {
				item := &items[i]
				rating := ""
				if item.TMDB != nil && item.TMDB.Rating > 0 {
					rating = fmt.Sprintf("%.1f", item.TMDB.Rating)
				}
				rows = append(rows, []string{
					item.ID,
					catalog.DisplayTitle(item),
					item.Type,
					formatSize(item.Size),
					rating,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Title", "Type", "Size", "Rating"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			fmt.Fprintf(out, "%d items\n", len(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFilter, "type", "t", catalog.FilterAll, "Filter by media type (all, movie, tv)")
	return cmd
}
