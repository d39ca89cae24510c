package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jscyril/mediacore/api"
	"github.com/spf13/cobra"
)

func newCatalogCmd(flags *rootFlags) *cobra.Command {
	var category, mood string

	cmd := &cobra.Command{
		Use:   "catalog [query]",
		Short: "List the catalog, optionally filtered by title or artist",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer a.Close()

			filters, err := parseFilters(category, mood)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			store := a.newStore(ctx, flags.query)
			store.Load(ctx)
			if err := store.Err(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v; showing the built-in catalog\n", err)
			}

			var query string
			if len(args) == 1 {
				query = args[0]
			}
			renderCatalog(store.Search(query, filters))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only items in this category")
	cmd.Flags().StringVar(&mood, "mood", "", "only items with this mood")
	return cmd
}

func parseFilters(category, mood string) (api.Filters, error) {
	var f api.Filters
	if category != "" {
		f.Category = api.Category(strings.ToLower(category))
		if !contains(api.Categories(), f.Category) {
			return f, fmt.Errorf("unknown category %q", category)
		}
	}
	if mood != "" {
		f.Mood = api.Mood(strings.ToLower(mood))
		if !contains(api.Moods(), f.Mood) {
			return f, fmt.Errorf("unknown mood %q", mood)
		}
	}
	return f, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func renderCatalog(items []api.CatalogItem) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "Title", "Artist", "Category", "Mood", "Length", "Lyrics"})
	for i, item := range items {
		lyrics := ""
		if item.IsKaraoke() {
			lyrics = fmt.Sprintf("%d lines", len(item.Cues))
		}
		t.AppendRow(table.Row{i + 1, item.Title, item.Artist, item.Category, item.Mood, item.Duration, lyrics})
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(items)})
	t.Render()
}
