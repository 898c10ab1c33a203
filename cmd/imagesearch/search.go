// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/imagesearch/internal/detail"
	"github.com/pdiddy/imagesearch/internal/search"
	"github.com/pdiddy/imagesearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Search the feed once and print the results",
	Long: `Search fetches the feed for the given term and prints the items. Words are
joined with spaces; no term searches the unfiltered feed. Progress and errors
go to stderr, results to stdout.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("format", "table", "output format: table, json or yaml")
	searchCmd.Flags().Int("detail", 0, "print the details of result N (1-based) instead of the list")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	detailIdx, _ := cmd.Flags().GetInt("detail")
	if err := checkFormat(format); err != nil {
		return err
	}

	ctrl := newController(loadConfig(viper.GetViper()))
	defer ctrl.Close()

	st, err := searchOnce(cmd.Context(), ctrl, strings.Join(args, " "), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if detailIdx > 0 {
		if detailIdx > len(st.Data) {
			return fmt.Errorf("result %d out of range: %d results", detailIdx, len(st.Data))
		}
		detail.Render(detail.NewView(ctrl.Select(st.Data[detailIdx-1])), out)
		return nil
	}
	return writeItems(st.Data, format, out)
}

// searchOnce issues one search and waits for its terminal state, echoing
// each transition to progress. An Error state is returned as the error.
func searchOnce(ctx context.Context, ctrl *search.Controller, term string, progress io.Writer) (types.SearchState, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	states := ctrl.Watch(ctx)
	ctrl.Search(term)

	for st := range states {
		search.FormatState(st, progress)
		switch st.Status {
		case types.StatusSuccess:
			return st, nil
		case types.StatusError:
			return st, st.Err
		}
	}
	if err := ctx.Err(); err != nil {
		return types.SearchState{}, err
	}
	return types.SearchState{}, fmt.Errorf("search for %q ended without a result", term)
}

func checkFormat(format string) error {
	switch format {
	case "table", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown format %q: use table, json or yaml", format)
}

func writeItems(items []types.ImageItem, format string, w io.Writer) error {
	switch format {
	case "json":
		return search.FormatJSON(items, w)
	case "yaml":
		return search.FormatYAML(items, w)
	default:
		search.FormatTable(items, w)
		return nil
	}
}
