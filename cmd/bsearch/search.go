package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bsearch/internal/render"
	"github.com/pdiddy/bsearch/internal/search"
	"github.com/pdiddy/bsearch/internal/session"
	"github.com/pdiddy/bsearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Run one search and print the results",
	Long: `Search sends the query to the Wikipedia search API and prints up to
search.limit results. --sort reorders them client-side: relevance keeps the
service's order, date puts the most recently edited first, wordcount puts the
longest first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sortFlag, _ := cmd.Flags().GetString("sort")
		mode, err := types.ParseSortMode(sortFlag)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asJSON && asYAML {
			return fmt.Errorf("--json and --yaml are mutually exclusive")
		}

		format := formatTable
		switch {
		case asJSON:
			format = formatJSON
		case asYAML:
			format = formatYAML
		}
		return runSearch(cmd.Context(), current, strings.Join(args, " "), mode, format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

type outputFormat int

const (
	formatTable outputFormat = iota
	formatJSON
	formatYAML
)

// errSearchFailed signals a failure already reported to the user.
var errSearchFailed = errors.New("search failed")

func runSearch(ctx context.Context, a *app, query string, mode types.SortMode, format outputFormat, out, errOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := session.New(a.searcher, a.cfg.Session, a.log)
	go sess.Run(ctx)

	ticket, err := sess.Submit(ctx, query)
	if errors.Is(err, search.ErrEmptyQuery) {
		return fmt.Errorf("query is empty: provide a search term")
	}
	if err != nil {
		return err
	}
	if _, err := ticket.Wait(ctx); err != nil {
		return err
	}
	if err := sess.SetSort(ctx, mode); err != nil {
		return err
	}
	snap, err := sess.Snapshot(ctx)
	if err != nil {
		return err
	}

	if snap.Status == types.StatusError {
		fmt.Fprintln(errOut, snap.Err)
		return errSearchFailed
	}

	switch format {
	case formatJSON:
		return render.FormatJSON(snap.Sorted(), out)
	case formatYAML:
		return render.FormatYAML(snap.Sorted(), out)
	default:
		if len(snap.Results) == 0 {
			fmt.Fprintln(out, render.NoResultText)
			return nil
		}
		render.FilterBar(out, snap.Sort, len(snap.Results))
		fmt.Fprintln(out)
		render.Results(out, snap.Sorted())
		return nil
	}
}

func init() {
	searchCmd.Flags().String("sort", "relevance", "result order: relevance, date, or wordcount")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("yaml", false, "output results as YAML")

	rootCmd.AddCommand(searchCmd)
}
