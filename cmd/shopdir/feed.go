package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shopdir/internal"
	"shopdir/internal/directory"
	"shopdir/internal/feed"
	"shopdir/internal/pipeline"
	"shopdir/internal/search"
)

var (
	feedJSON     bool
	feedCategory string
	feedNoStore  bool
	importFile   string
	exportOut    string
	historyLimit int
)

var feedLoadCmd = &cobra.Command{
	Use:   "feed:load",
	Short: "Load the directory feed (sample directory on any failure) and store the snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		loader, err := feed.NewLoader(ctx, state.cfg, state.logger)
		if err != nil {
			return err
		}
		return runLoad(ctx, cmd.OutOrStdout(), loader)
	},
}

var feedImportCmd = &cobra.Command{
	Use:   "feed:import",
	Short: "Load the directory from a local .csv or .xlsx file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("file", importFile); err != nil {
			return err
		}
		normalizer, err := feed.NewNormalizer(state.cfg)
		if err != nil {
			return err
		}
		loader := feed.NewLoaderWithSource(feed.NewFileSource(importFile), normalizer, state.logger)
		return runLoad(cmd.Context(), cmd.OutOrStdout(), loader)
	},
}

var feedExportCmd = &cobra.Command{
	Use:   "feed:export",
	Short: "Export the stored directory to xlsx",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("out", exportOut); err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		businesses, err := currentDirectory(cmd.Context(), db)
		if err != nil {
			return err
		}
		if err := pipeline.ExportBusinessesToXLSX(businesses, exportOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d businesses to %s\n", len(businesses), exportOut)
		return nil
	},
}

var feedHistoryCmd = &cobra.Command{
	Use:   "feed:history",
	Short: "List recorded feed loads, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		loads, err := db.ListFeedLoads(historyLimit)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tOUTCOME\tRECORDS\tMS\tREASON")
		for _, l := range loads {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n", l.ID, l.CreatedAt, l.Source, l.Outcome, l.Records, l.DurationMs, l.Reason)
		}
		return tw.Flush()
	},
}

var directorySummaryCmd = &cobra.Command{
	Use:   "directory:summary",
	Short: "Print category counts and top rated businesses",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		businesses, err := currentDirectory(cmd.Context(), db)
		if err != nil {
			return err
		}
		directory.PrintSummary(cmd.OutOrStdout(), directory.Summarize(businesses))
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search the directory, then apply the category filter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		category, ok := directory.ParseCategory(feedCategory)
		if !ok {
			return fmt.Errorf("unknown category: %s", feedCategory)
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		businesses, err := currentDirectory(ctx, db)
		if err != nil {
			return err
		}
		searcher, err := search.New(ctx, state.cfg, state.logger)
		if err != nil {
			return err
		}

		res := searcher.Search(ctx, strings.Join(args, " "), businesses)
		matches := directory.Filter(businesses, category, res.BusinessIDs)

		out := cmd.OutOrStdout()
		if feedJSON {
			return writeJSON(out, map[string]any{"result": res, "businesses": listings(matches)})
		}
		fmt.Fprintln(out, res.Text)
		return printBusinesses(out, matches)
	},
}

func init() {
	feedLoadCmd.Flags().BoolVar(&feedJSON, "json", false, "print records as JSON")
	feedLoadCmd.Flags().StringVar(&feedCategory, "category", "", "only print this category")
	feedLoadCmd.Flags().BoolVar(&feedNoStore, "no-store", false, "do not write the snapshot to the database")

	feedImportCmd.Flags().StringVar(&importFile, "file", "", "local .csv or .xlsx file")
	feedImportCmd.Flags().BoolVar(&feedJSON, "json", false, "print records as JSON")
	feedImportCmd.Flags().StringVar(&feedCategory, "category", "", "only print this category")
	feedImportCmd.Flags().BoolVar(&feedNoStore, "no-store", false, "do not write the snapshot to the database")

	feedExportCmd.Flags().StringVar(&exportOut, "out", "", "output xlsx path")
	feedHistoryCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of loads to list")

	searchCmd.Flags().StringVar(&feedCategory, "category", "", "category filter applied after search")
	searchCmd.Flags().BoolVar(&feedJSON, "json", false, "print result as JSON")
}

type detailedLoader interface {
	LoadDetailed(ctx context.Context) feed.LoadResult
}

func runLoad(ctx context.Context, out io.Writer, loader detailedLoader) error {
	category, ok := directory.ParseCategory(feedCategory)
	if !ok {
		return fmt.Errorf("unknown category: %s", feedCategory)
	}

	res := loader.LoadDetailed(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	if !feedNoStore {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storeLoad(db, res); err != nil {
			return err
		}
	}

	shown := directory.Filter(res.Businesses, category, nil)
	if feedJSON {
		return writeJSON(out, listings(shown))
	}
	fmt.Fprintf(out, "source=%s outcome=%s records=%d trace=%s\n", res.Source, res.Outcome, len(res.Businesses), res.TraceID)
	return printBusinesses(out, shown)
}

func printBusinesses(out io.Writer, businesses []internal.Business) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tRATING\tPHONE\tPRICE")
	for _, b := range businesses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f (%d)\t%s\t%s\n", b.ID, b.Name, b.Category, b.Rating, b.Reviews, b.Phone, b.Price)
	}
	return tw.Flush()
}

// listing is a business as the storefront shows it: with the stock image
// substituted and the chat link resolved.
type listing struct {
	internal.Business
	DisplayImage string `json:"displayImage"`
	ChatLink     string `json:"chatLink,omitempty"`
}

func listings(businesses []internal.Business) []listing {
	out := make([]listing, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, listing{Business: b, DisplayImage: directory.DisplayImage(b), ChatLink: b.ChatLink()})
	}
	return out
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
