package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/airbnb-price/dataset"
	"github.com/YuminosukeSato/airbnb-price/pkg/errors"
)

type cleanResult struct {
	city   string
	source dataset.Source
	rows   int
	cols   int
}

func newCleanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <city>...",
		Short: "Clean raw listings and write the processed cache",
		Long: `Clean loads each city through the processed cache. Cities without a cache
are read from the raw gzip dump, cleaned and cached. Cities without a raw
dump are reported as missing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cities := uniqueCities(args)
			loader := dataset.NewLoader(a.cfg.DataDir, dataset.WithCleanOptions(a.cfg.Clean.Options()))

			results := make([]cleanResult, len(cities))
			var g errgroup.Group
			g.SetLimit(a.cfg.Jobs)
			for i, city := range cities {
				g.Go(func() error {
					return errors.SafeExecute("clean "+city, func() error {
						df, src, err := loader.Load(city)
						if err != nil {
							return errors.Wrapf(err, "clean %s", city)
						}
						results[i] = cleanResult{city: city, source: src}
						if df != nil {
							results[i].rows, results[i].cols = df.Dims()
						}
						return nil
					})
				})
			}
			err := g.Wait()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"City", "Rows", "Columns", "Source"})
			for _, r := range results {
				if r.city == "" {
					continue
				}
				if r.source == dataset.SourceMissing {
					t.AppendRow(table.Row{r.city, "-", "-", r.source})
					continue
				}
				t.AppendRow(table.Row{r.city, r.rows, r.cols, r.source})
			}
			t.Render()

			return err
		},
	}
	cmd.Flags().Float64("max-price", 1000, "Drop listings priced above this")
	return cmd
}

// uniqueCities drops repeated cities so two workers never write the same cache.
func uniqueCities(args []string) []string {
	seen := make(map[string]struct{}, len(args))
	out := make([]string, 0, len(args))
	for _, c := range args {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
