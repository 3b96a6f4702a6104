package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/haijima/reviewgraph/internal/review"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewStatsCommand(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "stats"
	cmd.Aliases = []string{"stat"}
	cmd.Short = "Show review statistics per product"
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error { return runStats(cmd, v, fs) }

	cmd.Flags().String("format", "table", "The output format {"+strings.Join(formats, "|")+"}")
	cmd.Flags().String("sort", "reviews", "The sort `key` {"+strings.Join(review.StatsSortKeys, "|")+"}")
	cmd.Flags().Int("top", 0, "Show only the first `n` products (0 shows all)")

	return cmd
}

func runStats(cmd *cobra.Command, v *viper.Viper, fs afero.Fs) error {
	format := v.GetString("format")
	sortKey := v.GetString("sort")
	top := v.GetInt("top")
	if err := validateFormat(format); err != nil {
		return err
	}
	if !slices.Contains(review.StatsSortKeys, sortKey) {
		return errors.Newf("unknown sort key: %s", sortKey)
	}

	records, err := loadRecords(v, fs)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), records, sortKey, top, format)
	return nil
}

func printStats(w io.Writer, records review.Records, sortKey string, top int, format string) {
	stats := review.SortStats(review.ComputeStats(records), sortKey)
	total := len(stats)
	if top > 0 && len(stats) > top {
		stats = stats[:top]
	}

	t := newTableWriter(w)
	t.AppendHeader(table.Row{"#", "app id", "title", "reviews", "positive", "negative", "rate", "average", "votes"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "rate", Transformer: text.NewNumberTransformer("%.1f%%")},
		{Name: "average", Transformer: text.NewNumberTransformer("%.3f")},
	})
	for i, s := range stats {
		t.AppendRow(table.Row{i + 1, s.AppID, s.Title, s.Reviews, s.Positive, s.Negative, s.PositiveRate() * 100, s.Average(), s.Votes})
	}
	if format != "csv" && format != "tsv" {
		t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d of %d products", len(stats), total), len(records)})
	}
	renderTable(t, format)
}
