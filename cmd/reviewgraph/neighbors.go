package main

import (
	"io"
	"strings"

	"github.com/haijima/reviewgraph/internal/review"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewNeighborsCommand(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "neighbors <keyword>"
	cmd.Aliases = []string{"neighbours", "adj"}
	cmd.Short = "List the reviews connected to a review"
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runNeighbors(cmd, v, fs, strings.Join(args, " "))
	}

	cmd.Flags().String("format", "table", "The output format {"+strings.Join(formats, "|")+"}")
	cmd.Flags().Int("limit", 0, "The maximum `number` of reviews to print (0 prints all)")
	cmd.Flags().Int("width", 80, "The maximum `width` of the review column (0 disables trimming)")

	return cmd
}

const tmplNeighbors = `{{title "Neighbors"}} of {{printf "%q" .start}}
  {{key "product"}} : {{.title}} ({{.appID}})
  {{key "degree"}}  : {{.degree}}
`

func runNeighbors(cmd *cobra.Command, v *viper.Viper, fs afero.Fs, keyword string) error {
	opt := &PrintTraversalOption{Format: v.GetString("format"), Limit: v.GetInt("limit"), Width: v.GetInt("width")}
	if err := validateFormat(opt.Format); err != nil {
		return err
	}

	records, err := loadRecords(v, fs)
	if err != nil {
		return err
	}
	g := buildGraph(records)
	start, err := records.FindStart(keyword)
	if err != nil {
		return err
	}
	return printNeighbors(cmd.OutOrStdout(), start, g.Neighbors(start.Text), records, opt)
}

func printNeighbors(w io.Writer, start *review.Record, neighbors []string, records review.Records, opt *PrintTraversalOption) error {
	data := map[string]any{"start": start.Text, "title": start.Title, "appID": start.AppID, "degree": len(neighbors)}
	if err := templateRender(w, "neighbors", tmplNeighbors, data); err != nil {
		return err
	}
	printReviews(w, neighbors, records.Lookup(), opt)
	return nil
}
