package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/cockroachdb/errors"
	"github.com/haijima/reviewgraph/internal/graph"
	"github.com/haijima/reviewgraph/internal/review"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// now is replaced in tests.
var now = time.Now

func NewTraverseCommand(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "traverse <keyword>"
	cmd.Aliases = []string{"t", "cluster"}
	cmd.Short = "List the review cluster reachable from a review"
	cmd.Long = heredoc.Doc(`
		Find the first review whose text contains <keyword> (case-insensitive)
		and traverse the review graph from it. The visited reviews are listed
		in visitation order with the time the traversal took.
	`)
	cmd.Example = heredoc.Doc(`
		$ reviewgraph traverse -f reviews.csv "great game"
		$ reviewgraph traverse --algo both --filter 'year >= 2015' cozy
	`)
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runTraverse(cmd, v, fs, strings.Join(args, " "))
	}

	cmd.Flags().String("algo", "bfs", "The traversal `algorithm` {bfs|dfs|both}")
	cmd.Flags().String("format", "table", "The output format {"+strings.Join(formats, "|")+"}")
	cmd.Flags().Int("limit", 0, "The maximum `number` of reviews to print (0 prints all)")
	cmd.Flags().Int("width", 80, "The maximum `width` of the review column (0 disables trimming)")
	cmd.Flags().Bool("pick", false, "Pick the starting review interactively among the matches")
	cmd.Flags().Bool("related", false, "Also list the products whose reviews are in the cluster")

	return cmd
}

type PrintTraversalOption struct {
	Format  string
	Limit   int
	Width   int
	Related bool
}

func runTraverse(cmd *cobra.Command, v *viper.Viper, fs afero.Fs, keyword string) error {
	algo := v.GetString("algo")
	pick := v.GetBool("pick")
	opt := &PrintTraversalOption{Format: v.GetString("format"), Limit: v.GetInt("limit"), Width: v.GetInt("width"), Related: v.GetBool("related")}
	if err := validateFormat(opt.Format); err != nil {
		return err
	}
	algs, err := parseAlgorithms(algo)
	if err != nil {
		return err
	}

	records, err := loadRecords(v, fs)
	if err != nil {
		return err
	}
	g := buildGraph(records)
	start, err := selectStart(records, keyword, pick)
	if err != nil {
		return err
	}

	lookup := records.Lookup()
	for _, alg := range algs {
		tr := traverse(g, alg, start.Text)
		if opt.Related {
			tr.Related = records.WithTexts(tr.Order).Titles()
		}
		if err := printTraversal(cmd.OutOrStdout(), tr, start, lookup, opt); err != nil {
			return err
		}
	}
	return nil
}

func parseAlgorithms(s string) ([]graph.Algorithm, error) {
	if strings.ToLower(s) == "both" {
		return []graph.Algorithm{graph.BFSAlgorithm, graph.DFSAlgorithm}, nil
	}
	alg, err := graph.ParseAlgorithm(s)
	if err != nil {
		return nil, err
	}
	return []graph.Algorithm{alg}, nil
}

func buildGraph(records review.Records) *graph.Graph {
	t0 := now()
	g := records.Graph()
	slog.Debug("built graph", "reviews", len(records), "nodes", g.Len(), "edges", g.Edges(), "elapsed", now().Sub(t0))
	return g
}

func selectStart(records review.Records, keyword string, pick bool) (*review.Record, error) {
	if !pick {
		return records.FindStart(keyword)
	}
	matches := records.Matches(keyword)
	switch len(matches) {
	case 0:
		return nil, errors.Wrapf(review.ErrNoMatch, "keyword %q", keyword)
	case 1:
		return matches[0], nil
	}
	return pickRecord(matches, keyword)
}

type Traversal struct {
	Algorithm graph.Algorithm
	Start     string
	Order     []string
	Elapsed   time.Duration
	Related   []string // product titles of the visited reviews
}

// Millis returns the elapsed time in milliseconds at microsecond resolution.
func (t *Traversal) Millis() float64 {
	return float64(t.Elapsed.Microseconds()) / 1000
}

// traverse times exactly one traversal call.
func traverse(g *graph.Graph, alg graph.Algorithm, start string) *Traversal {
	if !g.Has(start) {
		slog.Debug("start is not in the graph", "start", start)
	}
	t0 := now()
	order := graph.Traverse(g, alg, start)
	elapsed := now().Sub(t0)
	slog.Debug("traversed", "algorithm", alg, "start", start, "visited", len(order), "elapsed", elapsed)
	return &Traversal{Algorithm: alg, Start: start, Order: order, Elapsed: elapsed}
}

const tmplTraversal = `{{title .algorithm}} from {{printf "%q" .start}}
  {{key "product"}} : {{.title}} ({{.appID}})
  {{key "reviews"}} : {{.count}}
  {{key "elapsed"}} : {{printf "%.3f" .elapsed}} ms
{{- if .related}}
  {{key "related"}} : {{join .related ", "}}
{{- end}}
`

func printTraversal(w io.Writer, tr *Traversal, start *review.Record, lookup map[string]*review.Record, opt *PrintTraversalOption) error {
	data := make(map[string]any)
	data["algorithm"] = tr.Algorithm.String()
	data["start"] = tr.Start
	data["title"] = start.Title
	data["appID"] = start.AppID
	data["count"] = len(tr.Order)
	data["elapsed"] = tr.Millis()
	data["related"] = tr.Related
	if err := templateRender(w, "traversal", tmplTraversal, data); err != nil {
		return err
	}

	printReviews(w, tr.Order, lookup, opt)
	fmt.Fprintln(w)
	return nil
}

// printReviews prints node keys with the record that first carried each text.
func printReviews(w io.Writer, keys []string, lookup map[string]*review.Record, opt *PrintTraversalOption) {
	shown := keys
	if opt.Limit > 0 && len(keys) > opt.Limit {
		shown = keys[:opt.Limit]
	}

	if opt.Format == "plain" {
		for _, k := range shown {
			fmt.Fprintln(w, k)
		}
		return
	}

	t := newTableWriter(w)
	t.AppendHeader(table.Row{"#", "app id", "title", "score", "review"})
	if opt.Width > 0 {
		t.SetColumnConfigs([]table.ColumnConfig{{Name: "review", WidthMax: opt.Width, WidthMaxEnforcer: text.Trim}})
	}
	for i, k := range shown {
		row := table.Row{i + 1, "", "", "", k}
		if r, ok := lookup[k]; ok {
			row = table.Row{i + 1, r.AppID, r.Title, r.Score, k}
		}
		t.AppendRow(row)
	}
	if len(shown) < len(keys) {
		t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("... and %d more", len(keys)-len(shown))})
	}
	renderTable(t, opt.Format)
}
