package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/haijima/reviewgraph/internal/dot"
	"github.com/haijima/reviewgraph/internal/graph"
	"github.com/haijima/reviewgraph/internal/review"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewGraphCommand(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "graph"
	cmd.Aliases = []string{"dot"}
	cmd.Short = "Print the review graph in graphviz dot format"
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error { return runGraph(cmd, v, fs) }

	cmd.Flags().Int("max-nodes", 500, "Refuse to print graphs with more than `n` nodes (0 disables the check)")
	cmd.Flags().Int("label-width", 40, "The maximum `width` of node labels")

	return cmd
}

func runGraph(cmd *cobra.Command, v *viper.Viper, fs afero.Fs) error {
	maxNodes := v.GetInt("max-nodes")
	labelWidth := v.GetInt("label-width")

	records, err := loadRecords(v, fs)
	if err != nil {
		return err
	}
	g := buildGraph(records)
	if maxNodes > 0 && g.Len() > maxNodes {
		return errors.Newf("graph has %d nodes, more than --max-nodes=%d; narrow it with filters", g.Len(), maxNodes)
	}
	return printGraphviz(cmd.OutOrStdout(), g, records, labelWidth)
}

// printGraphviz writes one node per review text, clustered by the product that
// first carried the text, and one edge per Connect call.
func printGraphviz(w io.Writer, g *graph.Graph, records review.Records, labelWidth int) error {
	lookup := records.Lookup()
	ids := make(map[string]string, g.Len())
	clusters := make(map[int]*dot.Cluster)
	out := dot.Graph{Title: fmt.Sprintf("%d reviews, %d nodes, %d edges", len(records), g.Len(), g.Edges())}

	for i, key := range g.Nodes() {
		id := "n" + strconv.Itoa(i)
		ids[key] = id
		label := key
		if labelWidth > 0 {
			label = text.Trim(key, labelWidth)
		}
		node := &dot.Node{ID: id, Attrs: dot.Attrs{"label": label}}

		r, ok := lookup[key]
		if !ok {
			out.Nodes = append(out.Nodes, node)
			continue
		}
		c, ok := clusters[r.AppID]
		if !ok {
			c = &dot.Cluster{ID: strconv.Itoa(r.AppID), Attrs: dot.Attrs{"label": fmt.Sprintf("%s (%d)", r.Title, r.AppID)}}
			clusters[r.AppID] = c
			out.Clusters = append(out.Clusters, c)
		}
		c.Nodes = append(c.Nodes, node)
	}

	forEachEdge(g, func(a, b string) {
		out.Edges = append(out.Edges, &dot.Edge{From: ids[a], To: ids[b]})
	})
	return dot.WriteGraph(w, out)
}

// forEachEdge calls fn once per Connect call that built g.
func forEachEdge(g *graph.Graph, fn func(a, b string)) {
	order := make(map[string]int, g.Len())
	for i, key := range g.Nodes() {
		order[key] = i
	}
	for _, a := range g.Nodes() {
		self := false
		for _, b := range g.Neighbors(a) {
			if a == b {
				// a self connection appends a twice to its own list
				if self = !self; self {
					fn(a, b)
				}
			} else if order[a] < order[b] {
				fn(a, b)
			}
		}
	}
}
