package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/haijima/reviewgraph/cache"
	"github.com/haijima/reviewgraph/internal/graph"
	"github.com/haijima/reviewgraph/internal/review"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewExploreCommand(v *viper.Viper, fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "explore"
	cmd.Aliases = []string{"menu", "repl"}
	cmd.Short = "Explore reviews interactively"
	cmd.Long = heredoc.Doc(`
		Read commands from stdin, one per line. The review graph is rebuilt
		whenever the filter changes.
	`) + "\n" + exploreHelp
	cmd.Args = cobra.NoArgs
	cmd.RunE = func(cmd *cobra.Command, _ []string) error { return runExplore(cmd, v, fs) }

	cmd.Flags().Int("limit", 20, "The maximum `number` of reviews to print per traversal (0 prints all)")
	cmd.Flags().Int("width", 80, "The maximum `width` of the review column (0 disables trimming)")
	cmd.Flags().Bool("no-prompt", false, "Do not print the prompt")

	return cmd
}

var exploreHelp = heredoc.Doc(`
	Commands:
	  bfs <keyword>        breadth-first traversal from the first matching review
	  dfs <keyword>        depth-first traversal from the first matching review
	  neighbors <keyword>  reviews connected to the first matching review
	  related <keyword>    products reviewed in the cluster of the first matching review
	  filter <expression>  set the CEL filter, e.g. filter year >= 2015 && score > 0
	  clear                remove the filter
	  stats [n]            statistics of the top n products
	  info                 show dataset and graph sizes
	  help                 show this help
	  quit                 exit
`)

// snapshot is the filtered record set and the graph built from it.
type snapshot struct {
	expr    string
	records review.Records
	graph   *graph.Graph
	lookup  map[string]*review.Record
}

type explorer struct {
	w     io.Writer
	all   review.Records
	base  review.Option
	exprs *cache.Cache[string, *review.Expr]
	snap  *snapshot
	opt   *PrintTraversalOption
}

func runExplore(cmd *cobra.Command, v *viper.Viper, fs afero.Fs) error {
	all, err := review.Load(fs, v.GetString("data"), ColumnsFromViper(v))
	if err != nil {
		return err
	}
	e, err := newExplorer(cmd.OutOrStdout(), all, *FilterOptionFromViper(v), &PrintTraversalOption{Format: "table", Limit: v.GetInt("limit"), Width: v.GetInt("width")})
	if err != nil {
		return err
	}
	return e.loop(cmd.InOrStdin(), !v.GetBool("no-prompt"))
}

func newExplorer(w io.Writer, all review.Records, base review.Option, opt *PrintTraversalOption) (*explorer, error) {
	e := &explorer{w: w, all: all, base: base, opt: opt}
	e.exprs = cache.NewCache(e.compile)
	if err := e.rebuild(""); err != nil {
		return nil, err
	}
	return e, nil
}

// compile combines the session filter expr with the --filter flag.
func (e *explorer) compile(expr string) (*review.Expr, error) {
	src := e.base.Expr
	switch {
	case src == "":
		src = expr
	case expr != "":
		src = fmt.Sprintf("(%s) && (%s)", src, expr)
	}
	return review.CompileFilter(src)
}

// rebuild filters the whole dataset with expr and replaces the current
// snapshot with a freshly built graph. The current snapshot stays if expr is
// invalid.
func (e *explorer) rebuild(expr string) error {
	prg, err := e.exprs.Get(expr)
	if err != nil {
		return err
	}
	records, err := e.base.ApplyExpr(e.all, prg)
	if err != nil {
		return err
	}
	slog.Debug("rebuilding graph", "filter", prg.String(), "reviews", len(records), "compiled", e.exprs.Len())
	e.snap = &snapshot{expr: expr, records: records, graph: buildGraph(records), lookup: records.Lookup()}
	return nil
}

func (e *explorer) loop(r io.Reader, prompt bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		if prompt {
			fmt.Fprint(e.w, color.CyanString("reviewgraph> "))
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		name, arg, _ := strings.Cut(line, " ")
		quit, err := e.exec(strings.ToLower(name), strings.TrimSpace(arg))
		if err != nil {
			fmt.Fprintln(e.w, color.RedString("error: %s", err))
		}
		if quit {
			return nil
		}
	}
	if prompt {
		fmt.Fprintln(e.w)
	}
	return sc.Err()
}

func (e *explorer) exec(name, arg string) (bool, error) {
	switch name {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		fmt.Fprint(e.w, exploreHelp)
		return false, nil
	case "bfs", "dfs":
		alg, _ := graph.ParseAlgorithm(name)
		return false, e.traverse(alg, arg)
	case "neighbors", "neighbours":
		return false, e.neighbors(arg)
	case "related":
		return false, e.related(arg)
	case "filter":
		return false, e.filter(arg)
	case "clear":
		return false, e.filter("")
	case "stats":
		return false, e.stats(arg)
	case "info":
		return false, e.info()
	}
	return false, errors.Newf("unknown command %q, type help", name)
}

func (e *explorer) find(keyword string) (*review.Record, error) {
	if keyword == "" {
		return nil, errors.New("keyword is required")
	}
	return e.snap.records.FindStart(keyword)
}

func (e *explorer) traverse(alg graph.Algorithm, keyword string) error {
	start, err := e.find(keyword)
	if err != nil {
		return err
	}
	return printTraversal(e.w, traverse(e.snap.graph, alg, start.Text), start, e.snap.lookup, e.opt)
}

func (e *explorer) neighbors(keyword string) error {
	start, err := e.find(keyword)
	if err != nil {
		return err
	}
	return printNeighbors(e.w, start, e.snap.graph.Neighbors(start.Text), e.snap.records, e.opt)
}

const tmplRelated = `{{title "Related"}} products of {{printf "%q" .start}}
{{- range .titles}}
  {{.}}
{{- end}}
`

func (e *explorer) related(keyword string) error {
	start, err := e.find(keyword)
	if err != nil {
		return err
	}
	cluster := graph.BFS(e.snap.graph, start.Text)
	data := map[string]any{"start": start.Text, "titles": e.snap.records.WithTexts(cluster).Titles()}
	return templateRender(e.w, "related", tmplRelated, data)
}

// filter switches to expr. The previous filter stays active if expr is invalid.
func (e *explorer) filter(expr string) error {
	if err := e.rebuild(expr); err != nil {
		return err
	}
	return e.info()
}

func (e *explorer) stats(arg string) error {
	top := 10
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return errors.Newf("invalid number: %s", arg)
		}
		top = n
	}
	printStats(e.w, e.snap.records, "reviews", top, "table")
	return nil
}

const tmplInfo = `{{key "filter"}}  : {{if .filter}}{{.filter}}{{else}}(none){{end}}
{{key "reviews"}} : {{.reviews}} of {{.total}}
{{key "nodes"}}   : {{.nodes}}
{{key "edges"}}   : {{.edges}}
{{key "genres"}}  : {{join .genres ", "}}
`

func (e *explorer) info() error {
	s := e.snap
	data := map[string]any{
		"filter":  s.expr,
		"reviews": len(s.records),
		"total":   len(e.all),
		"nodes":   s.graph.Len(),
		"edges":   s.graph.Edges(),
		"genres":  s.records.Genres(),
	}
	return templateRender(e.w, "info", tmplInfo, data)
}
