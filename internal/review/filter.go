package review

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/cel-go/cel"
)

type Option struct {
	Titles        []string
	ExcludeTitles []string
	Genres        []string
	ExcludeGenres []string
	AppIDs        []int
	MinYear       int // 0 means unbounded
	MaxYear       int // 0 means unbounded
	Positive      bool
	Negative      bool
	MinVotes      int
	Expr          string
}

func (o *Option) IsZero() bool {
	return len(o.Titles) == 0 && len(o.ExcludeTitles) == 0 && len(o.Genres) == 0 && len(o.ExcludeGenres) == 0 &&
		len(o.AppIDs) == 0 && o.MinYear == 0 && o.MaxYear == 0 && !o.Positive && !o.Negative && o.MinVotes == 0 && o.Expr == ""
}

func (o *Option) Filter(r *Record) bool {
	title := strings.ToLower(r.Title)
	genre := strings.ToLower(r.Genre)
	eqFold := func(v string) func(string) bool {
		return func(s string) bool { return strings.ToLower(s) == v }
	}

	return (slices.ContainsFunc(o.Titles, eqFold(title)) || len(o.Titles) == 0) &&
		(!slices.ContainsFunc(o.ExcludeTitles, eqFold(title)) || len(o.ExcludeTitles) == 0) &&
		(slices.ContainsFunc(o.Genres, eqFold(genre)) || len(o.Genres) == 0) &&
		(!slices.ContainsFunc(o.ExcludeGenres, eqFold(genre)) || len(o.ExcludeGenres) == 0) &&
		(slices.Contains(o.AppIDs, r.AppID) || len(o.AppIDs) == 0) &&
		(o.MinYear == 0 || r.Year >= o.MinYear) &&
		(o.MaxYear == 0 || r.Year <= o.MaxYear) &&
		(!o.Positive || r.Recommended()) &&
		(!o.Negative || r.Score < 0) &&
		r.Votes >= o.MinVotes
}

// Apply returns the records passing both the option fields and Expr, in
// their original order. The input is not modified.
func (o *Option) Apply(records Records) (Records, error) {
	expr, err := CompileFilter(o.Expr)
	if err != nil {
		return nil, err
	}
	return o.ApplyExpr(records, expr)
}

// ApplyExpr is Apply with an already compiled predicate in place of Expr.
func (o *Option) ApplyExpr(records Records, expr *Expr) (Records, error) {
	if o.Positive && o.Negative {
		return nil, errors.New("positive and negative filters are exclusive")
	}

	res := make(Records, 0, len(records))
	for _, r := range records {
		if !o.Filter(r) {
			continue
		}
		ok, err := expr.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, r)
		}
	}
	return res, nil
}

// Expr is a compiled CEL predicate over a review.
// The variables are app_id, title, text, score, votes, year and genre.
type Expr struct {
	src string
	prg cel.Program
}

var filterEnv = func() *cel.Env {
	env, err := cel.NewEnv(
		cel.Variable("app_id", cel.IntType),
		cel.Variable("title", cel.StringType),
		cel.Variable("text", cel.StringType),
		cel.Variable("score", cel.IntType),
		cel.Variable("votes", cel.IntType),
		cel.Variable("year", cel.IntType),
		cel.Variable("genre", cel.StringType),
	)
	if err != nil {
		panic(err)
	}
	return env
}()

// CompileFilter compiles a CEL expression. An empty source matches everything.
func CompileFilter(src string) (*Expr, error) {
	if strings.TrimSpace(src) == "" {
		return &Expr{}, nil
	}
	ast, iss := filterEnv.Compile(src)
	if iss.Err() != nil {
		return nil, errors.Wrapf(iss.Err(), "invalid filter %q", src)
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.Newf("filter %q must be a bool expression, got %s", src, ast.OutputType())
	}
	prg, err := filterEnv.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid filter %q", src)
	}
	return &Expr{src: src, prg: prg}, nil
}

func (e *Expr) String() string {
	return e.src
}

func (e *Expr) Match(r *Record) (bool, error) {
	if e.prg == nil {
		return true, nil
	}
	out, _, err := e.prg.Eval(map[string]any{
		"app_id": int64(r.AppID),
		"title":  r.Title,
		"text":   r.Text,
		"score":  int64(r.Score),
		"votes":  int64(r.Votes),
		"year":   int64(r.Year),
		"genre":  r.Genre,
	})
	if err != nil {
		return false, errors.Wrapf(err, "evaluate filter %q", e.src)
	}
	b, ok := out.Value().(bool)
	if !ok {
		return false, errors.Newf("filter %q returned %v", e.src, out.Value())
	}
	return b, nil
}
