package main

import (
	"testing"
	"time"

	"github.com/haijima/reviewgraph/internal/graph"
	"github.com/haijima/reviewgraph/internal/review"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_runTraverse_golden(t *testing.T) {
	fakeClock(t, 1500*time.Microsecond)
	cmd, buf := newTestCmd(t)
	v := newTestViper()
	v.Set("algo", "both")
	v.Set("format", "plain")

	err := runTraverse(cmd, v, testFs(), "GREAT")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "traverse_both", buf.Bytes())
}

func Test_runTraverse_table(t *testing.T) {
	cmd, buf := newTestCmd(t)
	v := newTestViper()
	v.Set("algo", "dfs")
	v.Set("limit", 2)
	v.Set("width", 10)

	err := runTraverse(cmd, v, testFs(), "portals")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `DFS from "Thinking with portals"`)
	assert.Contains(t, out, "Portal (30)")
	assert.Contains(t, out, "reviews : 2")
	assert.Contains(t, out, "Short but ")
	assert.NotContains(t, out, "Short but sweet")
	assert.NotContains(t, out, "Great game")
}

func Test_runTraverse_limitFooter(t *testing.T) {
	cmd, buf := newTestCmd(t)
	v := newTestViper()
	v.Set("limit", 1)

	require.NoError(t, runTraverse(cmd, v, testFs(), "great"))
	assert.Contains(t, buf.String(), "AND 3 MORE")
}

func Test_runTraverse_filter(t *testing.T) {
	cmd, buf := newTestCmd(t)
	v := newTestViper()
	v.Set("format", "plain")
	v.Set("filter", `app_id != 10`)

	require.NoError(t, runTraverse(cmd, v, testFs(), "great"))
	out := buf.String()
	assert.Contains(t, out, "Stardew Valley (20)")
	assert.Contains(t, out, "reviews : 2")
	assert.NotContains(t, out, "Too many cheaters")
}

func Test_runTraverse_related(t *testing.T) {
	cmd, buf := newTestCmd(t)
	v := newTestViper()
	v.Set("format", "plain")
	v.Set("related", true)

	require.NoError(t, runTraverse(cmd, v, testFs(), "great"))
	// "Great game" is reviewed in both products
	assert.Contains(t, buf.String(), "elapsed : ")
	assert.Contains(t, buf.String(), " ms\n  related : Counter-Strike, Stardew Valley\nGreat game\n")

	cmd, buf = newTestCmd(t)
	require.NoError(t, runTraverse(cmd, v, testFs(), "portals"))
	assert.Contains(t, buf.String(), "  related : Portal\n")
}

func Test_runTraverse_errors(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]any
		keyword string
	}{
		{name: "no match", keyword: "nothing matches this"},
		{name: "unknown format", set: map[string]any{"format": "yaml"}, keyword: "great"},
		{name: "unknown algo", set: map[string]any{"algo": "astar"}, keyword: "great"},
		{name: "missing file", set: map[string]any{"data": "./testdata/missing.csv"}, keyword: "great"},
		{name: "bad filter", set: map[string]any{"filter": "year >"}, keyword: "great"},
		{name: "exclusive score filters", set: map[string]any{"positive": true, "negative": true}, keyword: "great"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newTestCmd(t)
			v := newTestViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			assert.Error(t, runTraverse(cmd, v, testFs(), tt.keyword))
		})
	}

	cmd, _ := newTestCmd(t)
	err := runTraverse(cmd, newTestViper(), testFs(), "nothing matches this")
	assert.ErrorIs(t, err, review.ErrNoMatch)
}

func Test_traverse_timing(t *testing.T) {
	fakeClock(t, 2345678*time.Nanosecond)
	g := graph.Build([]graph.Entry{{Group: 1, Text: "a"}, {Group: 1, Text: "b"}})

	tr := traverse(g, graph.DFSAlgorithm, "a")
	assert.Equal(t, []string{"a", "b"}, tr.Order)
	assert.Equal(t, 2345678*time.Nanosecond, tr.Elapsed)
	assert.Equal(t, 2.345, tr.Millis())
}

func Test_parseAlgorithms(t *testing.T) {
	algs, err := parseAlgorithms("both")
	assert.NoError(t, err)
	assert.Equal(t, []graph.Algorithm{graph.BFSAlgorithm, graph.DFSAlgorithm}, algs)

	algs, err = parseAlgorithms("dfs")
	assert.NoError(t, err)
	assert.Equal(t, []graph.Algorithm{graph.DFSAlgorithm}, algs)

	_, err = parseAlgorithms("")
	assert.Error(t, err)
}

func Test_selectStart_singleMatch(t *testing.T) {
	records := review.Records{{AppID: 1, Text: "only one"}, {AppID: 1, Text: "other"}}
	r, err := selectStart(records, "ONLY", true)
	assert.NoError(t, err)
	assert.Equal(t, "only one", r.Text)

	_, err = selectStart(records, "missing", true)
	assert.ErrorIs(t, err, review.ErrNoMatch)
}
