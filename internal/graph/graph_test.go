package graph

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_Connect(t *testing.T) {
	g := New()
	g.Connect("a", "b")
	g.Connect("b", "c")
	g.Connect("a", "b")

	assert.Equal(t, []string{"b", "b"}, g.Neighbors("a"))
	assert.Equal(t, []string{"a", "c", "a"}, g.Neighbors("b"))
	assert.Equal(t, []string{"b"}, g.Neighbors("c"))
	assert.Equal(t, []string{"a", "b", "c"}, g.Nodes())
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 3, g.Edges())
}

func TestGraph_Connect_self(t *testing.T) {
	g := New()
	g.Connect("a", "a")

	assert.Equal(t, []string{"a", "a"}, g.Neighbors("a"))
	assert.Equal(t, 1, g.Len())
}

func TestGraph_Neighbors_unknown(t *testing.T) {
	g := New()
	g.Connect("a", "b")

	assert.Empty(t, g.Neighbors("z"))
	assert.False(t, g.Has("z"))
	assert.True(t, g.Has("a"))
}

func TestBuild_duplicateText(t *testing.T) {
	g := Build([]Entry{
		{Group: 1, Text: "great game"},
		{Group: 1, Text: "buggy but fun"},
		{Group: 1, Text: "great game"},
	})

	assert.Equal(t, []string{"buggy but fun", "buggy but fun"}, g.Neighbors("great game"))
	assert.Equal(t, []string{"great game", "great game"}, g.Neighbors("buggy but fun"))
	assert.Equal(t, 2, g.Len())

	got := BFS(g, "great game")
	assert.Equal(t, []string{"great game", "buggy but fun"}, got)
	assert.Len(t, got, 2)
}

func TestBuild_disjointGroups(t *testing.T) {
	g := Build([]Entry{
		{Group: 1, Text: "A"},
		{Group: 2, Text: "C"},
		{Group: 1, Text: "B"},
		{Group: 2, Text: "D"},
	})

	assert.Equal(t, []string{"A", "B"}, BFS(g, "A"))
	assert.Equal(t, []string{"C", "D"}, BFS(g, "C"))
	assert.Equal(t, []string{"A", "B"}, DFS(g, "A"))
	assert.Equal(t, []string{"C", "D"}, DFS(g, "C"))
	assert.Equal(t, []string{"A", "C", "B", "D"}, g.Nodes())
}

func TestBuild_nodesInInputOrder(t *testing.T) {
	g := Build([]Entry{
		{Group: 2, Text: "x"},
		{Group: 1, Text: "y"},
		{Group: 2, Text: "z"},
		{Group: 1, Text: "x"},
		{Group: 3, Text: "w"},
	})
	assert.Equal(t, []string{"x", "y", "z", "w"}, g.Nodes())
	assert.Equal(t, []string{"z", "y"}, g.Neighbors("x"))
}

func TestBuild_noSelfLoops(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	g := Build(randomEntries(r, 300, 5, 30))

	for _, a := range g.Nodes() {
		assert.NotContains(t, g.Neighbors(a), a)
	}
}

func TestBuild_singleAndEmpty(t *testing.T) {
	g := Build(nil)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.Edges())
	assert.Equal(t, []string{"x"}, BFS(g, "x"))

	g = Build([]Entry{{Group: 7, Text: "alone"}})
	assert.True(t, g.Has("alone"))
	assert.Empty(t, g.Neighbors("alone"))
	assert.Equal(t, 0, g.Edges())
}

func TestBuild_clique(t *testing.T) {
	texts := []string{"a", "b", "c", "d", "e"}
	entries := make([]Entry, 0, len(texts))
	for _, s := range texts {
		entries = append(entries, Entry{Group: 3, Text: s})
	}
	g := Build(entries)

	assert.Equal(t, len(texts)*(len(texts)-1)/2, g.Edges())
	for _, a := range texts {
		assert.Len(t, g.Neighbors(a), len(texts)-1)
		for _, b := range texts {
			if a != b {
				assert.Contains(t, g.Neighbors(a), b)
			}
		}
	}
	assert.Equal(t, []string{"b", "c", "d", "e"}, g.Neighbors("a"))
	assert.Equal(t, []string{"a", "b", "c", "d"}, g.Neighbors("e"))
}

func TestBuild_rebuildWithoutClearDuplicates(t *testing.T) {
	entries := []Entry{{Group: 1, Text: "a"}, {Group: 1, Text: "b"}}
	g := Build(entries)
	pairCombinateFunc([]string{"a", "b"}, g.Connect)
	assert.Equal(t, []string{"b", "b"}, g.Neighbors("a"))
	assert.Equal(t, []string{"b"}, Build(entries).Neighbors("a"))
}

func randomEntries(r *rand.Rand, n, groups, vocab int) []Entry {
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, Entry{Group: r.Intn(groups), Text: fmt.Sprintf("review-%d", r.Intn(vocab))})
	}
	return entries
}

func TestBuild_symmetry(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	g := Build(randomEntries(r, 200, 20, 80))

	for _, a := range g.Nodes() {
		for _, b := range g.Neighbors(a) {
			assert.Equal(t, count(g.Neighbors(a), b), count(g.Neighbors(b), a), "%s <-> %s", a, b)
		}
	}
}

func count(s []string, v string) int {
	n := 0
	for _, x := range s {
		if x == v {
			n++
		}
	}
	return n
}
