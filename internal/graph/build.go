package graph

// Entry is one input record of Build: a group identifier and the node key.
type Entry struct {
	Group int
	Text  string
}

// Build creates a fresh Graph in which all entries sharing a Group are
// connected pairwise, so every group becomes a clique.
//
// Nodes are registered in input order before any edge is added; groups are
// then connected in order of first appearance. A group of n entries costs
// O(n²) Connect calls and nothing bounds or samples the pairs, so a single
// product with many reviews dominates the build time.
// Pairs whose texts are identical are skipped, so Connect(t, t) is never
// issued and the graph has no self-loops. The duplicate positions still
// connect to every other text and produce repeated neighbor entries.
func Build(entries []Entry) *Graph {
	g := New()
	order := make([]int, 0)
	groups := make(map[int][]string)
	for _, e := range entries {
		g.touch(e.Text) // single-review groups are still nodes
		if _, ok := groups[e.Group]; !ok {
			order = append(order, e.Group)
		}
		groups[e.Group] = append(groups[e.Group], e.Text)
	}

	for _, id := range order {
		pairCombinateFunc(groups[id], g.Connect)
	}
	return g
}

func pairCombinateFunc(a []string, fn func(string, string)) {
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i] != a[j] {
				fn(a[i], a[j])
			}
		}
	}
}
