package graph

// Graph is an undirected, unweighted graph keyed by review text.
// Neighbor lists keep insertion order and are not deduplicated.
type Graph struct {
	adj   map[string][]string
	nodes []string
	edges int
}

func New() *Graph {
	return &Graph{adj: make(map[string][]string)}
}

// Connect adds b to a's neighbors and a to b's neighbors.
// a == b is not special-cased.
func (g *Graph) Connect(a, b string) {
	g.touch(a)
	g.touch(b)
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
	g.edges++
}

func (g *Graph) touch(key string) {
	if _, ok := g.adj[key]; !ok {
		g.adj[key] = nil
		g.nodes = append(g.nodes, key)
	}
}

// Neighbors returns the neighbors of key in the order they were connected.
// Unknown keys have no neighbors.
func (g *Graph) Neighbors(key string) []string {
	return g.adj[key]
}

func (g *Graph) Has(key string) bool {
	_, ok := g.adj[key]
	return ok
}

// Nodes returns the node keys in the order they were first seen.
func (g *Graph) Nodes() []string {
	return g.nodes
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// Edges returns the number of Connect calls, parallel edges included.
func (g *Graph) Edges() int {
	return g.edges
}
