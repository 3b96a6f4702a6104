package graph

import (
	"strings"

	"github.com/cockroachdb/errors"
	mapset "github.com/deckarep/golang-set/v2"
)

type Algorithm int

const (
	BFSAlgorithm Algorithm = iota
	DFSAlgorithm
)

func (a Algorithm) String() string {
	switch a {
	case BFSAlgorithm:
		return "BFS"
	case DFSAlgorithm:
		return "DFS"
	default:
		return "unknown"
	}
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "bfs":
		return BFSAlgorithm, nil
	case "dfs":
		return DFSAlgorithm, nil
	}
	return 0, errors.Newf("unknown algorithm: %s", s)
}

// Traverse runs the given algorithm from start.
func Traverse(g *Graph, alg Algorithm, start string) []string {
	if alg == DFSAlgorithm {
		return DFS(g, start)
	}
	return BFS(g, start)
}

// BFS returns the nodes reachable from start in breadth-first discovery order.
// A start that is not in the graph yields [start].
func BFS(g *Graph, start string) []string {
	output := make([]string, 0)
	visited := mapset.NewThreadUnsafeSet(start)
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		output = append(output, cur)

		for _, n := range g.Neighbors(cur) {
			if visited.Add(n) {
				queue = append(queue, n)
			}
		}
	}
	return output
}

// DFS returns the nodes reachable from start in depth-first order using an
// explicit stack. Nodes are marked visited when pushed, so each node is on
// the stack at most once. The order is LIFO over each popped node's
// neighbor list, which differs from recursive DFS.
func DFS(g *Graph, start string) []string {
	output := make([]string, 0)
	visited := mapset.NewThreadUnsafeSet(start)
	stack := []string{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		output = append(output, cur)

		for _, n := range g.Neighbors(cur) {
			if visited.Add(n) {
				stack = append(stack, n)
			}
		}
	}
	return output
}
