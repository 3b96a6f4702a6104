package dot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrs(t *testing.T) {
	a := Attrs{"shape": "box", "color": "red", "label": `say "hi"`}
	assert.Equal(t, []string{`color="red"`, `label="say \"hi\""`, `shape="box"`}, a.List())
	assert.Equal(t, `color="red" label="say \"hi\"" shape="box"`, a.String())
	assert.Equal(t, "", Attrs{}.Lines())
}

func TestWriteGraph(t *testing.T) {
	g := Graph{
		Title: "reviews",
		Clusters: []*Cluster{{
			ID:    "10",
			Attrs: Attrs{"label": "Counter-Strike"},
			Nodes: []*Node{{ID: "n0", Attrs: Attrs{"label": "Great game"}}},
		}},
		Nodes: []*Node{{ID: "n1", Attrs: Attrs{"label": "Ruined my life."}}},
		Edges: []*Edge{{From: "n0", To: "n1"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteGraph(&buf, g))

	out := buf.String()
	assert.Contains(t, out, "graph reviewgraph {")
	assert.Contains(t, out, `label="reviews";`)
	assert.Contains(t, out, `subgraph "cluster_10" {`)
	assert.Contains(t, out, `label="Counter-Strike";`)
	assert.Contains(t, out, `"n0" [ label="Great game" ]`)
	assert.Contains(t, out, `"n1" [ label="Ruined my life." ]`)
	assert.Contains(t, out, `"n0" -- "n1" [  ]`)
	assert.NotContains(t, out, "->")
	assert.Equal(t, "n0 -- n1", g.Edges[0].String())
}
