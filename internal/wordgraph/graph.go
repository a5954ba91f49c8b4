// Package wordgraph builds word-adjacency multigraphs from utterance
// segments and computes the graph-theoretic feature battery over them.
//
// A graph is built once per (hypothesis, variant) pair and never mutated
// after construction. Self-loops and parallel edges are retained because
// several metrics count them explicitly.
package wordgraph

import "sort"

// Variant selects the node encoding of a word graph.
type Variant string

const (
	// VariantNaive uses the lowercased surface word as the node.
	VariantNaive Variant = "naive"
	// VariantLemma uses the word's lemma as the node.
	VariantLemma Variant = "lemma"
	// VariantPOS uses the Penn part-of-speech tag as the node, collapsing
	// the vocabulary to the tagset.
	VariantPOS Variant = "pos"
)

// Variants returns all node encodings in their canonical feature order.
func Variants() []Variant {
	return []Variant{VariantNaive, VariantLemma, VariantPOS}
}

type pair struct{ from, to int }

// Graph is a directed multigraph over a token vocabulary. Node identity is
// the token string under the chosen variant encoding.
type Graph struct {
	index map[string]int
	names []string
	// mult counts instances per distinct directed pair; numEdges is the
	// total including repeats.
	mult     map[pair]int
	numEdges int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		mult:  make(map[pair]int),
	}
}

// AddNode inserts a node if not present and returns its dense index.
func (g *Graph) AddNode(name string) int {
	if id, ok := g.index[name]; ok {
		return id
	}
	id := len(g.names)
	g.index[name] = id
	g.names = append(g.names, name)
	return id
}

// AddEdge inserts one directed edge instance from → to, creating the
// endpoints as needed. Repeated identical edges and self-loops accumulate.
func (g *Graph) AddEdge(from, to string) {
	u := g.AddNode(from)
	v := g.AddNode(to)
	g.mult[pair{u, v}]++
	g.numEdges++
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.names) }

// NumEdges returns the total edge-instance count, multiplicity included.
func (g *Graph) NumEdges() int { return g.numEdges }

// Nodes returns the node names in sorted order.
func (g *Graph) Nodes() []string {
	names := make([]string, len(g.names))
	copy(names, g.names)
	sort.Strings(names)
	return names
}

// HasNode reports whether name is a node of the graph.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Multiplicity returns how many from → to edge instances the graph holds.
func (g *Graph) Multiplicity(from, to string) int {
	u, ok := g.index[from]
	if !ok {
		return 0
	}
	v, ok := g.index[to]
	if !ok {
		return 0
	}
	return g.mult[pair{u, v}]
}

// undirectedAdjacency collapses direction and multiplicity into unique
// neighbor lists, the projection used for component membership and shortest
// paths. Self-loops are excluded: they never change reachability.
func (g *Graph) undirectedAdjacency() [][]int {
	n := len(g.names)
	seen := make([]map[int]struct{}, n)
	for i := range seen {
		seen[i] = make(map[int]struct{})
	}
	for p := range g.mult {
		if p.from == p.to {
			continue
		}
		seen[p.from][p.to] = struct{}{}
		seen[p.to][p.from] = struct{}{}
	}
	adj := make([][]int, n)
	for i, set := range seen {
		adj[i] = make([]int, 0, len(set))
		for j := range set {
			adj[i] = append(adj[i], j)
		}
	}
	return adj
}

// directedAdjacency collapses multiplicity into unique successor lists.
func (g *Graph) directedAdjacency() [][]int {
	n := len(g.names)
	seen := make([]map[int]struct{}, n)
	for i := range seen {
		seen[i] = make(map[int]struct{})
	}
	for p := range g.mult {
		seen[p.from][p.to] = struct{}{}
	}
	adj := make([][]int, n)
	for i, set := range seen {
		adj[i] = make([]int, 0, len(set))
		for j := range set {
			adj[i] = append(adj[i], j)
		}
	}
	return adj
}
