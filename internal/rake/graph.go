package rake

import (
	"maps"
	"slices"
)

// edgeKey is the canonical key of an unordered word pair; a <= b.
type edgeKey struct {
	a, b string
}

func keyOf(a, b string) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// Graph is an undirected weighted co-occurrence graph over words. Each unordered
// pair, self-loops included, owns a single weight cell, so edge(a, b) and
// edge(b, a) are always the same value.
type Graph struct {
	frequency map[string]int
	weights   map[edgeKey]float64
	neighbors map[string]map[string]struct{}
}

func newGraph() *Graph {
	return &Graph{
		frequency: make(map[string]int),
		weights:   make(map[edgeKey]float64),
		neighbors: make(map[string]map[string]struct{}),
	}
}

// addPhrase adds one candidate phrase: every word's frequency grows by its count
// in the phrase and every pair of distinct words (a word with itself included)
// gains the product of their counts.
func (g *Graph) addPhrase(words []string) {
	counts := make(map[string]int, len(words))
	distinct := make([]string, 0, len(words))
	for _, w := range words {
		if counts[w] == 0 {
			distinct = append(distinct, w)
		}
		counts[w]++
	}

	for i, wi := range distinct {
		g.frequency[wi] += counts[wi]
		for _, wj := range distinct[i:] {
			g.addWeight(wi, wj, float64(counts[wi]*counts[wj]))
		}
	}
}

func (g *Graph) addWeight(a, b string, w float64) {
	g.link(a, b)
	g.weights[keyOf(a, b)] += w
}

func (g *Graph) setWeight(a, b string, w float64) {
	g.link(a, b)
	g.weights[keyOf(a, b)] = w
}

func (g *Graph) link(a, b string) {
	if g.neighbors[a] == nil {
		g.neighbors[a] = make(map[string]struct{})
	}
	if g.neighbors[b] == nil {
		g.neighbors[b] = make(map[string]struct{})
	}
	g.neighbors[a][b] = struct{}{}
	g.neighbors[b][a] = struct{}{}
}

func (g *Graph) clone() *Graph {
	c := &Graph{
		frequency: maps.Clone(g.frequency),
		weights:   maps.Clone(g.weights),
		neighbors: make(map[string]map[string]struct{}, len(g.neighbors)),
	}
	for w, n := range g.neighbors {
		c.neighbors[w] = maps.Clone(n)
	}
	return c
}

// Len returns the number of words in the graph.
func (g *Graph) Len() int {
	return len(g.frequency)
}

// HasWord reports whether word is a vertex.
func (g *Graph) HasWord(word string) bool {
	_, ok := g.frequency[word]
	return ok
}

// Words returns all vertices in sorted order.
func (g *Graph) Words() []string {
	return slices.Sorted(maps.Keys(g.frequency))
}

// Neighbors returns the words sharing an edge with word, sorted. A word with a
// self-loop is its own neighbor.
func (g *Graph) Neighbors(word string) []string {
	return slices.Sorted(maps.Keys(g.neighbors[word]))
}

// Weight returns the weight of the edge between a and b.
func (g *Graph) Weight(a, b string) (float64, bool) {
	w, ok := g.weights[keyOf(a, b)]
	return w, ok
}

// Frequency returns how many times word occurred across all candidate phrases.
func (g *Graph) Frequency(word string) int {
	return g.frequency[word]
}

// Degree returns the sum of the weights of all edges incident to word. The
// self-loop is counted once. Neighbors are summed in sorted order so repeated
// calls return bit-identical values.
func (g *Graph) Degree(word string) float64 {
	degree := 0.0
	for _, n := range g.Neighbors(word) {
		degree += g.weights[keyOf(word, n)]
	}
	return degree
}
