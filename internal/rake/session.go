package rake

import (
	"fmt"
	"math"
	"slices"
)

// Session holds the phrases and co-occurrence graph of one Run. The graph can be
// edited and rescored with Rerun as many times as needed.
type Session struct {
	phrases  []Phrase
	graph    *Graph
	original *Graph
	keywords []Keyword
}

// Keywords returns the ranked result of the latest scoring pass.
func (s *Session) Keywords() []Keyword {
	return slices.Clone(s.keywords)
}

// Phrases returns the candidate phrases in order of appearance.
func (s *Session) Phrases() []Phrase {
	return slices.Clone(s.phrases)
}

// Graph returns the current co-occurrence graph. It is read-only; use the
// session's edit methods to change it.
func (s *Session) Graph() *Graph {
	return s.graph
}

// ModifyEdgeWeight sets the weight of the edge between a and b. Both words must
// already be in the graph.
func (s *Session) ModifyEdgeWeight(a, b string, weight float64) error {
	if err := checkWeight(weight); err != nil {
		return err
	}
	for _, w := range []string{a, b} {
		if !s.graph.HasWord(w) {
			return fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
	}

	s.graph.setWeight(a, b, weight)
	return nil
}

// AdjustPhraseEdgeWeights adds delta to every edge among the distinct words of
// phrase, self-loops included. Weights are clamped at zero.
func (s *Session) AdjustPhraseEdgeWeights(phrase string, delta float64) error {
	if err := checkWeight(math.Abs(delta)); err != nil {
		return err
	}

	var words []string
	for _, p := range s.phrases {
		if p.Text() == phrase {
			words = p.Words
			break
		}
	}
	if words == nil {
		return fmt.Errorf("%w: phrase %q", ErrUnknownWord, phrase)
	}
	for _, w := range words {
		if !s.graph.HasWord(w) {
			return fmt.Errorf("%w: %q", ErrUnknownWord, w)
		}
	}

	seen := make(map[edgeKey]bool)
	for _, a := range words {
		for _, b := range words {
			k := keyOf(a, b)
			if seen[k] {
				continue
			}
			seen[k] = true

			current, _ := s.graph.Weight(a, b)
			s.graph.setWeight(a, b, max(current+delta, 0))
		}
	}
	return nil
}

// ResetGraph discards the whole graph. A following Rerun returns no keywords.
func (s *Session) ResetGraph() {
	s.graph = newGraph()
}

// Revert restores the graph built by Run, undoing every edit and reset.
func (s *Session) Revert() {
	s.graph = s.original.clone()
}

// Rerun rescores the stored phrases against the current graph.
func (s *Session) Rerun() ([]Keyword, error) {
	keywords, err := score(s.phrases, s.graph)
	if err != nil {
		return nil, err
	}
	s.keywords = keywords
	return s.Keywords(), nil
}

// WordScores returns degree/frequency for every word in the current graph.
func (s *Session) WordScores() (map[string]float64, error) {
	scores := make(map[string]float64, s.graph.Len())
	for _, w := range s.graph.Words() {
		ws, err := wordScore(s.graph, w)
		if err != nil {
			return nil, err
		}
		scores[w] = ws
	}
	return scores, nil
}

func checkWeight(weight float64) error {
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: invalid edge weight %v", ErrInvariantViolation, weight)
	}
	return nil
}
