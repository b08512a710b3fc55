package rake

import (
	"cmp"
	"fmt"
	"slices"
)

// Keyword is a distinct candidate phrase with its score.
type Keyword struct {
	Phrase string   `json:"phrase" yaml:"phrase"`
	Words  []string `json:"words" yaml:"words"`
	Score  float64  `json:"score" yaml:"score"`
	Count  int      `json:"count" yaml:"count"`
}

// Result is the serialized form of a ranked keyword list.
type Result struct {
	Keywords []Keyword `json:"keywords" yaml:"keywords"`
}

func wordScore(g *Graph, word string) (float64, error) {
	if !g.HasWord(word) {
		return 0, fmt.Errorf("%w: word %q is missing from the graph", ErrInvariantViolation, word)
	}
	freq := g.Frequency(word)
	if freq <= 0 {
		return 0, fmt.Errorf("%w: word %q has frequency %d", ErrInvariantViolation, word, freq)
	}
	return g.Degree(word) / float64(freq), nil
}

// score ranks the distinct phrases of phrases against g. Phrases keep the order
// of their first appearance when scores tie. An empty graph scores nothing.
func score(phrases []Phrase, g *Graph) ([]Keyword, error) {
	keywords := make([]Keyword, 0)
	if g.Len() == 0 {
		return keywords, nil
	}

	wordScores := make(map[string]float64)
	index := make(map[string]int)

	for _, p := range phrases {
		text := p.Text()
		if i, ok := index[text]; ok {
			keywords[i].Count++
			continue
		}

		total := 0.0
		for _, w := range p.Words {
			ws, ok := wordScores[w]
			if !ok {
				var err error
				ws, err = wordScore(g, w)
				if err != nil {
					return nil, err
				}
				wordScores[w] = ws
			}
			total += ws
		}

		index[text] = len(keywords)
		keywords = append(keywords, Keyword{
			Phrase: text,
			Words:  slices.Clone(p.Words),
			Score:  total,
			Count:  1,
		})
	}

	slices.SortStableFunc(keywords, func(a, b Keyword) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return keywords, nil
}
