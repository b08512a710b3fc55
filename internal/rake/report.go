package rake

import (
	"fmt"
	"io"
	"strconv"
)

// PrintCoOccGraph writes the graph as one line per word followed by one
// tab-indented "neighbor: weight" line per edge. Words and neighbors are sorted.
func (s *Session) PrintCoOccGraph(w io.Writer) error {
	return PrintGraph(w, s.graph)
}

// PrintGraph writes g in the format of Session.PrintCoOccGraph.
func PrintGraph(w io.Writer, g *Graph) error {
	for _, word := range g.Words() {
		if _, err := fmt.Fprintln(w, word); err != nil {
			return err
		}
		for _, n := range g.Neighbors(word) {
			weight, _ := g.Weight(word, n)
			if _, err := fmt.Fprintf(w, "\t%s: %s\n", n, formatFloat(weight)); err != nil {
				return err
			}
		}
	}
	return nil
}

// PrintKeywords writes one "rank. score phrase" line per keyword.
func PrintKeywords(w io.Writer, keywords []Keyword) error {
	for i, kw := range keywords {
		if _, err := fmt.Fprintf(w, "%d. %s %s\n", i+1, formatFloat(kw.Score), kw.Phrase); err != nil {
			return err
		}
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
