// Package rake implements Rapid Automatic Keyword Extraction.
//
// Text is split into candidate phrases at stop phrases and punctuation. Words
// that share a phrase are linked in an undirected co-occurrence graph, each word
// is scored by degree/frequency and each phrase by the sum of its word scores.
//
// An Extractor holds only configuration and is safe for concurrent use. Every
// call to Run returns a new Session that owns the phrase list and the graph for
// one text; a Session is not safe for concurrent use. Sessions support editing
// edge weights and rescoring without re-reading the text.
package rake

import (
	"strings"

	"github.com/deidaraiorek/deirake/internal/stoplist"
	"github.com/deidaraiorek/deirake/internal/tokenizer"
)

// Stemmer maps a word to its stem.
type Stemmer interface {
	Stem(word string) string
}

// Phrase is a candidate phrase: a run of words between stop phrases.
type Phrase struct {
	Words []string
}

// Text returns the words joined by single spaces.
func (p Phrase) Text() string {
	return strings.Join(p.Words, " ")
}

type Extractor struct {
	stops          *stoplist.Stoplist
	tokenizer      *tokenizer.Tokenizer
	stemmer        Stemmer
	maxPhraseWords int
	tokenizerOpts  []tokenizer.Option
}

type Option func(*Extractor)

// WithStemmer stems every phrase word before it enters the graph.
func WithStemmer(s Stemmer) Option {
	return func(e *Extractor) {
		e.stemmer = s
	}
}

// WithMinWordLength drops words shorter than n runes from phrases.
func WithMinWordLength(n int) Option {
	return func(e *Extractor) {
		e.tokenizerOpts = append(e.tokenizerOpts, tokenizer.WithMinLength(n))
	}
}

// WithMaxWordLength drops words longer than n runes from phrases.
func WithMaxWordLength(n int) Option {
	return func(e *Extractor) {
		e.tokenizerOpts = append(e.tokenizerOpts, tokenizer.WithMaxLength(n))
	}
}

// WithNumerals keeps pure numerals in phrases. They are dropped by default.
func WithNumerals(keep bool) Option {
	return func(e *Extractor) {
		e.tokenizerOpts = append(e.tokenizerOpts, tokenizer.WithNumerals(keep))
	}
}

// WithMaxPhraseWords discards candidate phrases with more than n words.
// Zero means no limit.
func WithMaxPhraseWords(n int) Option {
	return func(e *Extractor) {
		if n >= 0 {
			e.maxPhraseWords = n
		}
	}
}

// New returns an Extractor using stops. A nil stoplist matches nothing.
func New(stops *stoplist.Stoplist, opts ...Option) *Extractor {
	if stops == nil {
		stops = stoplist.Empty()
	}

	e := &Extractor{stops: stops}
	for _, opt := range opts {
		opt(e)
	}
	e.tokenizer = tokenizer.NewTokenizer(e.tokenizerOpts...)

	return e
}

// NewFromFile loads the stoplist at path and returns an Extractor using it.
func NewFromFile(path string, opts ...Option) (*Extractor, error) {
	stops, err := stoplist.Load(path)
	if err != nil {
		return nil, err
	}
	return New(stops, opts...), nil
}

// Stoplist returns the stop phrases the extractor splits on.
func (e *Extractor) Stoplist() *stoplist.Stoplist {
	return e.stops
}

// Phrases returns the candidate phrases of text in order of appearance,
// duplicates included.
func (e *Extractor) Phrases(text string) []Phrase {
	phrases := make([]Phrase, 0)

	for _, fragment := range e.tokenizer.Fragments(text) {
		var current []string
		flush := func() {
			if len(current) > 0 && (e.maxPhraseWords == 0 || len(current) <= e.maxPhraseWords) {
				phrases = append(phrases, Phrase{Words: current})
			}
			current = nil
		}

		for i := 0; i < len(fragment); {
			if n := e.stops.MatchAt(fragment, i); n > 0 {
				flush()
				i += n
				continue
			}

			word := fragment[i]
			i++
			if e.tokenizer.IsNoise(word) {
				continue
			}
			if e.stemmer != nil {
				word = e.stemmer.Stem(word)
			}
			current = append(current, word)
		}
		flush()
	}

	return phrases
}

// Run extracts candidate phrases from text, builds their co-occurrence graph and
// scores them. Empty text yields a session with no keywords.
func (e *Extractor) Run(text string) (*Session, error) {
	phrases := e.Phrases(text)

	graph := newGraph()
	for _, p := range phrases {
		graph.addPhrase(p.Words)
	}

	s := &Session{
		phrases:  phrases,
		graph:    graph,
		original: graph.clone(),
	}
	if _, err := s.Rerun(); err != nil {
		return nil, err
	}
	return s, nil
}

// Extract is Run without the session: it returns the ranked keywords of text.
func (e *Extractor) Extract(text string) ([]Keyword, error) {
	s, err := e.Run(text)
	if err != nil {
		return nil, err
	}
	return s.Keywords(), nil
}
