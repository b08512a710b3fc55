package textprocessor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kljensen/snowball"
)

const DefaultLanguage = "english"

// Languages lists the snowball stemmers that can be selected by name.
var Languages = []string{"english", "french", "hungarian", "norwegian", "russian", "spanish", "swedish"}

type Stemmer struct {
	language string
}

func NewStemmer() *Stemmer {
	return &Stemmer{language: DefaultLanguage}
}

// NewStemmerForLanguage returns a stemmer for one of Languages. The name is
// matched case-insensitively.
func NewStemmerForLanguage(language string) (*Stemmer, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if !IsSupportedLanguage(language) {
		return nil, fmt.Errorf("unsupported stemmer language %q (supported: %s)", language, strings.Join(Languages, ", "))
	}
	return &Stemmer{language: language}, nil
}

func IsSupportedLanguage(language string) bool {
	return slices.Contains(Languages, strings.ToLower(language))
}

func (s *Stemmer) Language() string {
	return s.language
}

func (s *Stemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil {
		return word
	}
	return stemmed
}

func (s *Stemmer) StemBatch(words []string) []string {
	stemmed := make([]string, len(words))
	for i, word := range words {
		stemmed[i] = s.Stem(word)
	}
	return stemmed
}
