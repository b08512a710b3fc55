package tokenizer

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}]+(?:['’+/_-][\p{L}\p{M}\p{N}]+)*`)

type Tokenizer struct {
	minLength    int
	maxLength    int
	keepNumerals bool
}

type Option func(*Tokenizer)

// WithMinLength sets the shortest token (in runes) kept in a phrase.
func WithMinLength(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.minLength = n
		}
	}
}

// WithMaxLength sets the longest token (in runes) kept in a phrase.
func WithMaxLength(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.maxLength = n
		}
	}
}

// WithNumerals keeps pure numerals instead of treating them as noise.
func WithNumerals(keep bool) Option {
	return func(t *Tokenizer) {
		t.keepNumerals = keep
	}
}

func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		minLength: 1,
		maxLength: 50,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fragments splits text into runs of lowercase words that are separated only by
// whitespace. Any punctuation between two words starts a new fragment.
func (t *Tokenizer) Fragments(text string) [][]string {
	normalized := t.normalize(text)
	locs := wordPattern.FindAllStringIndex(normalized, -1)

	fragments := make([][]string, 0)
	var current []string
	prevEnd := 0

	for _, loc := range locs {
		if len(current) > 0 && !isBlank(normalized[prevEnd:loc[0]]) {
			fragments = append(fragments, current)
			current = nil
		}
		current = append(current, normalized[loc[0]:loc[1]])
		prevEnd = loc[1]
	}
	if len(current) > 0 {
		fragments = append(fragments, current)
	}

	return fragments
}

// Words returns every word of text in order, ignoring fragment boundaries.
func (t *Tokenizer) Words(text string) []string {
	return wordPattern.FindAllString(t.normalize(text), -1)
}

func (t *Tokenizer) normalize(text string) string {
	text = strings.ToLower(text)

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", " and ")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")

	return text
}

// IsNoise reports whether a word is dropped from candidate phrases without
// ending the phrase.
func (t *Tokenizer) IsNoise(word string) bool {
	n := len([]rune(word))
	if n < t.minLength || n > t.maxLength {
		return true
	}
	if !t.keepNumerals && !t.IsValidToken(word) {
		return true
	}
	return false
}

// IsValidToken reports whether word has at least one letter. Mixed tokens such
// as "b12" or "x86" are valid; pure numerals are not.
func (t *Tokenizer) IsValidToken(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
