package tokenizer_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/deidaraiorek/deirake/internal/tokenizer"
)

func TestFragments(t *testing.T) {
	tok := tokenizer.NewTokenizer()

	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "single sentence",
			input:    "Criteria of compatibility of a system",
			expected: [][]string{{"criteria", "of", "compatibility", "of", "a", "system"}},
		},
		{
			name:     "sentence enders and commas",
			input:    "Boolean functions. The approach, proposed!",
			expected: [][]string{{"boolean", "functions"}, {"the", "approach"}, {"proposed"}},
		},
		{
			name:     "inner joins stay in one word",
			input:    "q-partitioning of NFO/UFO analysis",
			expected: [][]string{{"q-partitioning", "of", "nfo/ufo", "analysis"}},
		},
		{
			name:     "brackets split",
			input:    "linear (Diophantine) equations",
			expected: [][]string{{"linear"}, {"diophantine"}, {"equations"}},
		},
		{
			name:     "newlines are whitespace",
			input:    "deep\nlearning",
			expected: [][]string{{"deep", "learning"}},
		},
		{
			name:     "HTML entities",
			input:    "graphs&nbsp;and&amp;trees",
			expected: [][]string{{"graphs", "and", "and", "trees"}},
		},
		{
			name:     "decomposed accents stay in the word",
			input:    "cafe\u0301 culture",
			expected: [][]string{{"cafe\u0301", "culture"}},
		},
		{
			name:     "empty input",
			input:    "",
			expected: [][]string{},
		},
		{
			name:     "only punctuation",
			input:    "... ,,, !!",
			expected: [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tok.Fragments(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Fragments(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tok := tokenizer.NewTokenizer()

	result := tok.Words("Hello, world! How are you?")
	expected := []string{"hello", "world", "how", "are", "you"}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Words() = %v, want %v", result, expected)
	}
}

func TestIsValidToken(t *testing.T) {
	tok := tokenizer.NewTokenizer()

	tests := []struct {
		token    string
		expected bool
	}{
		{"hello", true},
		{"covid19", true},
		{"123", false},
		{"2000", false},
		{"abc123def", true},
		{"a1b2c3d4", true},
		{"b12", true},
		{"x86", true},
		{"3.14", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			result := tok.IsValidToken(tt.token)
			if result != tt.expected {
				t.Errorf("IsValidToken(%q) = %v, want %v", tt.token, result, tt.expected)
			}
		})
	}
}

func TestIsNoise(t *testing.T) {
	longToken := strings.Repeat("a", 60)

	tests := []struct {
		name     string
		tok      *tokenizer.Tokenizer
		word     string
		expected bool
	}{
		{"default keeps single characters", tokenizer.NewTokenizer(), "a", false},
		{"default drops numerals", tokenizer.NewTokenizer(), "81", true},
		{"default drops long tokens", tokenizer.NewTokenizer(), longToken, true},
		{"numerals kept when asked", tokenizer.NewTokenizer(tokenizer.WithNumerals(true)), "81", false},
		{"min length drops single characters", tokenizer.NewTokenizer(tokenizer.WithMinLength(2)), "a", true},
		{"min length keeps longer words", tokenizer.NewTokenizer(tokenizer.WithMinLength(2)), "of", false},
		{"max length", tokenizer.NewTokenizer(tokenizer.WithMaxLength(3)), "graph", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.IsNoise(tt.word); got != tt.expected {
				t.Errorf("IsNoise(%q) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}

func BenchmarkFragments(b *testing.B) {
	tok := tokenizer.NewTokenizer()
	text := `A new approach to the decomposition of Boolean functions that depend on n variables
	and are represented in various forms is considered. The approach is based on the method of
	q-partitioning of minterms and on the introduced concept of a decomposition clone.`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok.Fragments(text)
	}
}
