package stoplist_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/deidaraiorek/deirake/internal/stoplist"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.txt")
	content := "# comment line\nOf\n\n  A  \nas well   as\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write stoplist: %v", err)
	}

	s, err := stoplist.Load(path)
	if err != nil {
		t.Fatalf("Failed to load stoplist: %v", err)
	}

	expected := []string{"a", "as well as", "of"}
	if !reflect.DeepEqual(s.Words(), expected) {
		t.Errorf("Words() = %v, want %v", s.Words(), expected)
	}
	if s.Contains("# comment line") {
		t.Error("Expected comment lines to be skipped")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(t.TempDir(), "missing.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stoplist.Load(tt.path)
			if !errors.Is(err, stoplist.ErrConfiguration) {
				t.Errorf("Load(%q) error = %v, want ErrConfiguration", tt.path, err)
			}
		})
	}
}

func TestContainsIsCaseInsensitive(t *testing.T) {
	s := stoplist.New("The", "AS WELL AS")

	tests := []struct {
		phrase   string
		expected bool
	}{
		{"the", true},
		{"THE", true},
		{"as  well as", true},
		{"well", false},
		{"theory", false},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			if got := s.Contains(tt.phrase); got != tt.expected {
				t.Errorf("Contains(%q) = %v, want %v", tt.phrase, got, tt.expected)
			}
		})
	}
}

func TestMatchAt(t *testing.T) {
	s := stoplist.New("of", "as well", "as well as")
	tokens := strings.Fields("systems as well as graphs of words")

	tests := []struct {
		index    int
		expected int
	}{
		{0, 0},
		{1, 3},
		{2, 0},
		{5, 1},
		{7, 0},
		{-1, 0},
	}

	for _, tt := range tests {
		if got := s.MatchAt(tokens, tt.index); got != tt.expected {
			t.Errorf("MatchAt(%d) = %d, want %d", tt.index, got, tt.expected)
		}
	}
}

func TestEmptyMatchesNothing(t *testing.T) {
	s := stoplist.Empty()
	if s.Len() != 0 {
		t.Errorf("Expected empty stoplist, got %d entries", s.Len())
	}
	if s.MatchAt([]string{"of"}, 0) != 0 {
		t.Error("Expected no match on empty stoplist")
	}
}

func TestDefault(t *testing.T) {
	s := stoplist.Default()

	for _, word := range []string{"a", "of", "the", "and", "which", "were"} {
		if !s.Contains(word) {
			t.Errorf("Expected %q to be a stop word", word)
		}
	}
	for _, word := range []string{"boolean", "decomposition", "functions", "linear"} {
		if s.Contains(word) {
			t.Errorf("Expected %q to NOT be a stop word", word)
		}
	}
}
